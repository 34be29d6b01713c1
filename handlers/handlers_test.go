package handlers

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"campaign-tracker/config"
	"campaign-tracker/services"
)

type cli struct {
	t   *testing.T
	cfg *config.Config
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	dir := t.TempDir()
	return &cli{t: t, cfg: &config.Config{
		DataFile:   filepath.Join(dir, "campaign_data.json"),
		ReportFile: filepath.Join(dir, "campaign_report.html"),
		ExportDB:   filepath.Join(dir, "campaign.db"),
		OpenReport: false,
	}}
}

func (c *cli) run(args ...string) (string, string, error) {
	c.t.Helper()
	cfg := *c.cfg
	root := NewRootCommand(&cfg, zaptest.NewLogger(c.t))
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, _, err := c.run(args...)
	require.NoError(c.t, err, "%v", args)
	return out
}

func (c *cli) load() *services.CampaignService {
	c.t.Helper()
	campaign, err := services.ReadCampaign(c.cfg.DataFile)
	require.NoError(c.t, err)
	return services.NewCampaignService(campaign, c.cfg.DataFile, zaptest.NewLogger(c.t))
}

func (c *cli) recordScenario() {
	c.t.Helper()
	c.mustRun("warband", "add", "Iron Fang")
	c.mustRun("warband", "add", "Rust Brigade")
	c.mustRun("match", "add", "--round", "1", "--w1", "Iron Fang", "--w2", "Rust Brigade", "--winner", "Iron Fang",
		"--vp1", "3", "--vp2", "1", "--glory1", "2", "--glory2", "0", "--cas1", "1", "--cas2", "2")
}

func TestWarbandCommands(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("warband", "add", "  Iron Fang  ")
	assert.Contains(t, out, `Added warband "Iron Fang"`)
	c.mustRun("warband", "add", "Rust Brigade")

	_, _, err := c.run("warband", "add", "Iron Fang")
	assert.ErrorIs(t, err, services.ErrDuplicateWarband)

	_, _, err = c.run("warband", "add", "   ")
	assert.ErrorIs(t, err, services.ErrInvalidInput)
	assert.Equal(t, 2, ExitCode(err))

	assert.Equal(t, "Iron Fang\nRust Brigade\n", c.mustRun("warband", "list"))

	c.mustRun("warband", "remove", "Iron Fang")
	assert.Equal(t, []string{"Rust Brigade"}, c.load().ListWarbands())

	_, _, err = c.run("warband", "remove", "Iron Fang")
	assert.ErrorIs(t, err, services.ErrWarbandNotFound)
	assert.Equal(t, 1, ExitCode(err))
}

func TestWarbandCommandsTrimNames(t *testing.T) {
	c := newCLI(t)
	c.mustRun("warband", "add", " Iron Fang ")

	assert.Contains(t, c.mustRun("warband", "show", "Iron Fang  "), "Iron Fang")
	c.mustRun("warband", "set-stats", "  Iron Fang", "--glory", "4")
	fang, err := c.load().Warband("Iron Fang")
	require.NoError(t, err)
	assert.Equal(t, 4, fang.Glory)

	c.mustRun("warband", "remove", "\tIron Fang\n")
	assert.Empty(t, c.load().ListWarbands())

	_, _, err = c.run("warband", "show", "  ")
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestWarbandListEmpty(t *testing.T) {
	c := newCLI(t)
	assert.Contains(t, c.mustRun("warband", "list"), "No warbands recorded.")
	assert.NoFileExists(t, c.cfg.DataFile)
}

func TestMatchAddScenario(t *testing.T) {
	c := newCLI(t)
	c.recordScenario()

	svc := c.load()
	fang, err := svc.Warband("Iron Fang")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 3, 2, 1}, []int{fang.Wins, fang.Losses, fang.VictoryPoints, fang.Glory, fang.Casualties})
	rust, err := svc.Warband("Rust Brigade")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 1, 0, 2}, []int{rust.Wins, rust.Losses, rust.VictoryPoints, rust.Glory, rust.Casualties})

	out := c.mustRun("warband", "show", "Rust Brigade")
	assert.Contains(t, out, "Iron Fang")
	assert.Contains(t, out, "Loss")
}

func TestMatchAddRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "same warband twice", args: []string{"--round", "1", "--w1", "Iron Fang", "--w2", "Iron Fang", "--winner", "Iron Fang"}},
		{name: "winner not playing", args: []string{"--round", "1", "--w1", "Iron Fang", "--w2", "Rust Brigade", "--winner", "Ash Legion"}},
		{name: "round zero", args: []string{"--round", "0", "--w1", "Iron Fang", "--w2", "Rust Brigade", "--winner", "Iron Fang"}},
		{name: "negative tally", args: []string{"--round", "1", "--w1", "Iron Fang", "--w2", "Rust Brigade", "--winner", "Iron Fang", "--vp1", "-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCLI(t)
			c.mustRun("warband", "add", "Iron Fang")
			c.mustRun("warband", "add", "Rust Brigade")

			_, _, err := c.run(append([]string{"match", "add"}, tt.args...)...)
			assert.ErrorIs(t, err, services.ErrInvalidInput)
			assert.Empty(t, c.load().GetRounds())
		})
	}
}

func TestMatchAddRequiresFlags(t *testing.T) {
	c := newCLI(t)
	_, _, err := c.run("match", "add", "--round", "1")
	assert.Error(t, err)
}

func TestMatchAddUnknownWarbandWarns(t *testing.T) {
	c := newCLI(t)
	c.mustRun("warband", "add", "Iron Fang")

	_, stderr, err := c.run("match", "add", "--round", "1", "--w1", "Iron Fang", "--w2", "Rust Brigade", "--winner", "Iron Fang")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"Rust Brigade" is not a registered warband`)
	assert.Equal(t, []int{1}, c.load().GetRounds())
}

func TestMatchEdit(t *testing.T) {
	c := newCLI(t)
	c.recordScenario()

	c.mustRun("match", "edit", "--round", "1", "--index", "0", "--winner", "Rust Brigade", "--vp2", "4")

	svc := c.load()
	m, err := svc.Match(1, 0)
	require.NoError(t, err)
	assert.Equal(t, "Rust Brigade", m.Winner)
	assert.Equal(t, 4, m.VictoryPoints2)
	assert.Equal(t, 3, m.VictoryPoints1)

	rust, err := svc.Warband("Rust Brigade")
	require.NoError(t, err)
	assert.Equal(t, 1, rust.Wins)
	assert.Equal(t, 4, rust.VictoryPoints)

	_, _, err = c.run("match", "edit", "--round", "1", "--index", "5", "--winner", "Iron Fang")
	assert.ErrorIs(t, err, services.ErrMatchNotFound)

	_, _, err = c.run("match", "edit", "--round", "1", "--index", "0", "--winner", "Ash Legion")
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestRoundCommands(t *testing.T) {
	c := newCLI(t)
	assert.Contains(t, c.mustRun("round", "list"), "No rounds recorded.")

	c.mustRun("warband", "add", "Iron Fang")
	c.mustRun("warband", "add", "Rust Brigade")
	for _, round := range []string{"2", "10", "1"} {
		c.mustRun("match", "add", "--round", round, "--w1", "Iron Fang", "--w2", "Rust Brigade", "--winner", "Rust Brigade")
	}

	assert.Equal(t, "Round 1\t1 match(es)\nRound 2\t1 match(es)\nRound 10\t1 match(es)\n", c.mustRun("round", "list"))

	out := c.mustRun("round", "show", "10")
	assert.Contains(t, out, "Round 10 Matches")
	assert.Contains(t, out, "Rust Brigade")

	_, _, err := c.run("round", "show", "3")
	assert.ErrorIs(t, err, services.ErrRoundNotFound)

	_, _, err = c.run("round", "show", "ten")
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestSetStatsAndRecalc(t *testing.T) {
	c := newCLI(t)
	c.recordScenario()

	out := c.mustRun("warband", "set-stats", "Iron Fang", "--vp", "40")
	assert.Contains(t, out, "replaced by the next recalculation")

	fang, err := c.load().Warband("Iron Fang")
	require.NoError(t, err)
	assert.Equal(t, 40, fang.VictoryPoints)
	assert.Equal(t, 2, fang.Glory)

	_, _, err = c.run("warband", "set-stats", "Iron Fang", "--glory", "-3")
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	c.mustRun("recalc")
	fang, err = c.load().Warband("Iron Fang")
	require.NoError(t, err)
	assert.Equal(t, 3, fang.VictoryPoints)
}

func TestStandingsCommand(t *testing.T) {
	c := newCLI(t)
	c.recordScenario()

	out := c.mustRun("standings")
	assert.Contains(t, out, "Standings")
	assert.Less(t, bytes.Index([]byte(out), []byte("Iron Fang")), bytes.Index([]byte(out), []byte("Rust Brigade")))
}

func TestReportCommand(t *testing.T) {
	c := newCLI(t)
	c.recordScenario()

	path := filepath.Join(t.TempDir(), "out", "report.html")
	out := c.mustRun("report", path, "--title", "Autumn Crusade")
	assert.Contains(t, out, "Report written to")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<h1>Autumn Crusade Report</h1>")
}

func TestReportCommandOpensViewer(t *testing.T) {
	c := newCLI(t)
	c.cfg.OpenReport = true

	var opened []string
	orig := openReport
	t.Cleanup(func() { openReport = orig })
	openReport = func(path string) error {
		opened = append(opened, path)
		return nil
	}

	c.mustRun("report")
	assert.Equal(t, []string{c.cfg.ReportFile}, opened)

	c.mustRun("report", "--no-open")
	assert.Len(t, opened, 1)

	openReport = func(string) error { return errors.New("no viewer") }
	_, stderr, err := c.run("report")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Could not open the report")
}

func TestExportDBCommand(t *testing.T) {
	c := newCLI(t)
	c.recordScenario()

	out := c.mustRun("export-db")
	assert.Contains(t, out, "Exported 2 warband(s) and 1 match(es)")
	assert.FileExists(t, c.cfg.ExportDB)
}

func TestDataFlagOverridesConfig(t *testing.T) {
	c := newCLI(t)
	path := filepath.Join(t.TempDir(), "league.yaml")

	c.mustRun("--data", path, "warband", "add", "Iron Fang")

	campaign, err := services.ReadCampaign(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Iron Fang"}, campaign.Warbands.Names())
	assert.NoFileExists(t, c.cfg.DataFile)
}
