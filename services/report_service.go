package services

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strconv"

	"github.com/gosimple/slug"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"campaign-tracker/models"
	"campaign-tracker/utils"
)

// DefaultReportTitle heads the exported document.
const DefaultReportTitle = "Trench Crusade Campaign"

// ReportService renders the campaign as a self-contained HTML document.
type ReportService struct {
	Title   string
	printer *message.Printer
}

func NewReportService(title string) *ReportService {
	if title == "" {
		title = DefaultReportTitle
	}
	return &ReportService{Title: title, printer: message.NewPrinter(language.English)}
}

type reportView struct {
	Title    string
	Warbands []reportWarband
}

type reportWarband struct {
	Name          string
	Anchor        string
	Wins          string
	Losses        string
	VictoryPoints string
	Glory         string
	Casualties    string
	Matches       []reportRow
}

type reportRow struct {
	Round         int
	Opponent      string
	Result        string
	VictoryPoints string
	Glory         string
	Casualties    string
}

// Render writes the report for every warband in roster order. Each match row is
// shown from that warband's side: its opponent, its result and its own tallies.
func (s *ReportService) Render(w io.Writer, campaign *models.Campaign) error {
	view := reportView{Title: s.Title}
	anchors := map[string]int{}

	campaign.Warbands.Each(func(name string, wb *models.Warband) {
		entry := reportWarband{
			Name:          name,
			Anchor:        uniqueAnchor(anchors, name),
			Wins:          s.number(wb.Wins),
			Losses:        s.number(wb.Losses),
			VictoryPoints: s.number(wb.VictoryPoints),
			Glory:         s.number(wb.Glory),
			Casualties:    s.number(wb.Casualties),
		}
		for _, m := range wb.Matches {
			side := m.PerspectiveOf(name)
			result := "Loss"
			if side.Won {
				result = "Win"
			}
			entry.Matches = append(entry.Matches, reportRow{
				Round:         m.Round,
				Opponent:      side.Opponent,
				Result:        result,
				VictoryPoints: s.number(side.VictoryPoints),
				Glory:         s.number(side.Glory),
				Casualties:    s.number(side.Casualties),
			})
		}
		view.Warbands = append(view.Warbands, entry)
	})

	if err := reportTemplate.Execute(w, view); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

// Export renders the report into the file at path, creating its directory.
func (s *ReportService) Export(path string, campaign *models.Campaign) error {
	var buf bytes.Buffer
	if err := s.Render(&buf, campaign); err != nil {
		return err
	}
	if err := utils.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}

func (s *ReportService) number(n int) string {
	return s.printer.Sprintf("%d", n)
}

func uniqueAnchor(seen map[string]int, name string) string {
	base := slug.Make(name)
	if base == "" {
		base = "warband"
	}
	seen[base]++
	if seen[base] == 1 {
		return base
	}
	return base + "-" + strconv.Itoa(seen[base])
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<style>
body{background:#111;color:#ddd;font-family:'Georgia',serif;padding:2em}
h1,h2{color:#b53}
a{color:#c96}
table{width:100%;border-collapse:collapse;margin:1em 0}
th,td{border:1px solid #555;padding:0.5em;text-align:left}
th{background:#333}
tr:nth-child(even){background:#222}
</style>
</head>
<body>
<h1>{{.Title}} Report</h1>
{{- if .Warbands}}
<nav>
<ul>
{{- range .Warbands}}
<li><a href="#{{.Anchor}}">{{.Name}}</a></li>
{{- end}}
</ul>
</nav>
{{- else}}
<p>No warbands recorded.</p>
{{- end}}
{{- range .Warbands}}
<h2 id="{{.Anchor}}">{{.Name}}</h2>
<ul>
<li><strong>Wins:</strong> {{.Wins}}</li>
<li><strong>Losses:</strong> {{.Losses}}</li>
<li><strong>Victory Points:</strong> {{.VictoryPoints}}</li>
<li><strong>Glory:</strong> {{.Glory}}</li>
<li><strong>Casualties:</strong> {{.Casualties}}</li>
</ul>
<table>
<tr><th>Round</th><th>Opponent</th><th>Result</th><th>VP</th><th>Glory</th><th>Casualties</th></tr>
{{- range .Matches}}
<tr><td>{{.Round}}</td><td>{{.Opponent}}</td><td>{{.Result}}</td><td>{{.VictoryPoints}}</td><td>{{.Glory}}</td><td>{{.Casualties}}</td></tr>
{{- end}}
</table>
{{- end}}
</body>
</html>
`))
