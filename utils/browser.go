package utils

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
)

// OpenInViewer hands path to the desktop's default application for its file type.
func OpenInViewer(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	name, args := viewerCommand(runtime.GOOS, abs)
	if err := exec.Command(name, args...).Start(); err != nil {
		return fmt.Errorf("failed to open %s: %w", abs, err)
	}
	return nil
}

func viewerCommand(goos, path string) (string, []string) {
	switch goos {
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}
	case "darwin":
		return "open", []string{path}
	default:
		return "xdg-open", []string{path}
	}
}
