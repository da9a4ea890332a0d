//go:build !windows && !darwin

package ui

import (
	"os/exec"
	"path/filepath"
)

// revealPath opens the folder containing path; xdg-open cannot select items
func revealPath(path string) error {
	return exec.Command("xdg-open", filepath.Dir(path)).Start()
}
