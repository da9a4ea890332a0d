//go:build darwin

package ui

import "os/exec"

// revealPath shows path selected in Finder
func revealPath(path string) error {
	return exec.Command("open", "-R", path).Start()
}
