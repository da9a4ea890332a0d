//go:build windows

package ui

import "os/exec"

// revealPath opens Explorer with path selected
func revealPath(path string) error {
	return exec.Command("explorer", "/select,"+path).Start()
}
