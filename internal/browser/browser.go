// Package browser opens URLs in the user's default web browser.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Launcher opens a URL somewhere a human can see it.
type Launcher interface {
	Open(url string) error
}

// LauncherFunc adapts a function to the Launcher interface.
type LauncherFunc func(url string) error

// Open calls f(url).
func (f LauncherFunc) Open(url string) error {
	return f(url)
}

// System returns a Launcher that hands URLs to the host's default browser.
func System() Launcher {
	return LauncherFunc(func(url string) error {
		return start(Command(runtime.GOOS, url))
	})
}

// Command returns the command used to open url on the given GOOS.
func Command(goos, url string) *exec.Cmd {
	switch goos {
	case "darwin":
		return exec.Command("open", url)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		// Linux and other Unix-like systems.
		return exec.Command("xdg-open", url)
	}
}

// start launches cmd without waiting for the browser to exit.
func start(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	// Reap the child so it doesn't linger as a zombie.
	go func() { _ = cmd.Wait() }()

	return nil
}
