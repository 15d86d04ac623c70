package browser_test

import (
	"testing"

	"github.com/picatz/tavus/internal/browser"
	"github.com/shoenig/test/must"
)

func TestCommand(t *testing.T) {
	const url = "https://example.com/c/123"

	tests := []struct {
		goos string
		want []string
	}{
		{goos: "darwin", want: []string{"open", url}},
		{goos: "windows", want: []string{"rundll32", "url.dll,FileProtocolHandler", url}},
		{goos: "linux", want: []string{"xdg-open", url}},
		{goos: "freebsd", want: []string{"xdg-open", url}},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			cmd := browser.Command(tt.goos, url)
			must.Eq(t, tt.want, cmd.Args)
		})
	}
}

func TestLauncherFunc(t *testing.T) {
	var opened []string

	l := browser.LauncherFunc(func(url string) error {
		opened = append(opened, url)
		return nil
	})

	must.NoError(t, l.Open("https://example.com/a"))
	must.NoError(t, l.Open("https://example.com/b"))
	must.Eq(t, []string{"https://example.com/a", "https://example.com/b"}, opened)
}
