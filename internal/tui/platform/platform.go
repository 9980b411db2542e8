// Package platform hands URLs the client cannot fetch to the operating
// system.
package platform

import (
	"bytes"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
)

// ValidateExternalURL accepts absolute URLs with any scheme other than
// gemini. Schemes such as mailto carry no host.
func ValidateExternalURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("link has no URL")
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("invalid URL format")
	}
	switch strings.ToLower(parsed.Scheme) {
	case "":
		return nil, fmt.Errorf("URL has no scheme: %s", trimmed)
	case "gemini":
		return nil, fmt.Errorf("gemini URLs are opened in place")
	case "file", "javascript":
		return nil, fmt.Errorf("unsupported URL scheme: %s", parsed.Scheme)
	case "http", "https", "gopher", "finger", "spartan":
		if parsed.Host == "" {
			return nil, fmt.Errorf("invalid URL host")
		}
	}
	return parsed, nil
}

// Opener opens URLs in the system handler and falls back to the clipboard.
// The zero value uses the real commands.
type Opener struct {
	Launch func(string) error
	Copy   func(string) error
	// Copied records whether the last URL went to the clipboard instead of
	// a browser.
	Copied func(u *url.URL)
}

func (o Opener) openFn() func(string) error {
	if o.Launch != nil {
		return o.Launch
	}
	return OpenURLInBrowser
}

func (o Opener) copyFn() func(string) error {
	if o.Copy != nil {
		return o.Copy
	}
	return CopyURLToClipboard
}

// Open validates u and opens it, copying it to the clipboard when no
// handler can be started.
func (o Opener) Open(u *url.URL) error {
	valid, err := ValidateExternalURL(u.String())
	if err != nil {
		return err
	}
	if err := o.openFn()(valid.String()); err == nil {
		return nil
	}
	if err := o.copyFn()(valid.String()); err != nil {
		return fmt.Errorf("could not open URL or copy to clipboard")
	}
	if o.Copied != nil {
		o.Copied(valid)
	}
	return nil
}

func browserCommand(goos, url string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		return "xdg-open", []string{url}
	}
}

func OpenURLInBrowser(url string) error {
	name, args := browserCommand(runtime.GOOS, url)
	return exec.Command(name, args...).Run()
}

var clipboardCommands = [][]string{
	{"pbcopy"},
	{"wl-copy"},
	{"xclip", "-selection", "clipboard"},
	{"xsel", "--clipboard", "--input"},
}

func selectClipboardCommand(lookPath func(string) (string, error)) ([]string, error) {
	for _, c := range clipboardCommands {
		if _, err := lookPath(c[0]); err == nil {
			return c, nil
		}
	}
	return nil, fmt.Errorf("no clipboard command available")
}

func CopyURLToClipboard(url string) error {
	c, err := selectClipboardCommand(exec.LookPath)
	if err != nil {
		return err
	}
	cmd := exec.Command(c[0], c[1:]...)
	cmd.Stdin = bytes.NewBufferString(url)
	return cmd.Run()
}
