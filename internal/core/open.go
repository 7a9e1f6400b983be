package core

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/cli/browser"
)

// Launcher hands a repository link to the platform.
type Launcher interface {
	// Open shows url in the default web browser.
	Open(url string) error

	// Share passes url, as plain text, to the platform's share mechanism.
	Share(url string) error
}

// BrowserLauncher opens links with the system browser and shares them
// through the clipboard.
type BrowserLauncher struct {
	out         io.Writer
	openURL     func(string) error
	writeText   func(string) error
	unsupported bool
}

// NewBrowserLauncher creates a launcher. When the clipboard is not available
// shared links are written to out instead (os.Stdout when nil).
func NewBrowserLauncher(out io.Writer) *BrowserLauncher {
	if out == nil {
		out = os.Stdout
	}

	return &BrowserLauncher{
		out:         out,
		openURL:     browser.OpenURL,
		writeText:   clipboard.WriteAll,
		unsupported: clipboard.Unsupported,
	}
}

func (l *BrowserLauncher) Open(rawURL string) error {
	u, err := validateWebURL(rawURL)
	if err != nil {
		return err
	}

	if err := l.openURL(u.String()); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	return nil
}

func (l *BrowserLauncher) Share(rawURL string) error {
	u, err := validateWebURL(rawURL)
	if err != nil {
		return err
	}

	if l.unsupported {
		_, _ = fmt.Fprintln(l.out, u.String())

		return nil
	}

	if err := l.writeText(u.String()); err != nil {
		return fmt.Errorf("failed to copy link to clipboard: %w", err)
	}

	return nil
}

// validateWebURL accepts absolute http and https links only.
func validateWebURL(rawURL string) (*url.URL, error) {
	s := strings.TrimSpace(rawURL)
	if s == "" {
		return nil, fmt.Errorf("repository link is empty")
	}

	u, err := url.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("invalid repository link: %s", rawURL)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return nil, fmt.Errorf("unsupported repository link scheme %q: %s", u.Scheme, rawURL)
	}

	if u.Host == "" {
		return nil, fmt.Errorf("invalid repository link (missing host): %s", rawURL)
	}

	return u, nil
}
