package clipboard

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	atclip "github.com/atotto/clipboard"
)

const copyTimeout = 5 * time.Second

// isWayland returns true if the session is running under Wayland.
func isWayland() bool {
	return os.Getenv("WAYLAND_DISPLAY") != ""
}

// Overridable in tests.
var (
	lookPath  = exec.LookPath
	runWlCopy = func(ctx context.Context, text string) error {
		return exec.CommandContext(ctx, "wl-copy", "--", text).Run()
	}
	writeAll = atclip.WriteAll
)

// CopyText places text on the system clipboard. Under Wayland it prefers
// wl-copy and falls back to the X11/pbcopy path when wl-copy is missing.
func CopyText(text string) error {
	if isWayland() {
		if _, err := lookPath("wl-copy"); err == nil {
			ctx, cancel := context.WithTimeout(context.Background(), copyTimeout)
			defer cancel()
			if err := runWlCopy(ctx, text); err != nil {
				return fmt.Errorf("wl-copy: %w", err)
			}
			return nil
		}
	}
	if err := writeAll(text); err != nil {
		return fmt.Errorf("write to clipboard: %w", err)
	}
	return nil
}
