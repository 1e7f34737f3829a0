package shared

import (
	"fmt"
	"os/exec"
	"runtime"
)

var getRuntime = func() string { return runtime.GOOS }

// OpenBrowser opens the default system browser at the specified URL, used to
// send the user to the identity provider's authorization page.
//
// Supports Linux, macOS, and Windows. Callers should fall back to printing
// the URL when this fails; a missing opener must not abort the flow.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd
	switch rt := getRuntime(); rt {
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return fmt.Errorf("unsupported platform: %s", rt)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	return nil
}
