//go:build windows

package spawn

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"syscall"
)

const createNoWindow = 0x08000000

// spawnResident uses PowerShell Start-Process for a true detach: the
// resident helper must survive the hook process and own no console. A
// plain exec keeps a console inheritance link that pops a window when
// the hook's console dies.
func spawnResident(opts Options) error {
	exePath := opts.ExePath
	if exePath == "" {
		p, err := os.Executable()
		if err != nil {
			return fmt.Errorf("resolve executable path: %w", err)
		}
		exePath = p
	}

	args := []string{"-resident"}
	if opts.Label != "" {
		args = append(args, "-label", opts.Label)
	}
	if opts.Session != "" {
		args = append(args, "-session", opts.Session)
	}
	if opts.TerminalHWND != 0 {
		args = append(args, "-terminal-hwnd", strconv.FormatUint(uint64(opts.TerminalHWND), 10))
	}

	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = "'" + a + "'"
	}
	psCommand := fmt.Sprintf("Start-Process '%s' -ArgumentList %s -WindowStyle Hidden",
		exePath, strings.Join(quoted, ","))

	cmd := exec.Command("powershell", "-WindowStyle", "Hidden", "-Command", psCommand)
	cmd.SysProcAttr = &syscall.SysProcAttr{CreationFlags: createNoWindow}
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("spawn resident helper: %w", err)
	}
	// Deliberately not waited on.
	return cmd.Process.Release()
}
