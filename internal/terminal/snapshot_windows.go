//go:build windows

package terminal

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// takeSnapshot captures the process table via Toolhelp32 and returns it
// alongside the current PID. One snapshot serves the whole ancestry walk.
func takeSnapshot() (Snapshot, uint32, error) {
	handle, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return nil, 0, fmt.Errorf("create process snapshot: %w", err)
	}
	defer windows.CloseHandle(handle)

	snap := make(Snapshot)
	var entry windows.ProcessEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))

	if err := windows.Process32First(handle, &entry); err != nil {
		return nil, 0, fmt.Errorf("read first process entry: %w", err)
	}
	for {
		snap[entry.ProcessID] = Process{
			PID:       entry.ProcessID,
			ParentPID: entry.ParentProcessID,
			Name:      windows.UTF16ToString(entry.ExeFile[:]),
		}
		if err := windows.Process32Next(handle, &entry); err != nil {
			break
		}
	}

	return snap, windows.GetCurrentProcessId(), nil
}
