//go:build !windows

package terminal

import (
	"fmt"
	"os"

	"github.com/shirou/gopsutil/v4/process"
)

// takeSnapshot builds a process table from the system process list. The
// walk and allow-list are shared with the Windows path, so ancestry logic
// behaves identically; on these platforms the allow-list simply never
// matches unless extra names are configured.
func takeSnapshot() (Snapshot, uint32, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, 0, fmt.Errorf("list processes: %w", err)
	}

	snap := make(Snapshot, len(procs))
	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			continue
		}
		ppid, err := p.Ppid()
		if err != nil {
			continue
		}
		snap[uint32(p.Pid)] = Process{
			PID:       uint32(p.Pid),
			ParentPID: uint32(ppid),
			Name:      name,
		}
	}

	return snap, uint32(os.Getpid()), nil
}
