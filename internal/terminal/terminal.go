// Package terminal discovers the terminal emulator hosting the current
// process by walking the process ancestry chain.
//
// The helper is typically launched several processes deep (shell, runtime,
// agent harness), so the terminal is found by climbing parent links from
// the starting process and matching executable names against a known
// allow-list. Not finding a terminal is a normal outcome, not an error:
// the process may run under a service host or an unknown emulator.
package terminal

import (
	"strings"
)

// maxHops bounds the ancestry walk. Real terminal chains are a handful of
// hops deep; anything longer is a reparented or corrupt chain.
const maxHops = 10

// knownTerminals is the built-in executable allow-list, lowercase.
var knownTerminals = map[string]bool{
	"windowsterminal.exe": true,
	"cmd.exe":             true,
	"powershell.exe":      true,
	"pwsh.exe":            true,
	"mintty.exe":          true,
	"conemu64.exe":        true,
	"conemu.exe":          true,
	"alacritty.exe":       true,
	"wezterm-gui.exe":     true,
}

// Process is one entry of a process snapshot.
type Process struct {
	PID       uint32
	ParentPID uint32
	Name      string
}

// Snapshot is a point-in-time view of the process table, keyed by PID.
// The ancestry walk reads only this map, so the table is consulted exactly
// once per lookup regardless of chain depth.
type Snapshot map[uint32]Process

// Terminal identifies a discovered terminal emulator process.
type Terminal struct {
	PID  uint32
	Name string
}

// Locator finds the terminal hosting a process.
type Locator struct {
	extra map[string]bool
}

// NewLocator creates a locator. extraNames extends the built-in terminal
// allow-list; matching is case-insensitive.
func NewLocator(extraNames []string) *Locator {
	extra := make(map[string]bool, len(extraNames))
	for _, n := range extraNames {
		if n = strings.ToLower(strings.TrimSpace(n)); n != "" {
			extra[n] = true
		}
	}
	return &Locator{extra: extra}
}

// IsTerminal reports whether name matches the allow-list.
func (l *Locator) IsTerminal(name string) bool {
	n := strings.ToLower(name)
	return knownTerminals[n] || l.extra[n]
}

// Find walks the ancestry of startPID in snap and returns the first
// ancestor whose executable name matches the allow-list. The walk starts
// at the parent of startPID, visits at most maxHops ancestors, and stops
// early on a missing entry or a PID already seen.
//
// ok is false when no terminal was found. That is the expected result in
// many environments and callers should treat it as a degraded mode, not
// a failure.
func (l *Locator) Find(snap Snapshot, startPID uint32) (Terminal, bool) {
	seen := map[uint32]bool{startPID: true}
	current := startPID

	for i := 0; i < maxHops; i++ {
		node, exists := snap[current]
		if !exists {
			break
		}
		parent := node.ParentPID
		if parent == 0 || seen[parent] {
			break
		}
		pnode, exists := snap[parent]
		if !exists {
			break
		}
		if l.IsTerminal(pnode.Name) {
			return Terminal{PID: parent, Name: pnode.Name}, true
		}
		seen[parent] = true
		current = parent
	}
	return Terminal{}, false
}

// FindCurrent takes a fresh snapshot and locates the terminal hosting the
// current process.
func (l *Locator) FindCurrent() (Terminal, bool, error) {
	snap, pid, err := takeSnapshot()
	if err != nil {
		return Terminal{}, false, err
	}
	t, ok := l.Find(snap, pid)
	return t, ok, nil
}
