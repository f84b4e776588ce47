package terminal

import "testing"

// chain builds a snapshot where each process's parent is the next PID in
// the list. names[i] belongs to pids[i].
func chain(pids []uint32, names []string) Snapshot {
	snap := make(Snapshot)
	for i, pid := range pids {
		var parent uint32
		if i+1 < len(pids) {
			parent = pids[i+1]
		}
		snap[pid] = Process{PID: pid, ParentPID: parent, Name: names[i]}
	}
	return snap
}

func TestFindDirectParent(t *testing.T) {
	snap := chain(
		[]uint32{100, 200},
		[]string{"helper.exe", "WindowsTerminal.exe"},
	)

	l := NewLocator(nil)
	term, ok := l.Find(snap, 100)
	if !ok {
		t.Fatal("terminal not found")
	}
	if term.PID != 200 || term.Name != "WindowsTerminal.exe" {
		t.Errorf("got %+v", term)
	}
}

func TestFindDeepAncestor(t *testing.T) {
	snap := chain(
		[]uint32{1, 2, 3, 4, 5},
		[]string{"helper.exe", "node.exe", "bash.exe", "wsl.exe", "wezterm-gui.exe"},
	)

	l := NewLocator(nil)
	term, ok := l.Find(snap, 1)
	if !ok {
		t.Fatal("terminal not found")
	}
	if term.PID != 5 {
		t.Errorf("pid = %d, want 5", term.PID)
	}
}

func TestFindCaseInsensitive(t *testing.T) {
	snap := chain(
		[]uint32{1, 2},
		[]string{"helper.exe", "POWERSHELL.EXE"},
	)

	l := NewLocator(nil)
	if _, ok := l.Find(snap, 1); !ok {
		t.Error("uppercase process name should match")
	}
}

func TestFindStopsAtMaxHops(t *testing.T) {
	// Terminal sits 11 hops up; the walk must give up before reaching it.
	pids := make([]uint32, 12)
	names := make([]string, 12)
	for i := range pids {
		pids[i] = uint32(i + 1)
		names[i] = "intermediate.exe"
	}
	names[11] = "cmd.exe"

	l := NewLocator(nil)
	if _, ok := l.Find(chain(pids, names), 1); ok {
		t.Error("terminal beyond hop limit should not be found")
	}

	// At exactly 10 hops it is still reachable.
	names10 := make([]string, 11)
	for i := range names10 {
		names10[i] = "intermediate.exe"
	}
	names10[10] = "cmd.exe"
	if _, ok := l.Find(chain(pids[:11], names10), 1); !ok {
		t.Error("terminal at hop limit should be found")
	}
}

func TestFindBreaksOnCycle(t *testing.T) {
	snap := Snapshot{
		1: {PID: 1, ParentPID: 2, Name: "helper.exe"},
		2: {PID: 2, ParentPID: 3, Name: "a.exe"},
		3: {PID: 3, ParentPID: 2, Name: "b.exe"},
	}

	l := NewLocator(nil)
	if _, ok := l.Find(snap, 1); ok {
		t.Error("cyclic chain should terminate without a match")
	}
}

func TestFindMissingParent(t *testing.T) {
	snap := Snapshot{
		1: {PID: 1, ParentPID: 999, Name: "helper.exe"},
	}

	l := NewLocator(nil)
	if _, ok := l.Find(snap, 1); ok {
		t.Error("dangling parent reference should end the walk")
	}
}

func TestFindSelfNeverMatches(t *testing.T) {
	// The starting process is never a candidate, only its ancestors.
	snap := Snapshot{
		1: {PID: 1, ParentPID: 0, Name: "cmd.exe"},
	}

	l := NewLocator(nil)
	if _, ok := l.Find(snap, 1); ok {
		t.Error("starting process must not match itself")
	}
}

func TestExtraProcessNames(t *testing.T) {
	snap := chain(
		[]uint32{1, 2},
		[]string{"helper.exe", "kitty.exe"},
	)

	if _, ok := NewLocator(nil).Find(snap, 1); ok {
		t.Fatal("kitty.exe should not match the built-in list")
	}
	if _, ok := NewLocator([]string{"Kitty.exe"}).Find(snap, 1); !ok {
		t.Error("configured extra name should match case-insensitively")
	}
}
