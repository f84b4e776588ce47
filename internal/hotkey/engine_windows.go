//go:build windows

package hotkey

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/windows"

	"promptbridge/internal/logging"
	"promptbridge/internal/window"
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procSetWindowsHookExW   = user32.NewProc("SetWindowsHookExW")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procGetMessageW         = user32.NewProc("GetMessageW")
	procPostThreadMessageW  = user32.NewProc("PostThreadMessageW")
	procGetAsyncKeyState    = user32.NewProc("GetAsyncKeyState")
	procGetCurrentThreadID  = kernel32.NewProc("GetCurrentThreadId")
)

const (
	whKeyboardLL = 13

	wmKeyDown    = 0x0100
	wmSysKeyDown = 0x0104
	wmQuit       = 0x0012

	llkhfInjected = 0x10

	vkControl = 0x11
)

type kbdLLHookStruct struct {
	VkCode    uint32
	ScanCode  uint32
	Flags     uint32
	Time      uint32
	ExtraInfo uintptr
}

type msg struct {
	HWND    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	PtX     int32
	PtY     int32
}

// activeEngine is the engine the hook callback dispatches to. The hook
// callback is a process-wide slot, so only one engine may run at a time.
var activeEngine atomic.Pointer[Engine]

var hookCallback = windows.NewCallback(func(code int32, wParam, lParam uintptr) uintptr {
	e := activeEngine.Load()
	if e == nil || code < 0 {
		ret, _, _ := procCallNextHookEx.Call(0, uintptr(code), wParam, lParam)
		return ret
	}
	if e.handleKey(wParam, (*kbdLLHookStruct)(unsafe.Pointer(lParam))) {
		return 1
	}
	ret, _, _ := procCallNextHookEx.Call(0, uintptr(code), wParam, lParam)
	return ret
})

// Engine owns a low-level keyboard hook session on a dedicated OS thread.
type Engine struct {
	triggerKey uint32
	targets    *Targets

	mu       sync.Mutex
	running  bool
	threadID uint32
	done     chan struct{}

	// activations decouples focus work from the hook callback, which
	// must return within the system hook timeout.
	activations chan window.Handle
}

// NewEngine creates a hook engine for the Ctrl chord with the given
// trigger key.
func NewEngine(triggerKey int, targets *Targets) *Engine {
	return &Engine{
		triggerKey: uint32(triggerKey),
		targets:    targets,
	}
}

// Start installs the keyboard hook and begins processing chord presses.
// The hook lives on its own locked OS thread; Start returns once the
// hook is installed or installation failed.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		return ErrAlreadyRunning
	}
	if !activeEngine.CompareAndSwap(nil, e) {
		return ErrAlreadyRunning
	}

	installed := make(chan error, 1)
	e.done = make(chan struct{})
	e.activations = make(chan window.Handle, 4)

	go e.activationLoop()
	go e.hookLoop(installed)

	if err := <-installed; err != nil {
		activeEngine.Store(nil)
		close(e.activations)
		return err
	}
	e.running = true
	return nil
}

// Stop removes the hook and shuts down the hook thread.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return
	}
	procPostThreadMessageW.Call(uintptr(e.threadID), wmQuit, 0, 0)
	<-e.done
	activeEngine.Store(nil)
	close(e.activations)
	e.running = false
}

func (e *Engine) hookLoop(installed chan<- error) {
	// The hook and its message pump must share one thread for the
	// lifetime of the session.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	tid, _, _ := procGetCurrentThreadID.Call()
	e.threadID = uint32(tid)

	hook, _, err := procSetWindowsHookExW.Call(whKeyboardLL, hookCallback, 0, 0)
	if hook == 0 {
		installed <- fmt.Errorf("install keyboard hook: %w", err)
		close(e.done)
		return
	}
	installed <- nil
	logging.Info("keyboard hook installed", "trigger_key", fmt.Sprintf("%#x", e.triggerKey))

	var m msg
	for {
		ret, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		if ret == 0 || int32(ret) == -1 {
			break
		}
	}

	procUnhookWindowsHookEx.Call(hook)
	logging.Info("keyboard hook removed")
	close(e.done)
}

// handleKey reports whether the keystroke should be consumed.
func (e *Engine) handleKey(wParam uintptr, kb *kbdLLHookStruct) bool {
	if wParam != wmKeyDown && wParam != wmSysKeyDown {
		return false
	}
	// Ignore synthetic keystrokes, including our own paste sequence.
	if kb.Flags&llkhfInjected != 0 {
		return false
	}
	if kb.VkCode != e.triggerKey || !ctrlDown() {
		return false
	}

	v := Decide(window.Foreground(), e.targets.Terminal(), e.targets.Helper())
	if !v.Consume {
		return false
	}

	select {
	case e.activations <- v.Activate:
	default:
		logging.Warn("activation queue full, chord press dropped")
	}
	return true
}

func (e *Engine) activationLoop() {
	for h := range e.activations {
		if !window.Activate(h) {
			logging.Warn("toggle activation rejected", "hwnd", uintptr(h))
		}
	}
}

func ctrlDown() bool {
	state, _, _ := procGetAsyncKeyState.Call(vkControl)
	return state&0x8000 != 0
}

// Available reports whether a hook session can be established.
func Available() (bool, string) {
	return true, ""
}
