//go:build windows

package inject

import (
	"fmt"
	"unicode/utf16"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32        = windows.NewLazySystemDLL("user32.dll")
	procSendInput = user32.NewProc("SendInput")
)

const (
	inputKeyboard = 1

	keyeventfKeyUp   = 0x0002
	keyeventfUnicode = 0x0004
)

type keyboardInput struct {
	Vk        uint16
	Scan      uint16
	Flags     uint32
	Time      uint32
	ExtraInfo uintptr
}

// input matches the 64-bit INPUT layout. The union is as wide as
// MOUSEINPUT, so KEYBDINPUT needs trailing padding.
type input struct {
	Type uint32
	_    uint32
	Ki   keyboardInput
	_    uint64
}

func send(events []input) error {
	if len(events) == 0 {
		return nil
	}
	n, _, err := procSendInput.Call(
		uintptr(len(events)),
		uintptr(unsafe.Pointer(&events[0])),
		unsafe.Sizeof(events[0]),
	)
	if int(n) != len(events) {
		return fmt.Errorf("sent %d of %d input events: %w", n, len(events), err)
	}
	return nil
}

func keyEvent(vk uint16, flags uint32) input {
	return input{Type: inputKeyboard, Ki: keyboardInput{Vk: vk, Flags: flags}}
}

// PressKey sends a key-down event for the virtual key.
func PressKey(vk uint16) error {
	return send([]input{keyEvent(vk, 0)})
}

// ReleaseKey sends a key-up event for the virtual key.
func ReleaseKey(vk uint16) error {
	return send([]input{keyEvent(vk, keyeventfKeyUp)})
}

// TapKey presses and releases the virtual key.
func TapKey(vk uint16) error {
	return send([]input{
		keyEvent(vk, 0),
		keyEvent(vk, keyeventfKeyUp),
	})
}

// Chord holds modifier down, taps key, then releases modifier. All four
// events go out in a single SendInput call so no foreign keystroke can
// interleave.
func Chord(modifier, key uint16) error {
	return send([]input{
		keyEvent(modifier, 0),
		keyEvent(key, 0),
		keyEvent(key, keyeventfKeyUp),
		keyEvent(modifier, keyeventfKeyUp),
	})
}

// TypeText sends the string as Unicode key events, bypassing layout and
// dead-key handling.
func TypeText(s string) error {
	units := utf16.Encode([]rune(s))
	events := make([]input, 0, len(units)*2)
	for _, u := range units {
		events = append(events,
			input{Type: inputKeyboard, Ki: keyboardInput{Scan: u, Flags: keyeventfUnicode}},
			input{Type: inputKeyboard, Ki: keyboardInput{Scan: u, Flags: keyeventfUnicode | keyeventfKeyUp}},
		)
	}
	return send(events)
}
