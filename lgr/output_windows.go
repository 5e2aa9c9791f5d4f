//go:build windows

package lgr

import (
	"io"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

var procOutputDebugStringW = windows.NewLazySystemDLL("kernel32.dll").NewProc("OutputDebugStringW")

// Console presence is probed once per process.
var hasConsole = sync.OnceValue(func() bool {
	var mode uint32
	if windows.Stdout == 0 || windows.Stdout == windows.InvalidHandle {
		return false
	}
	return windows.GetConsoleMode(windows.Stdout, &mode) == nil
})

func platformLogOutput(stdout io.Writer, msgtype MessageType, text []byte) error {
	if debugChannel(stdout != nil || hasConsole(), msgtype) {
		return outputDebugString(text)
	}
	return writeStdout(stdout, text)
}

// Text stops at the first NUL like it would for the native API.
func outputDebugString(text []byte) error {
	p, err := windows.UTF16PtrFromString(string(cutAtNUL(text)))
	if err != nil {
		return err
	}
	if err := procOutputDebugStringW.Find(); err != nil {
		return err
	}
	procOutputDebugStringW.Call(uintptr(unsafe.Pointer(p)))
	return nil
}

func threadID() int {
	return int(windows.GetCurrentThreadId())
}
