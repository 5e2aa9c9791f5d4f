//go:build android

package lgr

import (
	"io"
	"os"
	"sync"

	"golang.org/x/sys/unix"
)

// The logd connection is opened on first use and kept for the process
// lifetime. A failed dial is not retried.
var systemLog = sync.OnceValues(func() (Output, error) {
	w, err := DialLogd(LOG_OUTPUT_TAG)
	if err != nil {
		return nil, err
	}
	return w, nil
})

func platformLogOutput(stdout io.Writer, msgtype MessageType, text []byte) error {
	if stdout != nil {
		return writeStdout(stdout, text)
	}
	return routeSystemLog(systemLog, os.Stdout, msgtype, text)
}

func threadID() int {
	return unix.Gettid()
}
