//go:build !windows && !android

package lgr

import (
	"io"
	"os"
)

func platformLogOutput(stdout io.Writer, msgtype MessageType, text []byte) error {
	return writeStdout(stdout, text)
}

// Only logd records it, pid is close enough elsewhere.
func threadID() int {
	return os.Getpid()
}
