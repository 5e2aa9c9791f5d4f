//go:build !windows && !android

package lgr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_DefaultOutput(t *testing.T) {
	t.Run("stdout_for_every_type", func(t *testing.T) {
		out := &FakeWriter{}
		o := DefaultOutput{Stdout: out}
		for _, mt := range allTypes {
			assert.NoError(t, o.LogOutput(mt, []byte(mt.String()+";")))
		}
		assert.Equal(t, "Text;Error;DebugText;Debug;Assert;", out.String())
	})
	t.Run("write_error", func(t *testing.T) {
		o := DefaultOutput{Stdout: &ErrorWriter{}}
		assert.EqualError(t, o.LogOutput(LOG_TEXT, []byte("x")), errorStr)
	})
	t.Run("through_logger", func(t *testing.T) {
		out := &FakeWriter{}
		ferr := &FakeWriter{}
		l := InitWithParams(LOGMASK_ALL, DefaultOutput{Stdout: out}, ferr)
		l.debug = false
		l.LogMessage(LOG_ERROR, "x=%d", 5)
		l.LogMessage(LOG_TEXT, "hi")
		assert.Equal(t, "Error: x=5\nhi", out.String())
		assert.Empty(t, ferr.String())
	})
}
