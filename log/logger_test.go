package log

import (
	"bytes"
	"testing"

	"github.com/neuronlabs/uni-logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	New(buf, "", 0)
	require.NoError(t, SetLevel(LDEBUG))
	defer func() {
		_ = SetLevel(LINFO)
	}()

	m := NewModuleLogger("testing")
	m.Debugf("composed: %d", 3)
	assert.Contains(t, buf.String(), "[testing] composed: 3")

	buf.Reset()
	m.Debug3f("not enabled")
	assert.Empty(t, buf.String())

	m.SetLevel(LWARNING)
	assert.Equal(t, LWARNING, m.Level())
	m.Infof("should not be written")
	assert.Empty(t, buf.String())

	m.Errorf("failed: %s", "reason")
	assert.Contains(t, buf.String(), "[testing] failed: reason")

	t.Run("FollowsShared", func(t *testing.T) {
		m.SetLevel(LUNKNOWN)
		assert.Equal(t, LDEBUG, m.Level())
		require.NoError(t, SetLevel(LERROR))
		assert.False(t, m.IsLevelEnabled(LINFO))
		assert.True(t, m.IsLevelEnabled(LCRITICAL))
	})

	t.Run("OwnLogger", func(t *testing.T) {
		own := &bytes.Buffer{}
		basic := unilogger.NewBasicLogger(own, "", 0)
		basic.SetLevel(LDEBUG)
		o := NewModuleLogger("own", basic)
		// the shared level is LERROR here; the own logger filters by its own level.
		assert.Equal(t, LERROR, CurrentLevel())
		o.Debugf("written: %s", "here")
		assert.Contains(t, own.String(), "[own] written: here")

		own.Reset()
		o.Debug3f("filtered by the own logger")
		assert.Empty(t, own.String())
	})
}

func TestSetLevel(t *testing.T) {
	err := SetLevel(LUNKNOWN)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownLevel)
}
