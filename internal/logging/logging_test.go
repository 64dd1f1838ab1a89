package logging

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel(" error "))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("nonsense"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel(""))
}

func TestNewRespectsLevel(t *testing.T) {
	l := New("warn", "json")
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
	l := New("info", "console")
	assert.Same(t, l, OrNop(l))
}

func TestEncoderTimeLayouts(t *testing.T) {
	entry := zapcore.Entry{
		Level:   zapcore.InfoLevel,
		Time:    time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC),
		Message: "rolled",
	}

	buf, err := zapcore.NewConsoleEncoder(consoleEncoderConfig()).EncodeEntry(entry, nil)
	assert.NoError(t, err)
	assert.Equal(t, "2024-05-06 07:08:09 | INFO | rolled\n", buf.String())

	buf, err = zapcore.NewJSONEncoder(jsonEncoderConfig()).EncodeEntry(entry, nil)
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), `"ts":"2024-05-06T07:08:09.000Z"`)
	assert.Contains(t, buf.String(), `"level":"info"`)
}
