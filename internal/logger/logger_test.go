package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerInitialization(t *testing.T) {
	assert.NotNil(t, User, "User logger should not be nil after init")
	assert.NotNil(t, Op, "Op logger should not be nil after init")
	assert.Same(t, GetLogger(), GetLogger())
}

func TestLoggerSetup(t *testing.T) {
	tests := []struct {
		name     string
		verbose  bool
		jsonLogs bool
		quiet    bool
		want     logrus.Level
	}{
		{"Default", false, false, false, logrus.InfoLevel},
		{"Verbose", true, false, false, logrus.DebugLevel},
		{"Quiet", false, false, true, logrus.ErrorLevel},
		{"JSON", false, true, false, logrus.InfoLevel},
		{"Verbose JSON", true, true, false, logrus.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_MODE", "")
			t.Setenv("LOG_FORMAT", "")
			Setup(tt.verbose, tt.jsonLogs, tt.quiet)

			require.NotNil(t, User)
			require.NotNil(t, Op)
			assert.Equal(t, tt.want, GetLogger().GetInternalLogger().GetLevel())
		})
	}
}

func TestSetupEnvOverride(t *testing.T) {
	t.Setenv("LOG_MODE", "quiet")
	Setup(true, false, false)
	assert.Equal(t, logrus.ErrorLevel, GetLogger().GetInternalLogger().GetLevel())

	t.Setenv("LOG_MODE", "debug")
	Setup(false, false, true)
	assert.Equal(t, logrus.DebugLevel, GetLogger().GetInternalLogger().GetLevel())

	t.Setenv("LOG_MODE", "")
	Setup(false, false, false)
}

func newRoutedLogger() (*logrus.Logger, *bytes.Buffer, *bytes.Buffer) {
	var userBuf, opBuf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&bytes.Buffer{})
	l.SetLevel(logrus.DebugLevel)

	hook := NewOutputRouterHook()
	hook.UserWriter = &userBuf
	hook.OpWriter = &opBuf
	hook.OpFormatter = &CLIFormatter{DisableTimestamp: true, DisableColors: true}
	l.AddHook(hook)
	return l, &userBuf, &opBuf
}

func TestOutputRouting(t *testing.T) {
	l, userBuf, opBuf := newRoutedLogger()
	user := &UserLogger{logger: l}
	op := &OpLogger{logger: l}

	user.Toast("Result 1")
	op.WithFields(map[string]interface{}{"step": "fetch-result-1"}).Debug("API1 end")

	assert.Equal(t, "🍞 Result 1\n", userBuf.String())
	assert.Equal(t, "DEBUG: API1 end step=fetch-result-1\n", opBuf.String())
}

func TestUserLoggerEmojis(t *testing.T) {
	l, userBuf, _ := newRoutedLogger()
	user := &UserLogger{logger: l}

	tests := []struct {
		name string
		log  func()
		want string
	}{
		{"Info", func() { user.Info("plain") }, "plain\n"},
		{"Starting", func() { user.Starting("launch") }, "🚀 launch\n"},
		{"Successf", func() { user.Successf("done in %s", "6s") }, "✅ done in 6s\n"},
		{"Errorf", func() { user.Errorf("failed: %v", "boom") }, "❌ failed: boom\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userBuf.Reset()
			tt.log()
			assert.Equal(t, tt.want, userBuf.String())
		})
	}
}

func TestHookKeepsOriginalMessage(t *testing.T) {
	l, _, _ := newRoutedLogger()
	capture := &testHook{}
	l.AddHook(capture)

	(&UserLogger{logger: l}).Toast("Result 2")

	require.Len(t, capture.entries, 1)
	assert.Equal(t, "Result 2", capture.entries[0].Message)
	assert.Equal(t, string(UserLog), capture.entries[0].Data["log_type"])
}

func TestCLIFormatterSortsFields(t *testing.T) {
	f := &CLIFormatter{DisableTimestamp: true, DisableColors: true}
	entry := logrus.NewEntry(logrus.New()).WithFields(logrus.Fields{
		"to":       "main",
		"from":     "io",
		"log_type": "op",
	})
	entry.Level = logrus.InfoLevel
	entry.Message = "hop"

	out, err := f.Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "INFO: hop from=io to=main\n", string(out))
}

// testHook captures entries for assertions
type testHook struct {
	entries []*logrus.Entry
}

func (h *testHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *testHook) Fire(entry *logrus.Entry) error {
	h.entries = append(h.entries, entry)
	return nil
}
