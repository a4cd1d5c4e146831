package logging

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLevel(t *testing.T) {
	tests := map[string]logrus.Level{
		"debug":   logrus.DebugLevel,
		"ERROR":   logrus.ErrorLevel,
		"info":    logrus.InfoLevel,
		"warn":    logrus.WarnLevel,
		"trace":   logrus.TraceLevel,
		"fatal":   logrus.FatalLevel,
		"verbose": logrus.TraceLevel,
		"":        logrus.TraceLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, GetLevel(in), in)
	}
}

func TestSetup_WritesToRotatedFile(t *testing.T) {
	defer logrus.SetOutput(os.Stderr)
	defer logrus.SetLevel(logrus.InfoLevel)

	logPath := filepath.Join(t.TempDir(), "activeweek")
	Setup(LoggerSetupParams{
		LogFileName: logPath,
		LogLevel:    "info",
	})
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())

	logrus.Info("workouts loaded")
	logrus.Debug("hidden")

	content, err := os.ReadFile(logPath + ".log")
	require.NoError(t, err)
	assert.Contains(t, string(content), "workouts loaded")
	assert.NotContains(t, string(content), "hidden")
}

func TestSentryHook_Fire(t *testing.T) {
	var mu sync.Mutex
	var captured []*sentry.Event
	client, err := sentry.NewClient(sentry.ClientOptions{
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			mu.Lock()
			defer mu.Unlock()
			captured = append(captured, event)
			return nil
		},
	})
	require.NoError(t, err)

	hook := newSentryHook(sentry.NewHub(client, sentry.NewScope()), []logrus.Level{logrus.ErrorLevel})
	assert.Equal(t, []logrus.Level{logrus.ErrorLevel}, hook.Levels())

	logger := logrus.New()
	logger.SetOutput(&discard{})
	logger.AddHook(hook)

	logger.WithError(errors.New("redis down")).WithField("key", "workouts").Error("persist failed")
	logger.Warn("not forwarded")

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, captured, 1)
	assert.Equal(t, "persist failed", captured[0].Message)
	assert.Equal(t, sentry.LevelError, captured[0].Level)
	assert.Equal(t, "redis down", captured[0].Extra[logrus.ErrorKey])
	assert.Equal(t, "workouts", captured[0].Extra["key"])
}

func TestSentryHook_NoClient(t *testing.T) {
	hook := newSentryHook(sentry.NewHub(nil, sentry.NewScope()), logrus.AllLevels)
	assert.Error(t, hook.Fire(logrus.NewEntry(logrus.New())))
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
