package shipping

import (
	"bytes"
	"testing"

	"github.com/go-sif/shipping/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestPlannerConfigDefaults(t *testing.T) {
	conf := PlannerConfigFromViper(viper.New())
	require.False(t, conf.FailFast)
	require.Equal(t, "warn", conf.LogLevel)
	require.Nil(t, conf.Logger)
}

func TestPlannerConfigFromViper(t *testing.T) {
	v := viper.New()
	v.Set("fail_fast", true)
	v.Set("log_level", "debug")
	conf := PlannerConfigFromViper(v)
	require.True(t, conf.FailFast)
	require.Equal(t, "debug", conf.LogLevel)

	logger, ok := conf.GetLogger().(*logrus.Logger)
	require.True(t, ok)
	require.Equal(t, logrus.DebugLevel, logger.GetLevel())
}

func TestPlannerConfigLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.CreateLogger(logging.WarnLevel, &buf)
	conf := &PlannerConfig{Logger: logger}
	require.Equal(t, logger, conf.GetLogger())
	conf.GetLogger().Info("dropped")
	conf.GetLogger().Warn("kept")
	require.NotContains(t, buf.String(), "dropped")
	require.Contains(t, buf.String(), "kept")
}

func TestDefaultLoggerIsSharedAndQuiet(t *testing.T) {
	conf := &PlannerConfig{}
	first, ok := conf.GetLogger().(*logrus.Logger)
	require.True(t, ok)
	require.Equal(t, logrus.WarnLevel, first.GetLevel())
	require.Same(t, first, conf.GetLogger())
	require.Same(t, first, (&PlannerConfig{LogLevel: "warn"}).GetLogger())

	debug := (&PlannerConfig{LogLevel: "debug"}).GetLogger()
	require.NotSame(t, first, debug)
	require.Same(t, debug, (&PlannerConfig{LogLevel: "DEBUG"}).GetLogger())
}
