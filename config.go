package shipping

import (
	"strings"
	"sync"

	"github.com/go-sif/shipping/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// DefaultLogLevel is the level of the stderr Logger used when a PlannerConfig sets neither Logger nor LogLevel
const DefaultLogLevel = "warn"

// defaultLoggers holds one stderr Logger per level, so that repeated GetLogger calls share it
var defaultLoggers sync.Map

// PlannerConfig configures the construction and validation of Plans.
// The zero value is usable.
type PlannerConfig struct {
	FailFast bool               // report only the first validation error, rather than all of them
	LogLevel string             // level for the default Logger ("warn" if empty). Ignored if Logger is set.
	Logger   logrus.FieldLogger // destination for planner log entries
}

// GetLogger returns the configured Logger, or a shared stderr Logger at LogLevel if none is set
func (c *PlannerConfig) GetLogger() logrus.FieldLogger {
	if c.Logger != nil {
		return c.Logger
	}
	name := c.LogLevel
	if strings.TrimSpace(name) == "" {
		name = DefaultLogLevel
	}
	level := logging.ParseLogLevel(name)
	if logger, ok := defaultLoggers.Load(level); ok {
		return logger.(*logrus.Logger)
	}
	logger, _ := defaultLoggers.LoadOrStore(level, logging.CreateLogger(level, nil))
	return logger.(*logrus.Logger)
}

// SetPlannerDefaults registers the default planner settings with a viper instance
func SetPlannerDefaults(v *viper.Viper) {
	defaultSettings := map[string]interface{}{
		"fail_fast": false,
		"log_level": DefaultLogLevel,
	}
	for key, value := range defaultSettings {
		v.SetDefault(key, value)
	}
}

// PlannerConfigFromViper reads a PlannerConfig from the keys fail_fast and log_level
func PlannerConfigFromViper(v *viper.Viper) *PlannerConfig {
	SetPlannerDefaults(v)
	return &PlannerConfig{
		FailFast: v.GetBool("fail_fast"),
		LogLevel: v.GetString("log_level"),
	}
}
