package gorm

import (
	"time"

	gormlogger "gorm.io/gorm/logger"

	"taskboard/pkg/log"
)

// zapWriter forwards GORM's printf-style output to the zap facade
type zapWriter struct{}

func (zapWriter) Printf(format string, args ...interface{}) {
	log.Warnf(format, args...)
}

// NewLogger reports slow statements and SQL errors through pkg/log.
// Missing records are expected and not logged.
func NewLogger(slowThreshold time.Duration) gormlogger.Interface {
	if slowThreshold <= 0 {
		slowThreshold = 200 * time.Millisecond
	}
	return gormlogger.New(zapWriter{}, gormlogger.Config{
		SlowThreshold:             slowThreshold,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
