package sqlite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// slogLogger routes GORM's logging into the application slog.Logger.
type slogLogger struct {
	log           *slog.Logger
	level         logger.LogLevel
	slowThreshold time.Duration
}

func newGormLogger(l *slog.Logger) logger.Interface {
	level := logger.Warn
	if l.Enabled(context.Background(), slog.LevelDebug) {
		level = logger.Info
	}
	return &slogLogger{
		log:           l.With("component", "gorm"),
		level:         level,
		slowThreshold: 200 * time.Millisecond,
	}
}

func (s *slogLogger) LogMode(level logger.LogLevel) logger.Interface {
	c := *s
	c.level = level
	return &c
}

func (s *slogLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if s.level >= logger.Info {
		s.log.InfoContext(ctx, fmt.Sprintf(msg, args...))
	}
}

func (s *slogLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if s.level >= logger.Warn {
		s.log.WarnContext(ctx, fmt.Sprintf(msg, args...))
	}
}

func (s *slogLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if s.level >= logger.Error {
		s.log.ErrorContext(ctx, fmt.Sprintf(msg, args...))
	}
}

func (s *slogLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if s.level <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && s.level >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		s.log.ErrorContext(ctx, "query failed", "error", err, "sql", sql, "rows", rows, "elapsed", elapsed)
	case s.slowThreshold > 0 && elapsed > s.slowThreshold && s.level >= logger.Warn:
		sql, rows := fc()
		s.log.WarnContext(ctx, "slow query", "sql", sql, "rows", rows, "elapsed", elapsed)
	case s.level >= logger.Info:
		sql, rows := fc()
		s.log.DebugContext(ctx, "query", "sql", sql, "rows", rows, "elapsed", elapsed)
	}
}
