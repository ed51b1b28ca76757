package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"passgate/config"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newCapturedGormLogger(cfg *config.Config) (logger.Interface, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	base := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	return newGormSlogLogger(base, cfg), buf
}

func sqlAndRows(sql string, rows int64) func() (string, int64) {
	return func() (string, int64) { return sql, rows }
}

func TestGormSlogLogger_QueryFailure(t *testing.T) {
	gormLogger, buf := newCapturedGormLogger(&config.Config{})

	gormLogger.Trace(context.Background(), time.Now(),
		sqlAndRows("INSERT INTO credentials", 0), errors.New("connection refused"))

	assert.Contains(t, buf.String(), "GORM query failed")
	assert.Contains(t, buf.String(), "connection refused")
}

func TestGormSlogLogger_SkipsRecordNotFound(t *testing.T) {
	gormLogger, buf := newCapturedGormLogger(&config.Config{})

	gormLogger.Trace(context.Background(), time.Now(),
		sqlAndRows("SELECT * FROM credentials", 0), gorm.ErrRecordNotFound)

	assert.Empty(t, buf.String())
}

func TestGormSlogLogger_SlowQuery(t *testing.T) {
	gormLogger, buf := newCapturedGormLogger(&config.Config{})

	begin := time.Now().Add(-2 * defaultGormSlowThreshold)
	gormLogger.Trace(context.Background(), begin,
		sqlAndRows("SELECT * FROM credentials", 1), nil)

	assert.Contains(t, buf.String(), "GORM slow query")
}

func TestGormSlogLogger_InfoOnlyInDebug(t *testing.T) {
	gormLogger, buf := newCapturedGormLogger(&config.Config{})

	gormLogger.Trace(context.Background(), time.Now(),
		sqlAndRows("SELECT * FROM credentials", 1), nil)
	assert.Empty(t, buf.String())

	debugCfg := &config.Config{}
	debugCfg.Env.Debug = true
	debugLogger, debugBuf := newCapturedGormLogger(debugCfg)

	debugLogger.Trace(context.Background(), time.Now(),
		sqlAndRows("SELECT * FROM credentials", 1), nil)
	assert.Contains(t, debugBuf.String(), "GORM query")
}
