package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLogsDir is where run logs are kept, relative to the working directory
const DefaultLogsDir = "logs"

// InitLogger returns the CLI logger: rota summaries and warnings on stdout,
// full step narration in logs/<env>_<timestamp>.log
func InitLogger(env string) (*zap.Logger, error) {
	return NewLogger(DefaultLogsDir, env, os.Stdout)
}

// NewLogger writes Info and above to console and everything to a JSON run log under logsDir
func NewLogger(logsDir, env string, console io.Writer) (*zap.Logger, error) {
	runLog, err := openRunLog(logsDir, env, time.Now())
	if err != nil {
		return nil, err
	}

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncoding()), zapcore.AddSync(console), zapcore.InfoLevel),
		zapcore.NewCore(zapcore.NewJSONEncoder(runLogEncoding()), zapcore.AddSync(runLog), zapcore.DebugLevel),
	)

	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}

// openRunLog creates logsDir if needed and opens one file per run
func openRunLog(logsDir, env string, started time.Time) (*os.File, error) {
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	name := fmt.Sprintf("%s_%s.log", env, started.Format("2006-01-02_15-04-05"))
	file, err := os.OpenFile(filepath.Join(logsDir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}

func consoleEncoding() zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg
}

// runLogEncoding keys entries by "timestamp" so week runs can be grepped by time
func runLogEncoding() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg
}
