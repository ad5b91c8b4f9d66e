package mylog

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	"go.uber.org/zap"
)

var (
	baseLoggerOnce sync.Once
	baseLogger     *zap.SugaredLogger
)

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") == "" {
		New = newStandardLogger
	}
}

type standardLogger struct {
	componentName string
	logger        *zap.SugaredLogger
}

func newStandardLogger(componentName string) Logger {
	return standardLogger{
		componentName: componentName,
		logger:        getBaseLogger().Named(componentName),
	}
}

func getBaseLogger() *zap.SugaredLogger {
	baseLoggerOnce.Do(func() {
		l, err := zap.NewDevelopment()
		if err != nil {
			log.Printf("error creating development logger, falling back to no-op: %s", err)
			l = zap.NewNop()
		}
		baseLogger = l.Sugar()
	})
	return baseLogger
}

func (l standardLogger) Log(ctx context.Context, traceLabel string, severity Severity, format string, a ...any) {
	if !severity.enabled() {
		return
	}

	logger := l.logger
	if traceLabel != "" {
		logger = logger.With("aggregate", traceLabel)
	}

	msg := fmt.Sprintf(format, a...)
	switch severity {
	case SeverityDebug:
		logger.Debug(msg)
	case SeverityWarn:
		logger.Warn(msg)
	case SeverityError:
		logger.Error(msg)
	default:
		logger.Info(msg)
	}
}
