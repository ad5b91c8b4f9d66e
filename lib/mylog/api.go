package mylog

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
)

type Severity string

const (
	SeverityDebug Severity = "DEBUG"
	SeverityInfo  Severity = "INFO"
	SeverityWarn  Severity = "WARN"
	SeverityError Severity = "ERROR"
)

var severityRanks = map[Severity]int32{
	SeverityDebug: 0,
	SeverityInfo:  1,
	SeverityWarn:  2,
	SeverityError: 3,
}

var minSeverityRank atomic.Int32

var New func(name string) Logger

type Logger interface {
	Log(ctx context.Context, traceLabel string, severity Severity, format string, a ...any)
}

// ParseSeverity accepts the severity names case-insensitively
func ParseSeverity(s string) (Severity, error) {
	severity := Severity(strings.ToUpper(strings.TrimSpace(s)))
	if _, found := severityRanks[severity]; !found {
		return "", fmt.Errorf("unknown log severity %q", s)
	}
	return severity, nil
}

// SetMinSeverity drops entries below the given severity for all loggers
func SetMinSeverity(severity Severity) {
	minSeverityRank.Store(severityRanks[severity])
}

func (s Severity) enabled() bool {
	rank, found := severityRanks[s]
	if !found {
		// unknown severities are always written
		return true
	}
	return rank >= minSeverityRank.Load()
}
