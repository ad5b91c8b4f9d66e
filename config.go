package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/MarcGrol/shopbasket/lib/mylog"
	"github.com/MarcGrol/shopbasket/services/stuckorder/stuckorderevents"
)

type config struct {
	port               string
	onGoogleCloud      bool
	logLevel           mylog.Severity
	siteID             string
	stuckOrderEvent    string
	stuckOrderInterval time.Duration
	stuckOrderStart    *time.Time
}

func loadConfig() (config, error) {
	cfg := config{
		port:               getEnv("PORT", "8080"),
		onGoogleCloud:      os.Getenv("GOOGLE_CLOUD_PROJECT") != "",
		siteID:             getEnv("SITE_ID", "s1"),
		stuckOrderEvent:    getEnv("STUCK_ORDER_EVENT_NAME", stuckorderevents.DefaultEventName),
		stuckOrderInterval: 24 * time.Hour,
	}

	logLevel, err := mylog.ParseSeverity(getEnv("LOG_LEVEL", string(mylog.SeverityInfo)))
	if err != nil {
		return config{}, fmt.Errorf("invalid LOG_LEVEL: %s", err)
	}
	cfg.logLevel = logLevel

	if value := os.Getenv("STUCK_ORDER_INTERVAL"); value != "" {
		seconds, err := strconv.Atoi(value)
		if err != nil || seconds <= 0 {
			return config{}, fmt.Errorf("invalid STUCK_ORDER_INTERVAL %q: expected a positive number of seconds", value)
		}
		cfg.stuckOrderInterval = time.Duration(seconds) * time.Second
	}

	if value := os.Getenv("STUCK_ORDER_START"); value != "" {
		start, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return config{}, fmt.Errorf("invalid STUCK_ORDER_START %q: %s", value, err)
		}
		cfg.stuckOrderStart = &start
	}

	return cfg, nil
}

func getEnv(name string, defaultValue string) string {
	value := os.Getenv(name)
	if value == "" {
		return defaultValue
	}
	return value
}
