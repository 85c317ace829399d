package main

import (
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/parkerchace/MusicTheory-sub004/logging"
)

const sentryFlushTimeout = 2 * time.Second

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

func main() {
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:     dsn,
			Release: "harmonic@" + releaseVersion,
		}); err != nil {
			logging.Warn("Failed to initialize Sentry", logging.Fields{"error": err.Error()})
		} else {
			defer sentry.Flush(sentryFlushTimeout)
		}
	}

	if err := rootCmd.Execute(); err != nil {
		sentry.CaptureException(err)
		sentry.Flush(sentryFlushTimeout)
		os.Exit(1)
	}
}
