// Package logging provides the handful of leveled log helpers the rest of
// the service uses. It mirrors the env-gated verbosity pattern the teacher
// services use (GORM_LOG_LEVEL, etc.) rather than pulling in a structured
// logging library.
package logging

import (
	"log"
	"os"
	"strings"
)

var debugEnabled = strings.EqualFold(os.Getenv("LOG_LEVEL"), "debug")

// Info always logs; used for request-level and lifecycle events.
func Info(format string, args ...interface{}) {
	log.Printf("[info] "+format, args...)
}

// Debug only logs when LOG_LEVEL=debug, matching the teacher's
// debugLog-gated tracing around outbound vendor calls.
func Debug(format string, args ...interface{}) {
	if debugEnabled {
		log.Printf("[debug] "+format, args...)
	}
}

// Error always logs; the engine never aborts on these (placeholder
// decode failures), it only records them.
func Error(format string, args ...interface{}) {
	log.Printf("[error] "+format, args...)
}
