package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"
)

// AuditLogger defines the interface for authorization audit logging
type AuditLogger interface {
	// LogDecision logs the outcome of an authorization decision
	LogDecision(principal string, attribute string, resource string, granted bool, details ...interface{})
	// LogReload logs a policy source reload
	LogReload(source string, status string, details ...interface{})
}

type auditLogger struct {
	logger *log.Logger
}

// NewAuditLogger creates a new audit logger. With an empty path the
// logger discards everything.
func NewAuditLogger(logPath string) (AuditLogger, error) {
	var writer io.Writer

	if logPath == "" {
		writer = io.Discard
	} else {
		f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening audit log file: %w", err)
		}
		writer = f
	}

	return &auditLogger{
		logger: log.New(writer, "", 0), // No flags, we'll handle formatting ourselves
	}, nil
}

func (l *auditLogger) LogDecision(principal string, attribute string, resource string, granted bool, details ...interface{}) {
	outcome := "deny"
	if granted {
		outcome = "grant"
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("op=decision outcome=%s", outcome))
	if principal != "" {
		parts = append(parts, fmt.Sprintf("principal=%s", formatValue(principal)))
	}
	parts = append(parts, fmt.Sprintf("attribute=%s", formatValue(attribute)))
	if resource != "" {
		parts = append(parts, fmt.Sprintf("resource=%s", formatValue(resource)))
	}
	l.write(parts, details...)
}

func (l *auditLogger) LogReload(source string, status string, details ...interface{}) {
	parts := []string{
		"op=reload",
		fmt.Sprintf("source=%s", formatValue(source)),
		fmt.Sprintf("status=%s", formatValue(status)),
	}
	l.write(parts, details...)
}

func (l *auditLogger) write(parts []string, details ...interface{}) {
	for i := 0; i+1 < len(details); i += 2 {
		parts = append(parts, fmt.Sprintf("%v=%s", details[i], formatValue(details[i+1])))
	}

	timestamp := time.Now().UTC().Format("2006-01-02 15:04:05 -0700")
	l.logger.Printf("%s %s", timestamp, strings.Join(parts, " "))
}
