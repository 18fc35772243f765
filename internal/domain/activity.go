package domain

import "time"

// LogSeverity enumerates activity feed entry levels.
type LogSeverity string

const (
	LogInfo    LogSeverity = "INFO"
	LogSuccess LogSeverity = "SUCCESS"
	LogError   LogSeverity = "ERROR"
	LogSystem  LogSeverity = "SYSTEM"
)

// LogEntry is one line of the operator-visible activity feed.
type LogEntry struct {
	ID        int         `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Message   string      `json:"message"`
	Severity  LogSeverity `json:"severity"`
}
