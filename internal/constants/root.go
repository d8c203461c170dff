package constants

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// SessionState represents the current state of the TUI application
type SessionState int

// ConfirmationMsg is a message to trigger a confirmation dialog
type ConfirmationMsg struct {
	Message string
	Action  func() tea.Cmd
}

const (
	AppName            = "ofter"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/ofter/ofter.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// ExportVersion is the schema version stamped on export files
	ExportVersion = "1.0.0"

	// MaxActivityNameLen is the practical cap on activity display names
	MaxActivityNameLen = 20

	// Backup constants
	MaxBackups       = 14
	BackupFilePrefix = "ofter-"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "ofter-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.haeunlee.ofter"

	// Session States
	StateBoard SessionState = iota
	StateStats
	StateAddActivity
	StateEditActivity
	StateConfirmRemove
	StateConfirmClear
)
