package constants

const (
	AppName            = "humidor"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/humidor"
	DefaultDBFile      = "humidor.db"
	ConfigFileName     = "config.yaml"
	LockfileName       = "humidor.lock"
	Version            = "v0.3.0"

	// ISOTimestampFormat matches the millisecond UTC layout used for addedDate and date fields.
	ISOTimestampFormat = "2006-01-02T15:04:05.000Z07:00"

	// DisplayDateFormat is used when rendering timestamps to the terminal
	DisplayDateFormat = "Jan 2, 2006"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "humidor-"

	// Rating bounds accepted from user input
	MinRating = 1.0
	MaxRating = 5.0

	// MemoryDSN selects the in-process medium
	MemoryDSN = ":memory:"
)
