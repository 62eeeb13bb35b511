// Package constants provides shared constants used throughout the rostersync codebase.
// This includes timeouts, file permissions, and default locations that should be
// consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// SnapshotTimeout is the timeout for loading the full master-data snapshot
	SnapshotTimeout = 2 * time.Minute

	// QueryTimeout is the timeout for a single master-data query
	QueryTimeout = 30 * time.Second

	// DialTimeout is the timeout for establishing network connections
	DialTimeout = 20 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Master database defaults match the development setup of the master system.
const (
	// DefaultDBHost is the default master database host
	DefaultDBHost = "localhost"

	// DefaultDBPort is the default master database port
	DefaultDBPort = 33061

	// DefaultDBUser is the default master database user
	DefaultDBUser = "user"

	// DefaultDBName is the default master database schema name
	DefaultDBName = "laravel"
)

// Input and output defaults
const (
	// DefaultInputFile is the default attendance export location
	DefaultInputFile = "data/data.csv"

	// DefaultOutputDir is the default directory for generated scripts
	DefaultOutputDir = "output_data"

	// ProgramsScriptFile is the generated programs script file name
	ProgramsScriptFile = "insert_programs.sql"

	// SchedulesScriptFile is the generated schedules script file name
	SchedulesScriptFile = "insert_schedules.sql"

	// ParticipantsScriptFile is the generated participants script file name
	ParticipantsScriptFile = "insert_participants.sql"
)

// Network constants
const (
	// DefaultSFTPPort is the default port for script uploads over SFTP
	DefaultSFTPPort = 22
)
