package fsx

import (
	"io/fs"
	"time"
)

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess        = 0  // Operation completed successfully
	ExitGeneralError   = 1  // Unknown or unclassified error
	ExitUsageError     = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic          = 3  // Internal panic (unexpected crash)
	ExitConfigError    = 10 // Invalid configuration
	ExitApprovalDenied = 12 // User denied approval
	ExitIOFailure      = 20 // Underlying OS call failed
	ExitNotADirectory  = 21 // Directory required
	ExitNotAFile       = 22 // File required
	ExitAlreadyExists  = 23 // Target exists and overwrite is disabled
	ExitPathConflict   = 24 // Path exists with the wrong kind
	ExitNotEmpty       = 25 // Non-recursive delete of a non-empty directory
)

const (
	// DefaultDirMode is the permission mode used for directories created
	// implicitly, and the conventional mode for CreateDirectory.
	DefaultDirMode fs.FileMode = 0755

	// DefaultFileMode is the permission mode for files created by CreateFile and Copy.
	DefaultFileMode fs.FileMode = 0644
)

// DefaultForceApprovalCountdown is how long --force waits before a
// destructive operation proceeds.
const DefaultForceApprovalCountdown = 5 * time.Second
