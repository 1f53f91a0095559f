package fsx

import "context"

// Approver confirms destructive operations such as overwriting an existing
// target or deleting a directory tree.
//
// Implementations:
//   - ForcedApprover: Shows countdown and automatically approves
//   - InteractiveApprover: Prompts user to type the target name for confirmation
type Approver interface {
	// RequestApproval asks for confirmation before action is applied to target.
	// action is a short verb phrase such as "overwrite" or "recursively delete".
	RequestApproval(ctx context.Context, action, target string) (bool, error)
}
