package ui

import (
	"context"
	"fmt"

	"github.com/vvka-141/fsx/pkg/fsx"
)

// Confirm asks approver to allow action on target.
// A refusal is reported as fsx.ErrApprovalDenied.
func Confirm(ctx context.Context, approver fsx.Approver, action, target string) error {
	approved, err := approver.RequestApproval(ctx, action, target)
	if err != nil {
		return fmt.Errorf("approval for %s %s: %w", action, target, err)
	}
	if !approved {
		return fmt.Errorf("%s %s: %w", action, target, fsx.ErrApprovalDenied)
	}
	return nil
}
