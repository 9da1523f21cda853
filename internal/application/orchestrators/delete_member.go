package orchestrators

import (
	"context"
	"log/slog"
)

// DeleteMemberDeps holds dependencies for DeleteMember.
type DeleteMemberDeps struct {
	MemberStore MemberStore

	NotifyChanged func()
}

// ExecuteDeleteMember removes a member permanently.
// PRE: Member exists
// POST: Member row deleted; no soft-delete or archive copy is kept
func ExecuteDeleteMember(ctx context.Context, memberID string, deps DeleteMemberDeps) error {
	// GetByID first so a missing id surfaces as ErrNotFound rather than a
	// silent no-op delete.
	if _, err := deps.MemberStore.GetByID(ctx, memberID); err != nil {
		return err
	}
	if err := deps.MemberStore.Delete(ctx, memberID); err != nil {
		return err
	}

	slog.Info("member_event", "event", "member_deleted", "member_id", memberID)
	if deps.NotifyChanged != nil {
		deps.NotifyChanged()
	}
	return nil
}
