package projections

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	memberStore "gymtracker/internal/adapters/storage/member"
	domainMember "gymtracker/internal/domain/member"
)

// Status filter values.
const (
	StatusAll    = ""
	StatusPaid   = "paid"
	StatusUnpaid = "unpaid"
)

// ListMembersQuery carries query parameters. Filters apply in sequence:
// status, then training type, then search.
type ListMembersQuery struct {
	Status   string // "", "paid" or "unpaid"
	Training string // exact category name, "" for all
	Search   string // case-insensitive substring of the full name
}

// ListMembersResult carries the query result.
type ListMembersResult struct {
	Members []domainMember.Member
	Total   int // snapshot size before filtering
}

// ListMembersDeps holds dependencies for ListMembers.
type ListMembersDeps struct {
	MemberStore MemberStore
}

// QueryListMembers retrieves the member snapshot and applies the filter chain.
// PRE: Valid query parameters
// POST: Members ordered by creation time. When the store cannot order, the
// unordered listing is sorted here: by creation timestamp when both rows
// carry one, by ID otherwise.
func QueryListMembers(ctx context.Context, query ListMembersQuery, deps ListMembersDeps) (ListMembersResult, error) {
	members, err := snapshotMembers(ctx, deps.MemberStore)
	if err != nil {
		return ListMembersResult{}, err
	}
	total := len(members)

	if query.Status != StatusAll {
		wantPaid := query.Status == StatusPaid
		members = keep(members, func(m domainMember.Member) bool {
			return m.PaymentStatus == wantPaid
		})
	}
	if query.Training != "" {
		members = keep(members, func(m domainMember.Member) bool {
			return m.TrainingType == query.Training
		})
	}
	if q := strings.ToLower(strings.TrimSpace(query.Search)); q != "" {
		members = keep(members, func(m domainMember.Member) bool {
			return strings.Contains(strings.ToLower(m.FullName()), q)
		})
	}

	return ListMembersResult{Members: members, Total: total}, nil
}

// snapshotMembers loads the creation-ordered member list, falling back to an
// unordered read plus local sort when the store refuses the ordered query.
func snapshotMembers(ctx context.Context, store MemberStore) ([]domainMember.Member, error) {
	members, err := store.ListOrdered(ctx)
	if err == nil {
		return members, nil
	}
	if !memberStore.IsOrderingUnsupported(err) {
		return nil, err
	}

	slog.Warn("member_snapshot_fallback", "reason", err)
	members, err = store.List(ctx)
	if err != nil {
		return nil, err
	}
	// Timestamps decide order only when both rows carry one; rows from
	// before the created_at column existed fall back to ID comparison.
	sort.Slice(members, func(i, j int) bool {
		a, b := members[i], members[j]
		if !a.CreatedAt.IsZero() && !b.CreatedAt.IsZero() && !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return members, nil
}

func keep(members []domainMember.Member, pred func(domainMember.Member) bool) []domainMember.Member {
	out := members[:0:0]
	for _, m := range members {
		if pred(m) {
			out = append(out, m)
		}
	}
	return out
}
