package models

import "github.com/google/uuid"

// MemberAssignmentStat is one member's recent assignment load.
// RecentCount is the number of assignments within the trailing window; the
// window itself is managed by the caller.
type MemberAssignmentStat struct {
	MemberID    uuid.UUID
	RecentCount int
}

// SamplingResult is the ordered set of members chosen for the next dispatch.
// Version is a stable tag identifying the algorithm revision so callers can
// detect behavior changes.
type SamplingResult struct {
	MemberIDs []uuid.UUID
	Version   string
}
