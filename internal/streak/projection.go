// Package streak holds the pure core of the writing-streak engine: the
// checkpointed projection state, the virtual closure deriver, and the
// reducer that folds activity events into projection state.
//
// Nothing in this package performs I/O. Determinism is the load-bearing
// property: folding the same events from the same starting state must
// produce byte-identical results whether replayed from scratch or resumed
// from a cached checkpoint.
package streak

import (
	"github.com/scriptoria-lab/project-scriptoria/internal/core/calendar"
)

// ProjectorVersion tags projections with the reducer policy that produced
// them. Reducer logic may branch on it for forward-compatible evolution.
const ProjectorVersion = "v2"

// StatusKind enumerates the streak state machine states.
type StatusKind string

const (
	// StatusOnStreak: the user has met the posting requirement on every
	// evaluated working day (or has no streak yet to lose).
	StatusOnStreak StatusKind = "onStreak"
	// StatusEligible: a working day closed unmet but the streak can still
	// be rescued inside the grace window.
	StatusEligible StatusKind = "eligible"
	// StatusMissed: the grace window expired; the streak is broken.
	StatusMissed StatusKind = "missed"
)

// EligibleStatus carries the grace-window contract surface.
type EligibleStatus struct {
	// PostsRequired is the total posts needed before Deadline closes to
	// restore the streak.
	PostsRequired int `json:"postsRequired"`
	// CurrentPosts counts posts made since entering the grace window.
	CurrentPosts int `json:"currentPosts"`
	// Deadline is the working day by whose closure the requirement must
	// be met.
	Deadline calendar.DayKey `json:"deadline"`
}

// MissedStatus records the day whose closure broke the streak.
type MissedStatus struct {
	MissedDate calendar.DayKey `json:"missedDate"`
}

// Status is the tagged streak state. Exactly the variant selected by Kind
// carries a non-nil payload.
type Status struct {
	Kind     StatusKind      `json:"kind"`
	Eligible *EligibleStatus `json:"eligible,omitempty"`
	Missed   *MissedStatus   `json:"missed,omitempty"`
}

// OnStreak constructs the onStreak status.
func OnStreak() Status {
	return Status{Kind: StatusOnStreak}
}

// Eligible constructs the eligible status.
func Eligible(required, current int, deadline calendar.DayKey) Status {
	return Status{
		Kind: StatusEligible,
		Eligible: &EligibleStatus{
			PostsRequired: required,
			CurrentPosts:  current,
			Deadline:      deadline,
		},
	}
}

// Missed constructs the missed status.
func Missed(missedDate calendar.DayKey) Status {
	return Status{
		Kind:   StatusMissed,
		Missed: &MissedStatus{MissedDate: missedDate},
	}
}

// StreamProjection is the checkpointed streak state for one user.
//
// It is created once (zero counters, onStreak), mutated only by the
// reducer, and persisted write-behind after every successful recomputation.
type StreamProjection struct {
	Status Status `json:"status"`

	CurrentStreak int `json:"currentStreak"`
	// OriginalStreak preserves the pre-grace streak value so recovery
	// surfaces can show what is at stake (or what was lost).
	OriginalStreak int `json:"originalStreak"`
	LongestStreak  int `json:"longestStreak"`

	// LastContributionDate is the day key of the most recent post; empty
	// if the user has never posted.
	LastContributionDate calendar.DayKey `json:"lastContributionDate,omitempty"`

	// AppliedSeq is the highest real event sequence number folded in.
	// Monotonic; virtual events never advance it.
	AppliedSeq int64 `json:"appliedSeq"`

	// ProjectorVersion tags the reducer policy that produced this state.
	ProjectorVersion string `json:"projectorVersion"`

	// LastEvaluatedDayKey is the last calendar day for which virtual
	// closure derivation has run. Monotonic, and deliberately separate
	// from AppliedSeq: virtual closures consume no sequence numbers.
	LastEvaluatedDayKey calendar.DayKey `json:"lastEvaluatedDayKey,omitempty"`
}

// NewProjection returns the initial all-zero projection.
func NewProjection() *StreamProjection {
	return &StreamProjection{
		Status:           OnStreak(),
		ProjectorVersion: ProjectorVersion,
	}
}

// Clone returns a deep copy. The reducer folds on copies so callers never
// observe a half-applied state.
func (p *StreamProjection) Clone() *StreamProjection {
	out := *p
	if p.Status.Eligible != nil {
		eligible := *p.Status.Eligible
		out.Status.Eligible = &eligible
	}
	if p.Status.Missed != nil {
		missed := *p.Status.Missed
		out.Status.Missed = &missed
	}
	return &out
}
