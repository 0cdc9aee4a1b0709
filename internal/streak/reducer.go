package streak

import (
	"fmt"
	"time"

	v1 "github.com/scriptoria-lab/project-scriptoria/internal/api/v1"
	"github.com/scriptoria-lab/project-scriptoria/internal/core/calendar"
)

// Policy carries the tunable parts of the streak state machine.
type Policy struct {
	// GracePostsRequired is the total number of posts needed to rescue a
	// streak after one working day closes unmet: the missed day's post
	// plus the grace day's own post.
	GracePostsRequired int
}

func (p Policy) normalized() Policy {
	if p.GracePostsRequired <= 0 {
		p.GracePostsRequired = 2
	}
	return p
}

// Reducer folds ordered activity events into StreamProjection state.
//
// Inputs must be totally ordered by (dayKey, createdAt), real events before
// virtual ones within a day. The fold is idempotent: real events with
// seq <= AppliedSeq and virtual closures with dayKey <= LastEvaluatedDayKey
// are no-ops, so replaying a prefix twice cannot change the final state.
type Reducer struct {
	policy   Policy
	loc      *time.Location
	holidays calendar.HolidayMap
}

// NewReducer builds a reducer for one evaluation pass. The location and
// holiday map must cover every day the event stream touches.
func NewReducer(policy Policy, loc *time.Location, holidays calendar.HolidayMap) *Reducer {
	return &Reducer{
		policy:   policy.normalized(),
		loc:      loc,
		holidays: holidays,
	}
}

// StepExplanation records one reducer step for the audit trail.
type StepExplanation struct {
	Seq         int64             `json:"seq"`
	Event       *v1.Event         `json:"event,omitempty"`
	StateBefore *StreamProjection `json:"stateBefore"`
	StateAfter  *StreamProjection `json:"stateAfter"`
}

// Fold advances the projection through every event in order and returns the
// resulting state. The input projection is never mutated.
func (r *Reducer) Fold(initial *StreamProjection, events []*v1.Event) (*StreamProjection, error) {
	state := initial.Clone()
	for _, evt := range events {
		next, err := r.apply(state, evt)
		if err != nil {
			return nil, err
		}
		state = next
	}
	return state, nil
}

// Explain is the instrumented twin of Fold: it additionally returns a
// before/after snapshot for every event so a human can audit exactly why a
// projection value arose. The final state is identical to Fold's for the
// same inputs.
func (r *Reducer) Explain(initial *StreamProjection, events []*v1.Event) (*StreamProjection, []StepExplanation, error) {
	state := initial.Clone()
	steps := make([]StepExplanation, 0, len(events))
	for _, evt := range events {
		before := state.Clone()
		next, err := r.apply(state, evt)
		if err != nil {
			return nil, nil, err
		}
		steps = append(steps, StepExplanation{
			Seq:         evt.Seq,
			Event:       evt,
			StateBefore: before,
			StateAfter:  next.Clone(),
		})
		state = next
	}
	return state, steps, nil
}

// apply folds a single event. It returns the input state unchanged when the
// event is behind the checkpoint (idempotent replay).
func (r *Reducer) apply(state *StreamProjection, evt *v1.Event) (*StreamProjection, error) {
	switch evt.Type {
	case v1.TypePostCreated:
		if evt.Seq <= state.AppliedSeq {
			return state, nil
		}
		next := state.Clone()
		r.applyPost(next, evt)
		next.AppliedSeq = evt.Seq
		next.ProjectorVersion = ProjectorVersion
		return next, nil

	case v1.TypeDayClosed:
		if evt.IsVirtual() {
			if !evt.DayKey.After(state.LastEvaluatedDayKey) {
				return state, nil
			}
		} else if evt.Seq <= state.AppliedSeq {
			return state, nil
		}
		next := state.Clone()
		if err := r.applyClosure(next, evt); err != nil {
			return nil, err
		}
		if evt.IsVirtual() {
			next.LastEvaluatedDayKey = calendar.MaxKey(next.LastEvaluatedDayKey, evt.DayKey)
		} else {
			next.AppliedSeq = evt.Seq
		}
		next.ProjectorVersion = ProjectorVersion
		return next, nil

	default:
		return nil, fmt.Errorf("reducer: unknown event type %q (seq %d)", evt.Type, evt.Seq)
	}
}

func (r *Reducer) applyPost(state *StreamProjection, evt *v1.Event) {
	day := evt.DayKey

	switch state.Status.Kind {
	case StatusEligible:
		eligible := state.Status.Eligible
		eligible.CurrentPosts++
		state.LastContributionDate = day
		if eligible.CurrentPosts >= eligible.PostsRequired {
			// Streak rescued: the missed day is made up, plus one for
			// the grace day itself.
			state.CurrentStreak = state.OriginalStreak + 1
			state.Status = OnStreak()
			state.bumpLongest()
		}

	case StatusMissed:
		// A fresh streak starts at one.
		state.CurrentStreak = 1
		state.LastContributionDate = day
		state.Status = OnStreak()
		state.bumpLongest()

	default: // StatusOnStreak, including the zero projection
		if state.LastContributionDate == day {
			// Requirement already met for this day.
			return
		}
		state.CurrentStreak++
		state.LastContributionDate = day
		state.bumpLongest()
	}
}

func (r *Reducer) applyClosure(state *StreamProjection, evt *v1.Event) error {
	day := evt.DayKey

	switch state.Status.Kind {
	case StatusOnStreak:
		// The day's requirement was met; nothing closes unmet.
		if !state.LastContributionDate.IsZero() && !state.LastContributionDate.Before(day) {
			return nil
		}
		if state.CurrentStreak == 0 {
			// No streak to lose yet.
			return nil
		}
		deadline, err := calendar.NextWorkingDay(day, r.loc, r.holidays)
		if err != nil {
			return fmt.Errorf("reducer: grace deadline for %s: %w", day, err)
		}
		state.OriginalStreak = state.CurrentStreak
		state.Status = Eligible(r.policy.GracePostsRequired, 0, deadline)

	case StatusEligible:
		eligible := state.Status.Eligible
		if day.Before(eligible.Deadline) {
			return nil
		}
		if eligible.CurrentPosts >= eligible.PostsRequired {
			// Invariant violation: a met grace window must have been
			// restored by the post that met it.
			return fmt.Errorf("reducer: closure %s on satisfied grace window", day)
		}
		state.CurrentStreak = 0
		state.Status = Missed(day)

	case StatusMissed:
		// Already broken; later closures carry no new information.
	}
	return nil
}

func (p *StreamProjection) bumpLongest() {
	if p.CurrentStreak > p.LongestStreak {
		p.LongestStreak = p.CurrentStreak
	}
}
