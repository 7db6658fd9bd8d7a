package blog

import "time"

// LifecycleState is the part of a post governed by the publication state machine.
type LifecycleState struct {
	Status      PostStatus
	PublishedAt *time.Time
}

// LifecycleAction selects which transition rule applies.
type LifecycleAction int

const (
	// ActionNone is a generic update that does not touch status.
	ActionNone LifecycleAction = iota
	// ActionCreate sets the initial state of a new post.
	ActionCreate
	// ActionSetStatus is a generic update that supplies a status.
	ActionSetStatus
	// ActionToggle is the explicit publish/unpublish action.
	ActionToggle
)

// LifecycleChange is a requested transition.
type LifecycleChange struct {
	Action LifecycleAction
	Status PostStatus
}

// CreateWith requests the initial state of a new post.
func CreateWith(status PostStatus) LifecycleChange {
	return LifecycleChange{Action: ActionCreate, Status: status}
}

// RequestStatus requests a status through a generic update.
func RequestStatus(status PostStatus) LifecycleChange {
	return LifecycleChange{Action: ActionSetStatus, Status: status}
}

// Toggle requests the publish toggle.
func Toggle() LifecycleChange {
	return LifecycleChange{Action: ActionToggle}
}

// ApplyLifecycle computes the state that results from change. It is total:
// unknown statuses leave the current status in place.
//
// Rules:
//   - entering Published stamps PublishedAt with now unless it is already set
//   - only the toggle clears PublishedAt when leaving Published
//   - a generic update that does not change status has no side effect
//
// The result always satisfies Status == Published => PublishedAt != nil.
func ApplyLifecycle(current LifecycleState, change LifecycleChange, now time.Time) LifecycleState {
	next := LifecycleState{Status: current.Status, PublishedAt: copyTime(current.PublishedAt)}

	switch change.Action {
	case ActionCreate:
		if change.Status.IsValid() {
			next.Status = change.Status
		} else if !next.Status.IsValid() {
			next.Status = PostStatusDraft
		}
	case ActionSetStatus:
		if change.Status.IsValid() {
			next.Status = change.Status
		}
	case ActionToggle:
		if current.Status == PostStatusPublished {
			next.Status = PostStatusDraft
			next.PublishedAt = nil
		} else {
			next.Status = PostStatusPublished
		}
	}

	if next.Status == PostStatusPublished && next.PublishedAt == nil {
		stamp := now.UTC()
		next.PublishedAt = &stamp
	}
	return next
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
