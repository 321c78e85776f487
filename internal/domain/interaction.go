package domain

import (
	"fmt"
	"time"
)

// Action is a closed set of implicit feedback signals.
type Action string

const (
	// ActionClick records that a user opened a document.
	ActionClick Action = "click"
	// ActionLike records an explicit positive signal.
	ActionLike Action = "like"
	// ActionSave records that a user saved a document.
	ActionSave Action = "save"
	// ActionNotRelevant records an explicit negative signal.
	ActionNotRelevant Action = "not_relevant"
)

// ParseAction validates a raw action string.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionClick, ActionLike, ActionSave, ActionNotRelevant:
		return Action(s), nil
	default:
		return "", fmt.Errorf("%w: unknown action %q", ErrInvalidArgument, s)
	}
}

// IsPositive reports whether the action contributes to the preference profile.
// Clicks and not_relevant votes are recorded but do not shape the profile.
func (a Action) IsPositive() bool {
	return a == ActionLike || a == ActionSave
}

// Interaction is a single append-only feedback event.
type Interaction struct {
	id         string
	userID     string
	documentID string
	action     Action
	timestamp  time.Time
}

// NewInteraction validates and creates an Interaction.
// The document is not required to exist: stale references are tolerated and
// skipped later during profile computation.
func NewInteraction(id, userID, documentID string, action Action, ts time.Time) (Interaction, error) {
	if id == "" {
		return Interaction{}, fmt.Errorf("interaction ID is required")
	}
	if userID == "" {
		return Interaction{}, fmt.Errorf("%w: user ID is required", ErrInvalidArgument)
	}
	if documentID == "" {
		return Interaction{}, fmt.Errorf("%w: document ID is required", ErrInvalidArgument)
	}
	return Interaction{id: id, userID: userID, documentID: documentID, action: action, timestamp: ts}, nil
}

// ReconstructInteraction creates an Interaction without validation (storage hydration).
func ReconstructInteraction(id, userID, documentID string, action Action, ts time.Time) Interaction {
	return Interaction{id: id, userID: userID, documentID: documentID, action: action, timestamp: ts}
}

// ID returns the event identifier.
func (i *Interaction) ID() string { return i.id }

// UserID returns the acting user's identifier.
func (i *Interaction) UserID() string { return i.userID }

// DocumentID returns the target document identifier.
func (i *Interaction) DocumentID() string { return i.documentID }

// Action returns the feedback action.
func (i *Interaction) Action() Action { return i.action }

// Timestamp returns the event time.
func (i *Interaction) Timestamp() time.Time { return i.timestamp }
