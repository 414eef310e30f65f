package models

import "fmt"

// Action names an operator request that moves a visitor between states.
type Action string

const (
	ActionCheckIn  Action = "check_in"
	ActionCheckOut Action = "check_out"
	ActionCancel   Action = "cancel"
)

var transitionMap = map[Action][]VisitorStatus{
	ActionCheckIn:  {StatusPendingApproval, StatusPreRegistered},
	ActionCheckOut: {StatusCheckedIn},
	ActionCancel:   {StatusPendingApproval, StatusPreRegistered},
}

// CanTransition reports whether action is legal from the given status.
func CanTransition(action Action, from VisitorStatus) bool {
	allowed, ok := transitionMap[action]
	if !ok {
		return false
	}
	for _, status := range allowed {
		if status == from {
			return true
		}
	}
	return false
}

func invalidTransitionMessage(action Action, from VisitorStatus) string {
	switch {
	case action == ActionCheckIn && from == StatusCheckedIn:
		return "visitor is already checked in"
	case from == StatusCheckedOut:
		return "visitor has already checked out"
	case from == StatusCancelled:
		return "visit was cancelled"
	case action == ActionCheckOut:
		return "visitor is not checked in"
	}
	return fmt.Sprintf("cannot %s a visitor in status %s", action, from)
}
