package entity

const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// allowedNext encodes the forward-only workflow. Completed and Cancelled are
// terminal; Cancelled is reachable from Pending and InProgress only.
var allowedNext = map[string][]string{
	StatusPending:    {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// AllowedTransitions returns the statuses reachable from current. The current
// status itself is always included so a UI can render it as the selected
// option; for terminal states it is the only entry.
func AllowedTransitions(current string) []string {
	next, ok := allowedNext[current]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(next)+1)
	out = append(out, current)
	out = append(out, next...)
	return out
}

// CanTransition reports whether moving from current to next is legal. A
// no-op transition (next == current) is not a legal write.
func CanTransition(current, next string) bool {
	for _, s := range allowedNext[current] {
		if s == next {
			return true
		}
	}
	return false
}

func IsTerminalStatus(s string) bool {
	next, ok := allowedNext[s]
	return ok && len(next) == 0
}

func IsValidStatus(s string) bool {
	_, ok := allowedNext[s]
	return ok
}
