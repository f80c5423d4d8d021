package domain

import "fmt"

// WishStatus is a stage of the wish workflow.
type WishStatus string

const (
	StatusWish       WishStatus = "WISH"
	StatusInProgress WishStatus = "IN_PROGRESS"
	StatusAchieved   WishStatus = "ACHIEVED"
)

// WishStatuses lists every status in board column order.
var WishStatuses = []WishStatus{StatusWish, StatusInProgress, StatusAchieved}

// ParseWishStatus converts the wire form of a status.
func ParseWishStatus(s string) (WishStatus, error) {
	st := WishStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, s)
	}
	return st, nil
}

func (s WishStatus) Valid() bool {
	switch s {
	case StatusWish, StatusInProgress, StatusAchieved:
		return true
	}
	return false
}

// Label is the human-readable column name.
func (s WishStatus) Label() string {
	switch s {
	case StatusWish:
		return "Wish"
	case StatusInProgress:
		return "In Progress"
	case StatusAchieved:
		return "Achieved"
	}
	return string(s)
}

// CanTransitionTo reports whether moving from s to target is legal.
// Only Wish -> InProgress and InProgress -> Achieved are; Achieved is terminal.
func (s WishStatus) CanTransitionTo(target WishStatus) bool {
	next, ok := s.Next()
	return ok && next == target
}

// Next returns the single legal successor of s.
func (s WishStatus) Next() (WishStatus, bool) {
	switch s {
	case StatusWish:
		return StatusInProgress, true
	case StatusInProgress:
		return StatusAchieved, true
	}
	return "", false
}
