package service

import (
	"time"

	"github.com/msomdec/wish-tracker/internal/domain"
)

// Transition moves w to target if the workflow allows it. It is the only
// place a wish's status changes after creation. On an illegal move (staying
// put included) w is left untouched and an *domain.InvalidTransitionError
// is returned.
//
// Entering Achieved stamps AchievedAt with now unless it is already set.
// AchievedAt is never cleared.
func Transition(w *domain.Wish, target domain.WishStatus, now time.Time) error {
	if !w.Status.CanTransitionTo(target) {
		return &domain.InvalidTransitionError{From: w.Status, To: target}
	}

	w.Status = target
	if target == domain.StatusAchieved && w.AchievedAt == nil {
		at := now.UTC()
		w.AchievedAt = &at
	}
	return nil
}
