package engine

import (
	"fmt"
	"time"
)

// StudentProgress status values
const (
	StatusLocked     = "locked"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// ProgressSnapshot is the in-memory view of one StudentProgress row
type ProgressSnapshot struct {
	CourseID  uint
	Status    string
	Qualified bool
}

// Completed reports whether the snapshot represents an earned completion
func (p *ProgressSnapshot) Completed() bool {
	return p != nil && p.Status == StatusCompleted && p.Qualified
}

// UnlockStatus is the resolved accessibility of one level for one student
type UnlockStatus struct {
	IsUnlocked      bool   `json:"is_unlocked"`
	IsExpired       bool   `json:"is_expired"`
	IsLocked        bool   `json:"is_locked"`
	UnlockMessage   string `json:"unlock_message,omitempty"`
	ValidityMessage string `json:"validity_message,omitempty"`
}

const millisPerDay = 24 * 60 * 60 * 1000

// ceilDays converts a duration to whole days, counting any partial day as a
// full one. Non-positive durations count as zero days.
func ceilDays(d time.Duration) int {
	ms := d.Milliseconds()
	if ms <= 0 {
		return 0
	}
	return int((ms + millisPerDay - 1) / millisPerDay)
}

// ResolveUnlock decides unlock/lock/expiry for one (class, level) pair given
// the student's progress row. unlockAt and validUntil are nil when the level
// has no schedule or validity row: no schedule means always unlocked, no
// validity means never expired. The unlock boundary is inclusive: now equal
// to unlockAt counts as unlocked. The first level of a track is never locked
// regardless of schedule.
func ResolveUnlock(now time.Time, unlockAt, validUntil *time.Time, progress *ProgressSnapshot, isFirstLevel bool) UnlockStatus {
	status := UnlockStatus{}

	status.IsUnlocked = unlockAt == nil || !now.Before(*unlockAt)
	status.IsExpired = validUntil != nil && now.After(*validUntil)

	inProgress := progress != nil && progress.Status == StatusInProgress
	status.IsLocked = !progress.Completed() && !inProgress && !isFirstLevel && !status.IsUnlocked

	if unlockAt != nil && !status.IsUnlocked {
		status.UnlockMessage = fmt.Sprintf("Unlocks in %d days", ceilDays(unlockAt.Sub(now)))
	}

	if validUntil != nil {
		switch {
		case status.IsExpired:
			status.ValidityMessage = "Expired"
		case ceilDays(validUntil.Sub(now)) == 0:
			status.ValidityMessage = "Valid until today"
		default:
			status.ValidityMessage = fmt.Sprintf("Valid for %d days", ceilDays(validUntil.Sub(now)))
		}
	}

	return status
}

// IsForwardTransition reports whether moving a progress row from one status
// to another goes forward in the locked -> in_progress -> completed order.
// Completed rows are never moved back.
func IsForwardTransition(from, to string) bool {
	return statusRank(to) > statusRank(from)
}

func statusRank(status string) int {
	switch status {
	case StatusInProgress:
		return 1
	case StatusCompleted:
		return 2
	default:
		return 0
	}
}
