package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func ptrTime(t time.Time) *time.Time { return &t }

func TestResolveUnlockBoundary(t *testing.T) {
	unlockAt := testNow

	got := ResolveUnlock(testNow, &unlockAt, nil, nil, false)
	assert.True(t, got.IsUnlocked, "now equal to unlockAt is unlocked")
	assert.False(t, got.IsLocked)
	assert.Empty(t, got.UnlockMessage)

	got = ResolveUnlock(testNow.Add(-time.Millisecond), &unlockAt, nil, nil, false)
	assert.False(t, got.IsUnlocked, "1ms before unlockAt is still locked")
	assert.True(t, got.IsLocked)
	assert.Equal(t, "Unlocks in 1 days", got.UnlockMessage)
}

func TestResolveUnlockNoSchedule(t *testing.T) {
	for _, now := range []time.Time{testNow, testNow.AddDate(-10, 0, 0), testNow.AddDate(10, 0, 0)} {
		got := ResolveUnlock(now, nil, nil, nil, false)
		assert.True(t, got.IsUnlocked)
		assert.False(t, got.IsLocked)
		assert.False(t, got.IsExpired)
		assert.Empty(t, got.UnlockMessage)
		assert.Empty(t, got.ValidityMessage)
	}
}

func TestResolveUnlockValidityMessages(t *testing.T) {
	tests := []struct {
		name       string
		validUntil time.Time
		expired    bool
		message    string
	}{
		{"same instant", testNow, false, "Valid until today"},
		{"just expired", testNow.Add(-time.Millisecond), true, "Expired"},
		{"two days left", testNow.Add(48 * time.Hour), false, "Valid for 2 days"},
		{"partial day counts as one", testNow.Add(time.Millisecond), false, "Valid for 1 days"},
		{"long expired", testNow.AddDate(0, -1, 0), true, "Expired"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveUnlock(testNow, nil, ptrTime(tc.validUntil), nil, false)
			assert.Equal(t, tc.expired, got.IsExpired)
			assert.Equal(t, tc.message, got.ValidityMessage)
		})
	}
}

func TestResolveUnlockCountdownRoundsUp(t *testing.T) {
	unlockAt := testNow.Add(36 * time.Hour) // 1.5 days out
	got := ResolveUnlock(testNow, &unlockAt, nil, nil, false)
	assert.False(t, got.IsUnlocked)
	assert.Equal(t, "Unlocks in 2 days", got.UnlockMessage)
}

func TestResolveUnlockFirstLevelNeverLocked(t *testing.T) {
	unlockAt := testNow.AddDate(0, 0, 7)
	got := ResolveUnlock(testNow, &unlockAt, nil, nil, true)
	assert.False(t, got.IsUnlocked, "schedule still reports not yet unlocked")
	assert.False(t, got.IsLocked, "first level is never locked")
}

func TestResolveUnlockProgressOverridesLock(t *testing.T) {
	unlockAt := testNow.AddDate(0, 0, 7)

	inProgress := &ProgressSnapshot{Status: StatusInProgress}
	got := ResolveUnlock(testNow, &unlockAt, nil, inProgress, false)
	assert.False(t, got.IsLocked, "an in-progress level is not locked")

	done := &ProgressSnapshot{Status: StatusCompleted, Qualified: true}
	got = ResolveUnlock(testNow, &unlockAt, nil, done, false)
	assert.False(t, got.IsLocked, "a qualified completion is not locked")

	visited := &ProgressSnapshot{Status: StatusCompleted, Qualified: false}
	got = ResolveUnlock(testNow, &unlockAt, nil, visited, false)
	assert.True(t, got.IsLocked, "an unqualified completion does not bypass the schedule")
}

func TestIsForwardTransition(t *testing.T) {
	assert.True(t, IsForwardTransition(StatusLocked, StatusInProgress))
	assert.True(t, IsForwardTransition(StatusLocked, StatusCompleted))
	assert.True(t, IsForwardTransition(StatusInProgress, StatusCompleted))
	assert.False(t, IsForwardTransition(StatusCompleted, StatusInProgress))
	assert.False(t, IsForwardTransition(StatusCompleted, StatusLocked))
	assert.False(t, IsForwardTransition(StatusInProgress, StatusInProgress))
}
