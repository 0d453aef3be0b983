package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTransition(t *testing.T) {
	cases := []struct {
		name    string
		current ReservationStatus
		action  ReservationAction
		actor   Role
		want    ReservationStatus
		wantErr error
	}{
		{"owner confirms pending", ReservationPending, ActionConfirm, RoleOwner, ReservationConfirmed, nil},
		{"payment confirms pending", ReservationPending, ActionConfirm, RoleSystem, ReservationConfirmed, nil},
		{"user cannot confirm", ReservationPending, ActionConfirm, RoleUser, ReservationPending, ErrForbidden},
		{"confirm already confirmed", ReservationConfirmed, ActionConfirm, RoleOwner, ReservationConfirmed, ErrInvalidTransition},

		{"owner completes confirmed", ReservationConfirmed, ActionComplete, RoleOwner, ReservationCompleted, nil},
		{"owner cannot complete pending", ReservationPending, ActionComplete, RoleOwner, ReservationPending, ErrInvalidTransition},
		{"user cannot complete", ReservationConfirmed, ActionComplete, RoleUser, ReservationConfirmed, ErrForbidden},

		{"user cancels pending", ReservationPending, ActionCancel, RoleUser, ReservationCancelled, nil},
		{"user cannot cancel confirmed", ReservationConfirmed, ActionCancel, RoleUser, ReservationConfirmed, ErrInvalidTransition},
		{"owner cancels pending", ReservationPending, ActionCancel, RoleOwner, ReservationCancelled, nil},
		{"owner cancels confirmed", ReservationConfirmed, ActionCancel, RoleOwner, ReservationCancelled, nil},
		{"system cannot cancel", ReservationPending, ActionCancel, RoleSystem, ReservationPending, ErrForbidden},

		{"cancelled is terminal", ReservationCancelled, ActionConfirm, RoleOwner, ReservationCancelled, ErrInvalidTransition},
		{"completed is terminal", ReservationCompleted, ActionCancel, RoleOwner, ReservationCompleted, ErrInvalidTransition},
		{"unknown action", ReservationPending, ReservationAction("archive"), RoleOwner, ReservationPending, ErrInvalidTransition},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Transition(tc.current, tc.action, tc.actor)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				// status unchanged on any failed transition
				assert.Equal(t, tc.current, got)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTransition_TerminalStatesRejectEverything(t *testing.T) {
	actions := []ReservationAction{ActionConfirm, ActionComplete, ActionCancel}
	roles := []Role{RoleUser, RoleOwner, RoleSystem}

	for _, status := range []ReservationStatus{ReservationCancelled, ReservationCompleted} {
		for _, action := range actions {
			for _, role := range roles {
				got, err := Transition(status, action, role)
				assert.Error(t, err, "status=%s action=%s role=%s", status, action, role)
				assert.Equal(t, status, got)
			}
		}
	}
}

func TestDurationInDays(t *testing.T) {
	d := func(y int, m time.Month, day int) time.Time {
		return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	}

	assert.Equal(t, 3, DurationInDays(d(2025, 6, 1), d(2025, 6, 4)))
	assert.Equal(t, 1, DurationInDays(d(2025, 6, 1), d(2025, 6, 2)))
	assert.Equal(t, 0, DurationInDays(d(2025, 6, 1), d(2025, 6, 1)))
	assert.Equal(t, -2, DurationInDays(d(2025, 6, 3), d(2025, 6, 1)))

	// time-of-day never contributes to the duration
	late := time.Date(2025, 6, 1, 23, 59, 0, 0, time.UTC)
	early := time.Date(2025, 6, 4, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 3, DurationInDays(late, early))
}

func TestTotalPriceFor(t *testing.T) {
	d := func(day int) time.Time { return time.Date(2025, 6, day, 0, 0, 0, 0, time.UTC) }

	assert.Equal(t, 150.0, TotalPriceFor(d(1), d(4), 50)) // 3 nights at 50
	assert.Equal(t, 0.0, TotalPriceFor(d(1), d(4), 0))    // free listing
	assert.InDelta(t, 89.97, TotalPriceFor(d(10), d(13), 29.99), 1e-9)
}
