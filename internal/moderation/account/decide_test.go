package account

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantsocial/verdant/internal/moderation"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestStateOf(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name   string
		record Record
		want   State
	}{
		{
			name:   "active",
			record: Record{Status: StatusActive},
			want:   Active{},
		},
		{
			name:   "shadow banned",
			record: Record{Status: StatusShadowBanned},
			want:   ShadowBanned{},
		},
		{
			name:   "banned wins over deletion flags",
			record: Record{Status: StatusBanned, BanReason: "spam ring", IsDeleted: true, DeletedAt: timePtr(now)},
			want:   Banned{Reason: "spam ring"},
		},
		{
			name:   "suspended",
			record: Record{Status: StatusSuspended, SuspendedUntil: timePtr(now), BanReason: "harassment"},
			want:   Suspended{Until: timePtr(now), Reason: "harassment"},
		},
		{
			name:   "soft deleted active account",
			record: Record{Status: StatusActive, IsDeleted: true, DeletedAt: timePtr(now)},
			want:   SoftDeleted{Since: timePtr(now)},
		},
		{
			name:   "soft deleted shadow banned account",
			record: Record{Status: StatusShadowBanned, IsDeleted: true},
			want:   SoftDeleted{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StateOf(&tt.record))
		})
	}
}

func TestDecide_ActiveAndShadowBanned(t *testing.T) {
	now := time.Now()

	for _, state := range []State{Active{}, ShadowBanned{}} {
		d := Decide(state, now)
		assert.True(t, d.Allowed)
		assert.Nil(t, d.Denial)
		assert.Nil(t, d.Patch)
		assert.False(t, d.ReenableIdentity)
	}
}

func TestDecide_Banned(t *testing.T) {
	now := time.Now()

	d := Decide(Banned{Reason: "coordinated abuse"}, now)
	assert.False(t, d.Allowed)
	require.NotNil(t, d.Denial)
	assert.Equal(t, moderation.DenialBanned, d.Denial.Code)
	assert.Equal(t, "coordinated abuse", d.Denial.Message)
	assert.Nil(t, d.Patch, "bans are terminal, no write")

	d = Decide(Banned{}, now)
	assert.Equal(t, moderation.MsgBannedDefault, d.Denial.Message)
}

func TestDecide_Suspended(t *testing.T) {
	now := time.Now()

	t.Run("future suspension denied with until", func(t *testing.T) {
		until := now.Add(48 * time.Hour)
		d := Decide(Suspended{Until: &until, Reason: "repeated violations"}, now)
		assert.False(t, d.Allowed)
		assert.Equal(t, moderation.DenialSuspended, d.Denial.Code)
		assert.Equal(t, "repeated violations", d.Denial.Message)
		require.NotNil(t, d.Denial.Until)
		assert.Equal(t, until, *d.Denial.Until)
		assert.Nil(t, d.Patch)
	})

	t.Run("nil until means indefinite", func(t *testing.T) {
		d := Decide(Suspended{}, now)
		assert.False(t, d.Allowed)
		assert.Equal(t, moderation.DenialSuspended, d.Denial.Code)
		assert.Equal(t, moderation.MsgSuspendedDefault, d.Denial.Message)
		assert.Nil(t, d.Denial.Until)
	})

	t.Run("expired suspension transitions to active", func(t *testing.T) {
		until := now.Add(-time.Minute)
		d := Decide(Suspended{Until: &until}, now)
		assert.True(t, d.Allowed)
		assert.Equal(t, TransitionSuspensionExpired, d.Transition)
		require.NotNil(t, d.Patch)
		require.NotNil(t, d.Patch.Status)
		assert.Equal(t, StatusActive, *d.Patch.Status)
		assert.True(t, d.Patch.ClearSuspendedUntil)
	})
}

func TestDecide_SoftDeleted(t *testing.T) {
	now := time.Now()

	t.Run("29 days ago reactivates", func(t *testing.T) {
		since := now.Add(-29 * 24 * time.Hour)
		d := Decide(SoftDeleted{Since: &since}, now)
		assert.True(t, d.Allowed)
		assert.Equal(t, TransitionReactivated, d.Transition)
		assert.True(t, d.ReenableIdentity)
		require.NotNil(t, d.Patch)
		require.NotNil(t, d.Patch.IsDeleted)
		assert.False(t, *d.Patch.IsDeleted)
		assert.True(t, d.Patch.ClearDeletedAt)
	})

	t.Run("31 days ago is gone", func(t *testing.T) {
		since := now.Add(-31 * 24 * time.Hour)
		d := Decide(SoftDeleted{Since: &since}, now)
		assert.False(t, d.Allowed)
		assert.Equal(t, moderation.DenialGone, d.Denial.Code)
		assert.Nil(t, d.Patch)
		assert.False(t, d.ReenableIdentity)
	})

	t.Run("undated deletion is gone, no write", func(t *testing.T) {
		d := Decide(SoftDeleted{}, now)
		assert.False(t, d.Allowed)
		assert.Equal(t, moderation.DenialGone, d.Denial.Code)
		assert.Nil(t, d.Patch)
	})

	t.Run("grace boundary is inclusive", func(t *testing.T) {
		since := now.Add(-GracePeriod)
		d := Decide(SoftDeleted{Since: &since}, now)
		assert.True(t, d.Allowed)
	})
}
