package service

import (
	"context"
	"testing"

	"github.com/beka-birhanu/mindful-maze/crisis"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrisisService(t *testing.T) {
	ctx := context.Background()
	alerts := &fakeAlerts{}
	svc, err := NewCrisisService(nil, alerts, nopLogger{})
	require.NoError(t, err)

	t.Run("check", func(t *testing.T) {
		ok, matches := svc.Check("some days I want to die")
		assert.True(t, ok)
		assert.Equal(t, []string{"want to die"}, matches)

		ok, matches = svc.Check("the maze was relaxing")
		assert.False(t, ok)
		assert.Empty(t, matches)
	})

	t.Run("raise alert", func(t *testing.T) {
		playerID := uuid.New()
		alert, err := svc.RaiseAlert(ctx, playerID, "sam", 1, 2)
		require.NoError(t, err)
		assert.Contains(t, alert.Message, crisis.MapsURL(1, 2))

		listed, err := svc.Alerts(ctx, playerID, 0)
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, alert.ID, listed[0].ID)
	})

	t.Run("raise alert storage failure", func(t *testing.T) {
		alerts.fail = true
		defer func() { alerts.fail = false }()

		_, err := svc.RaiseAlert(ctx, uuid.New(), "sam", 1, 2)
		assert.Error(t, err)
	})
}
