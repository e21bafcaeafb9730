package service

import (
	"context"
	"errors"
	"testing"
	"time"

	dmn "github.com/beka-birhanu/mindful-maze/domain"
	"github.com/beka-birhanu/mindful-maze/infrastruture/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const strongPassword = "correct-Horse-battery-staple-42"

func TestAuth(t *testing.T) {
	ctx := context.Background()
	players := newFakePlayers()
	tokenizer := token.NewJwtService("test-secret", "mindful-maze")
	auth, err := NewAuthService(players, tokenizer)
	require.NoError(t, err)

	t.Run("register", func(t *testing.T) {
		require.NoError(t, auth.Register(ctx, "calm_walker", strongPassword))
		_, ok := players.byName["calm_walker"]
		assert.True(t, ok)
	})

	t.Run("register taken username", func(t *testing.T) {
		err := auth.Register(ctx, "calm_walker", strongPassword)
		assert.ErrorIs(t, err, dmn.ErrUsernameConflict)
	})

	t.Run("register weak password", func(t *testing.T) {
		err := auth.Register(ctx, "another", "1234")
		assert.ErrorIs(t, err, dmn.ErrWeakPassword)
	})

	t.Run("sign in", func(t *testing.T) {
		player, tok, err := auth.SignIn(ctx, "calm_walker", strongPassword)
		require.NoError(t, err)
		assert.Equal(t, "calm_walker", player.Username)

		claims, err := tokenizer.Decode(tok)
		require.NoError(t, err)
		assert.Equal(t, player.ID.String(), claims["playerID"])
		exp, ok := claims["exp"].(float64)
		require.True(t, ok)
		assert.InDelta(t, time.Now().Add(tokenTTL).Unix(), int64(exp), 5)
	})

	t.Run("sign in with wrong password", func(t *testing.T) {
		_, _, err := auth.SignIn(ctx, "calm_walker", "nope")
		assert.ErrorIs(t, err, dmn.ErrInvalidCredentials)
	})

	t.Run("sign in unknown user", func(t *testing.T) {
		_, _, err := auth.SignIn(ctx, "ghost", strongPassword)
		assert.ErrorIs(t, err, dmn.ErrInvalidCredentials)
	})

	t.Run("repository failure is not masked", func(t *testing.T) {
		players.err = errors.New("mongo down")
		defer func() { players.err = nil }()

		_, _, err := auth.SignIn(ctx, "calm_walker", strongPassword)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, dmn.ErrInvalidCredentials)
	})
}
