package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const strongPassword = "correct-Horse-battery-staple-42"

func TestMain(m *testing.M) {
	bcryptCost = bcrypt.MinCost
	m.Run()
}

func TestNewPlayer(t *testing.T) {
	cases := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{"valid", "calm_walker", strongPassword, nil},
		{"username too short", "ab", strongPassword, ErrUsernameTooShort},
		{"username too long", strings.Repeat("a", 21), strongPassword, ErrUsernameTooLong},
		{"username with spaces", "calm walker", strongPassword, ErrInvalidUsernameFmt},
		{"weak password", "calm_walker", "password", ErrWeakPassword},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := NewPlayer(PlayerConfig{ID: uuid.New(), Username: tc.username, PlainPassword: tc.password})
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.username, p.Username)
			assert.NotEqual(t, tc.password, p.PasswordHash)
			assert.False(t, p.CreatedAt.IsZero())
		})
	}
}

func TestPlayer_VerifyPassword(t *testing.T) {
	p, err := NewPlayer(PlayerConfig{ID: uuid.New(), Username: "focus", PlainPassword: strongPassword})
	require.NoError(t, err)

	assert.True(t, p.VerifyPassword(strongPassword))
	assert.False(t, p.VerifyPassword("not-the-password"))
}

func TestSession_OwnedBy(t *testing.T) {
	owner := uuid.New()
	s := &Session{ID: uuid.New(), PlayerID: owner}

	assert.True(t, s.OwnedBy(owner))
	assert.False(t, s.OwnedBy(uuid.New()))

	var nilSession *Session
	assert.False(t, nilSession.OwnedBy(owner))
}
