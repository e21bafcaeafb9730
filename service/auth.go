package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/mindful-maze/domain"
	"github.com/beka-birhanu/mindful-maze/service/i"
	"github.com/google/uuid"
)

const tokenTTL = 24 * time.Hour

type Auth struct {
	playerRepo i.PlayerRepo
	tokenizer  i.Tokenizer
}

func NewAuthService(pr i.PlayerRepo, t i.Tokenizer) (*Auth, error) {
	if pr == nil {
		return nil, fmt.Errorf("%w: player repo", ErrMissingDependency)
	}
	if t == nil {
		return nil, fmt.Errorf("%w: tokenizer", ErrMissingDependency)
	}
	return &Auth{playerRepo: pr, tokenizer: t}, nil
}

func (a *Auth) Register(ctx context.Context, username, password string) error {
	playerConfig := dmn.PlayerConfig{
		ID:            uuid.New(),
		Username:      username,
		PlainPassword: password,
	}

	player, err := dmn.NewPlayer(playerConfig)
	if err != nil {
		return err
	}

	if _, err := a.playerRepo.ByUsername(ctx, username); err == nil {
		return dmn.ErrUsernameConflict
	} else if !errors.Is(err, dmn.ErrPlayerNotFound) {
		return err
	}

	return a.playerRepo.Save(ctx, player)
}

func (a *Auth) SignIn(ctx context.Context, username, password string) (*dmn.Player, string, error) {
	player, err := a.playerRepo.ByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, dmn.ErrPlayerNotFound) {
			return nil, "", dmn.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !player.VerifyPassword(password) {
		return nil, "", dmn.ErrInvalidCredentials
	}

	token, err := a.tokenizer.Generate(map[string]interface{}{
		"playerID": player.ID.String(),
		"username": player.Username,
	}, tokenTTL)
	if err != nil {
		return nil, "", err
	}

	return player, token, nil
}
