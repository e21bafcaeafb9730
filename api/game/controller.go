package gameapi

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/beka-birhanu/mindful-maze/api/identity"
	dmn "github.com/beka-birhanu/mindful-maze/domain"
	"github.com/beka-birhanu/mindful-maze/game"
	"github.com/beka-birhanu/mindful-maze/game/render"
	"github.com/beka-birhanu/mindful-maze/maze"
	"github.com/beka-birhanu/mindful-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MazeController serves maze sessions.
type MazeController struct {
	sessions i.GameSessionManager
}

func NewMazeController(gsm i.GameSessionManager) (*MazeController, error) {
	if gsm == nil {
		return nil, errors.New("game session manager is required")
	}
	return &MazeController{sessions: gsm}, nil
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {}

// RegisterProtected registers protected routes.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {
	mz := route.Group("/maze")
	{
		mz.POST("/sessions", mc.newSession)
		mz.GET("/sessions/:ID", mc.session)
		mz.POST("/sessions/:ID/moves", mc.move)
		mz.PUT("/sessions/:ID/difficulty", mc.changeDifficulty)
		mz.PUT("/sessions/:ID/theme", mc.changeTheme)
		mz.GET("/sessions/:ID/image", mc.image)
		mz.DELETE("/sessions/:ID", mc.endSession)
		mz.GET("/leaderboard", mc.leaderboard)
		mz.GET("/history", mc.history)
	}
}

// writeError maps service errors to status codes.
func writeError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	msg := "internal error"
	switch {
	case errors.Is(err, dmn.ErrSessionNotFound):
		status, msg = http.StatusNotFound, err.Error()
	case errors.Is(err, dmn.ErrSessionBusy):
		status, msg = http.StatusConflict, dmn.ErrSessionBusy.Error()
	case errors.Is(err, maze.ErrInvalidDifficulty),
		errors.Is(err, game.ErrInvalidTheme),
		errors.Is(err, game.ErrInvalidDirection),
		errors.Is(err, render.ErrInvalidImageSize):
		status, msg = http.StatusBadRequest, err.Error()
	}
	ctx.JSON(status, gin.H{"error": msg})
}

// caller extracts the player and the :ID session parameter.
func caller(ctx *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	playerID, _, ok := identity.Player(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return uuid.Nil, uuid.Nil, false
	}

	sessionID, err := uuid.Parse(ctx.Param("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return uuid.Nil, uuid.Nil, false
	}
	return playerID, sessionID, true
}

func (mc *MazeController) newSession(ctx *gin.Context) {
	playerID, _, ok := identity.Player(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var request NewSessionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil && ctx.Request.ContentLength != 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if request.Difficulty == "" {
		request.Difficulty = string(maze.Easy)
	}
	if request.Theme == "" {
		request.Theme = string(game.Calm)
	}

	s, err := mc.sessions.NewSession(ctx.Request.Context(), playerID, maze.Difficulty(request.Difficulty), game.Theme(request.Theme))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, toSessionResponse(s))
}

func (mc *MazeController) session(ctx *gin.Context) {
	playerID, sessionID, ok := caller(ctx)
	if !ok {
		return
	}

	s, err := mc.sessions.Session(ctx.Request.Context(), playerID, sessionID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toSessionResponse(s))
}

func (mc *MazeController) move(ctx *gin.Context) {
	playerID, sessionID, ok := caller(ctx)
	if !ok {
		return
	}

	var request MoveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dir, err := game.ParseDirection(request.Direction)
	if err != nil {
		writeError(ctx, err)
		return
	}

	result, s, err := mc.sessions.Move(ctx.Request.Context(), playerID, sessionID, dir)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, MoveResponse{Result: result, Session: toSessionResponse(s)})
}

func (mc *MazeController) changeDifficulty(ctx *gin.Context) {
	playerID, sessionID, ok := caller(ctx)
	if !ok {
		return
	}

	var request DifficultyRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	d, err := maze.ParseDifficulty(request.Difficulty)
	if err != nil {
		writeError(ctx, err)
		return
	}

	s, err := mc.sessions.ChangeDifficulty(ctx.Request.Context(), playerID, sessionID, d)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toSessionResponse(s))
}

func (mc *MazeController) changeTheme(ctx *gin.Context) {
	playerID, sessionID, ok := caller(ctx)
	if !ok {
		return
	}

	var request ThemeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := game.ParseTheme(request.Theme)
	if err != nil {
		writeError(ctx, err)
		return
	}

	s, err := mc.sessions.ChangeTheme(ctx.Request.Context(), playerID, sessionID, t)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toSessionResponse(s))
}

// image renders the session as a PNG. ?size= sets the side in pixels.
func (mc *MazeController) image(ctx *gin.Context) {
	playerID, sessionID, ok := caller(ctx)
	if !ok {
		return
	}

	size := 0
	if raw := ctx.Query("size"); raw != "" {
		var err error
		if size, err = strconv.Atoi(raw); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "size must be an integer"})
			return
		}
	}

	s, err := mc.sessions.Session(ctx.Request.Context(), playerID, sessionID)
	if err != nil {
		writeError(ctx, err)
		return
	}

	var buf bytes.Buffer
	if err := render.WritePNG(&buf, s.Game, size); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Header("Cache-Control", "no-store")
	ctx.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (mc *MazeController) endSession(ctx *gin.Context) {
	playerID, sessionID, ok := caller(ctx)
	if !ok {
		return
	}

	if err := mc.sessions.EndSession(ctx.Request.Context(), playerID, sessionID); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func limit(ctx *gin.Context) (int, bool) {
	raw := ctx.Query("limit")
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
		return 0, false
	}
	return n, true
}

func (mc *MazeController) leaderboard(ctx *gin.Context) {
	n, ok := limit(ctx)
	if !ok {
		return
	}

	entries, err := mc.sessions.Leaderboard(ctx.Request.Context(), n)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (mc *MazeController) history(ctx *gin.Context) {
	playerID, _, ok := identity.Player(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	n, ok := limit(ctx)
	if !ok {
		return
	}

	records, err := mc.sessions.History(ctx.Request.Context(), playerID, n)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"levels": records})
}
