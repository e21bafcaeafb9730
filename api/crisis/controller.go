// Package crisisapi exposes the crisis check and alert endpoints.
package crisisapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/beka-birhanu/mindful-maze/api/identity"
	"github.com/beka-birhanu/mindful-maze/service/i"
	"github.com/gin-gonic/gin"
)

type CheckRequest struct {
	Text string `json:"text" binding:"required"`
}

type CheckResponse struct {
	Crisis  bool     `json:"crisis"`
	Matches []string `json:"matches"`
}

// AlertRequest carries the caller's location. Pointers keep 0 a valid coordinate.
type AlertRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
}

type CrisisController struct {
	responder i.CrisisResponder
}

func NewCrisisController(r i.CrisisResponder) (*CrisisController, error) {
	if r == nil {
		return nil, errors.New("crisis responder is required")
	}
	return &CrisisController{responder: r}, nil
}

func (cc *CrisisController) RegisterPublic(route *gin.RouterGroup) {
	route.POST("/crisis/check", cc.check)
}

func (cc *CrisisController) RegisterProtected(route *gin.RouterGroup) {
	route.POST("/crisis/alerts", cc.raiseAlert)
	route.GET("/crisis/alerts", cc.alerts)
}

func (cc *CrisisController) check(ctx *gin.Context) {
	var request CheckRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	crisis, matches := cc.responder.Check(request.Text)
	ctx.JSON(http.StatusOK, CheckResponse{Crisis: crisis, Matches: matches})
}

func (cc *CrisisController) raiseAlert(ctx *gin.Context) {
	playerID, username, ok := identity.Player(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var request AlertRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	alert, err := cc.responder.RaiseAlert(ctx.Request.Context(), playerID, username, *request.Latitude, *request.Longitude)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not record alert"})
		return
	}
	ctx.JSON(http.StatusCreated, alert)
}

func (cc *CrisisController) alerts(ctx *gin.Context) {
	playerID, _, ok := identity.Player(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	alerts, err := cc.responder.Alerts(ctx.Request.Context(), playerID, limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not list alerts"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"alerts": alerts})
}
