package raceapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/beka-birhanu/vinom-maze-race/maze"
	"github.com/beka-birhanu/vinom-maze-race/service"
	"github.com/beka-birhanu/vinom-maze-race/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
	leaderboardTimeout      = 500 * time.Millisecond
)

// RaceController exposes races to presentation clients.
type RaceController struct {
	sessions i.RaceSessionManager
}

// NewRaceController initializes a RaceController.
func NewRaceController(rsm i.RaceSessionManager) (*RaceController, error) {
	if rsm == nil {
		return nil, errors.New("race session manager is nil")
	}
	return &RaceController{sessions: rsm}, nil
}

// RegisterPublic registers public routes.
func (rc *RaceController) RegisterPublic(route *gin.RouterGroup) {
	races := route.Group("/races")
	{
		races.POST("", rc.newRace)
		races.GET("/:ID", rc.snapshot)
		races.GET("/:ID/ascii", rc.render)
		races.POST("/:ID/moves", rc.move)
	}
	route.GET("/leaderboard", rc.leaderboard)
}

// newRace handles race creation requests.
func (rc *RaceController) newRace(ctx *gin.Context) {
	var request NewRaceRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	id, err := rc.sessions.NewSession(request.Player, request.Seed)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while creating race"})
		return
	}

	ctx.JSON(http.StatusCreated, &NewRaceResponse{ID: id})
}

// snapshot returns the drawable state of a race.
func (rc *RaceController) snapshot(ctx *gin.Context) {
	id, ok := raceID(ctx)
	if !ok {
		return
	}

	snapshot, err := rc.sessions.Snapshot(id)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, snapshot)
}

// render returns the race drawn as ASCII art.
func (rc *RaceController) render(ctx *gin.Context) {
	id, ok := raceID(ctx)
	if !ok {
		return
	}

	rendered, err := rc.sessions.Render(id)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.String(http.StatusOK, rendered)
}

// move queues a directional input for the human runner.
func (rc *RaceController) move(ctx *gin.Context) {
	id, ok := raceID(ctx)
	if !ok {
		return
	}

	var request MoveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	direction, err := maze.ParseDirection(request.Direction)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := rc.sessions.Move(id, direction); err != nil {
		writeError(ctx, err)
		return
	}

	ctx.Status(http.StatusAccepted)
}

// leaderboard returns the fastest winning times.
func (rc *RaceController) leaderboard(ctx *gin.Context) {
	limit := defaultLeaderboardLimit
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(parsed, maxLeaderboardLimit)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, leaderboardTimeout)
	defer cancel()
	scores, err := rc.sessions.Leaderboard(timeoutCtx, int64(limit))
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, &LeaderboardResponse{Scores: scores})
}

// raceID parses the :ID path parameter, answering 400 when it is not a UUID.
func raceID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid race id"})
		return uuid.Nil, false
	}
	return id, true
}

// writeError maps service errors to HTTP statuses.
func writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "race not found"})
	case errors.Is(err, service.ErrRaceFinished):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInputQueueFull):
		ctx.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNoLeaderboard):
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
