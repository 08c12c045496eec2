// Package raceapi provides structures and utilities for race requests and responses.
package raceapi

import (
	"github.com/beka-birhanu/vinom-maze-race/service/i"
	"github.com/google/uuid"
)

// NewRaceRequest represents a request to start a new race.
type NewRaceRequest struct {
	Player string  `json:"player"`
	Seed   *uint64 `json:"seed"`
}

// NewRaceResponse carries the ID of a created race.
type NewRaceResponse struct {
	ID uuid.UUID `json:"id"`
}

// MoveRequest represents one directional input for the human runner.
type MoveRequest struct {
	Direction string `json:"direction" binding:"required"`
}

// LeaderboardResponse lists the fastest winning times.
type LeaderboardResponse struct {
	Scores []i.Score `json:"scores"`
}
