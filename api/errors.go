package api

import (
	"errors"
	"net/http"

	"github.com/beka-birhanu/maze-runner/game"
	"github.com/beka-birhanu/maze-runner/level"
	"github.com/beka-birhanu/maze-runner/maze"
	"github.com/gin-gonic/gin"
)

// ErrorStatus maps a domain error to the HTTP status reported to clients.
func ErrorStatus(err error) int {
	switch {
	case errors.Is(err, level.ErrInvalidLevel),
		errors.Is(err, level.ErrUnknownDifficulty),
		errors.Is(err, maze.ErrOutOfBounds),
		errors.Is(err, maze.ErrInvalidDirection):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrNoHintsLeft),
		errors.Is(err, game.ErrTimeUp),
		errors.Is(err, game.ErrNotPlaying),
		errors.Is(err, game.ErrNotPaused),
		errors.Is(err, game.ErrLevelNotCompleted),
		errors.Is(err, game.ErrLastLevel):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WriteError aborts the request with the status of err and an error body.
// Internal errors are not echoed back.
func WriteError(ctx *gin.Context, err error) {
	status := ErrorStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	ctx.AbortWithStatusJSON(status, gin.H{"error": msg})
}
