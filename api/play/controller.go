package playapi

import (
	"context"
	"net/http"
	"time"

	"github.com/beka-birhanu/maze-runner/api"
	"github.com/beka-birhanu/maze-runner/api/identity"
	"github.com/beka-birhanu/maze-runner/game"
	"github.com/beka-birhanu/maze-runner/level"
	"github.com/beka-birhanu/maze-runner/maze"
	"github.com/beka-birhanu/maze-runner/service"
	"github.com/beka-birhanu/maze-runner/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PlayController handles HTTP requests for play sessions.
type PlayController struct {
	play i.PlayManager
	now  func() time.Time
}

// NewPlayController initializes a PlayController.
func NewPlayController(pm i.PlayManager) *PlayController {
	return &PlayController{
		play: pm,
		now:  time.Now,
	}
}

// RegisterPublic registers public routes.
func (pc *PlayController) RegisterPublic(route *gin.RouterGroup) {
	route.POST("/sessions", pc.start)
}

// RegisterProtected registers routes that need the session's token.
func (pc *PlayController) RegisterProtected(route *gin.RouterGroup) {
	sessions := route.Group("/sessions/:ID")
	{
		sessions.GET("", pc.get)
		sessions.DELETE("", pc.end)
		sessions.POST("/moves", pc.move)
		sessions.POST("/hints", pc.hint)
		sessions.POST("/pause", pc.pause)
		sessions.POST("/resume", pc.resume)
		sessions.POST("/restart", pc.restart)
		sessions.POST("/next", pc.next)
		sessions.PUT("/difficulty", pc.setDifficulty)
	}
}

// start opens a session and hands back its token.
func (pc *PlayController) start(ctx *gin.Context) {
	var request StartRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d, err := level.ParseDifficulty(request.Difficulty)
	if err != nil {
		api.WriteError(ctx, err)
		return
	}

	s, token, err := pc.play.Start(ctx, d, *request.Level)
	if err != nil {
		api.WriteError(ctx, err)
		return
	}

	resp, err := newSessionResponse(s, pc.now())
	if err != nil {
		api.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, &StartResponse{
		Session: resp,
		Token:   token,
	})
}

// get returns the session, moving it to time_up if its clock ran out.
func (pc *PlayController) get(ctx *gin.Context) {
	id, ok := pc.sessionID(ctx)
	if !ok {
		return
	}

	s, err := pc.play.Get(ctx, id)
	if err != nil {
		api.WriteError(ctx, err)
		return
	}
	resp, err := newSessionResponse(s, pc.now())
	if err != nil {
		api.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// end discards the session.
func (pc *PlayController) end(ctx *gin.Context) {
	id, ok := pc.sessionID(ctx)
	if !ok {
		return
	}

	if err := pc.play.End(ctx, id); err != nil {
		api.WriteError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// move steps the player one cell. A blocked move is a successful request.
func (pc *PlayController) move(ctx *gin.Context) {
	id, ok := pc.sessionID(ctx)
	if !ok {
		return
	}

	var request MoveRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d, err := maze.ParseDirection(request.Direction)
	if err != nil {
		api.WriteError(ctx, err)
		return
	}

	s, result, err := pc.play.Move(ctx, id, d)
	if err != nil {
		api.WriteError(ctx, err)
		return
	}

	resp, err := newSessionResponse(s, pc.now())
	if err != nil {
		api.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, &MoveResponse{
		Outcome: result.Outcome.String(),
		Session: resp,
	})
}

// hint spends one hint on the path from the player's cell to the goal.
func (pc *PlayController) hint(ctx *gin.Context) {
	id, ok := pc.sessionID(ctx)
	if !ok {
		return
	}

	s, path, err := pc.play.Hint(ctx, id)
	if err != nil {
		api.WriteError(ctx, err)
		return
	}

	resp, err := newSessionResponse(s, pc.now())
	if err != nil {
		api.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, &HintResponse{
		Path:    path,
		Session: resp,
	})
}

func (pc *PlayController) pause(ctx *gin.Context) {
	pc.transition(ctx, pc.play.Pause)
}

func (pc *PlayController) resume(ctx *gin.Context) {
	pc.transition(ctx, pc.play.Resume)
}

func (pc *PlayController) restart(ctx *gin.Context) {
	pc.transition(ctx, pc.play.Restart)
}

func (pc *PlayController) next(ctx *gin.Context) {
	pc.transition(ctx, pc.play.Next)
}

// setDifficulty reloads the current level at another difficulty.
func (pc *PlayController) setDifficulty(ctx *gin.Context) {
	id, ok := pc.sessionID(ctx)
	if !ok {
		return
	}

	var request DifficultyRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d, err := level.ParseDifficulty(request.Difficulty)
	if err != nil {
		api.WriteError(ctx, err)
		return
	}

	s, err := pc.play.SetDifficulty(ctx, id, d)
	if err != nil {
		api.WriteError(ctx, err)
		return
	}
	resp, err := newSessionResponse(s, pc.now())
	if err != nil {
		api.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// transition runs a body-less session operation and writes the resulting session.
func (pc *PlayController) transition(ctx *gin.Context, op func(context.Context, uuid.UUID) (*game.Session, error)) {
	id, ok := pc.sessionID(ctx)
	if !ok {
		return
	}

	s, err := op(ctx, id)
	if err != nil {
		api.WriteError(ctx, err)
		return
	}
	resp, err := newSessionResponse(s, pc.now())
	if err != nil {
		api.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// sessionID parses the :ID parameter and checks it against the token's session claim.
func (pc *PlayController) sessionID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid session ID"})
		return uuid.Nil, false
	}

	claimed, ok := identity.Claim(ctx, service.SessionClaim)
	if !ok || claimed != id.String() {
		ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "token does not grant access to this session"})
		return uuid.Nil, false
	}
	return id, true
}
