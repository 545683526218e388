package levelsapi

import (
	"net/http"
	"strconv"

	"github.com/beka-birhanu/maze-runner/api"
	"github.com/beka-birhanu/maze-runner/level"
	"github.com/beka-birhanu/maze-runner/service/i"
	"github.com/gin-gonic/gin"
)

// LevelsController serves read-only level data.
type LevelsController struct {
	levels i.LevelProvider
}

// NewLevelsController initializes a LevelsController.
func NewLevelsController(lp i.LevelProvider) *LevelsController {
	return &LevelsController{
		levels: lp,
	}
}

// RegisterPublic registers public routes.
func (lc *LevelsController) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/difficulties", lc.difficulties)

	levels := route.Group("/levels/:difficulty")
	{
		levels.GET("", lc.list)
		levels.GET("/:index", lc.level)
		levels.GET("/:index/path", lc.path)
	}
}

// RegisterProtected registers protected routes.
func (lc *LevelsController) RegisterProtected(route *gin.RouterGroup) {}

// difficulties lists the difficulty table.
func (lc *LevelsController) difficulties(ctx *gin.Context) {
	response := make([]DifficultyResponse, 0, len(level.Difficulties()))
	for _, d := range level.Difficulties() {
		c := d.Coefficients()
		response = append(response, DifficultyResponse{
			Name:    d.String(),
			Scale:   c.Scale,
			TimeMul: c.TimeMul,
			Hint:    c.Hint,
		})
	}
	ctx.JSON(http.StatusOK, response)
}

// list returns the summary of every level of a difficulty.
func (lc *LevelsController) list(ctx *gin.Context) {
	d, err := level.ParseDifficulty(ctx.Param("difficulty"))
	if err != nil {
		api.WriteError(ctx, err)
		return
	}

	levels, err := lc.levels.Levels(d)
	if err != nil {
		api.WriteError(ctx, err)
		return
	}

	response := make([]LevelSummaryResponse, 0, len(levels))
	for _, l := range levels {
		response = append(response, newLevelSummary(l))
	}
	ctx.JSON(http.StatusOK, response)
}

// level returns the full wall grid of a level.
func (lc *LevelsController) level(ctx *gin.Context) {
	l, ok := lc.lookup(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, newLevelResponse(l))
}

// path returns the shortest path from the requested cell to the goal.
func (lc *LevelsController) path(ctx *gin.Context) {
	l, ok := lc.lookup(ctx)
	if !ok {
		return
	}

	var query PathQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	from := l.Start()
	if query.FromRow != nil {
		from.Row = *query.FromRow
	}
	if query.FromCol != nil {
		from.Col = *query.FromCol
	}

	path, err := lc.levels.Path(l.Difficulty(), l.Index(), from)
	if err != nil {
		api.WriteError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, &PathResponse{
		From:  from,
		Steps: len(path) - 1,
		Path:  path,
	})
}

// lookup resolves the :difficulty and :index parameters, writing the error response on failure.
func (lc *LevelsController) lookup(ctx *gin.Context) (*level.Level, bool) {
	d, err := level.ParseDifficulty(ctx.Param("difficulty"))
	if err != nil {
		api.WriteError(ctx, err)
		return nil, false
	}

	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "level index must be an integer"})
		return nil, false
	}

	l, err := lc.levels.Level(d, index)
	if err != nil {
		api.WriteError(ctx, err)
		return nil, false
	}
	return l, true
}

