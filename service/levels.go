package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/beka-birhanu/maze-runner/level"
	"github.com/beka-birhanu/maze-runner/maze"
	"github.com/beka-birhanu/maze-runner/service/i"
)

var _ i.LevelProvider = &LevelService{}

// LevelService keeps one eagerly generated catalog per difficulty.
// Catalogs that were not warmed up at construction are generated on first use.
type LevelService struct {
	catalogs map[level.Difficulty]*level.Catalog
	logger   i.Logger
	sync.Mutex
}

// NewLevelService creates a LevelService and generates the catalogs for warm up front.
func NewLevelService(logger i.Logger, warm ...level.Difficulty) (*LevelService, error) {
	if logger == nil {
		return nil, errors.New("level service requires a logger")
	}

	s := &LevelService{
		catalogs: make(map[level.Difficulty]*level.Catalog),
		logger:   logger,
	}
	for _, d := range warm {
		if _, err := s.catalog(d); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Level implements i.LevelProvider.
func (s *LevelService) Level(d level.Difficulty, index int) (*level.Level, error) {
	c, err := s.catalog(d)
	if err != nil {
		return nil, err
	}
	return c.Level(index)
}

// Levels implements i.LevelProvider.
func (s *LevelService) Levels(d level.Difficulty) ([]*level.Level, error) {
	c, err := s.catalog(d)
	if err != nil {
		return nil, err
	}
	return c.Levels(), nil
}

// Path implements i.LevelProvider.
func (s *LevelService) Path(d level.Difficulty, index int, from maze.CellPosition) ([]maze.CellPosition, error) {
	lvl, err := s.Level(d, index)
	if err != nil {
		return nil, err
	}

	path, err := maze.FindPath(lvl.Grid(), from, lvl.Goal())
	if errors.Is(err, maze.ErrNoPath) {
		s.logger.Error(fmt.Sprintf("invariant violation: level %d (%s) has no path from %s: %s", index, d, from, err))
	}
	return path, err
}

func (s *LevelService) catalog(d level.Difficulty) (*level.Catalog, error) {
	s.Lock()
	defer s.Unlock()

	if c, ok := s.catalogs[d]; ok {
		return c, nil
	}

	c, err := level.NewCatalog(d)
	if err != nil {
		return nil, err
	}
	s.catalogs[d] = c
	s.logger.Info(fmt.Sprintf("generated %d levels for difficulty %s", c.Len(), d))
	return c, nil
}
