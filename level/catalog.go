package level

import "fmt"

// Catalog holds every level of one difficulty, generated up front. It never changes after construction.
// Levels handed out by a Catalog are shared and must be treated as read-only:
// use their Grid with the maze package instead of RequestHint.
type Catalog struct {
	difficulty Difficulty
	levels     []*Level
}

// NewCatalog generates all NumLevels levels for difficulty d.
func NewCatalog(d Difficulty) (*Catalog, error) {
	levels, err := loadAll(d)
	if err != nil {
		return nil, err
	}
	return &Catalog{
		difficulty: d,
		levels:     levels,
	}, nil
}

// Level returns the level with the given index.
func (c *Catalog) Level(index int) (*Level, error) {
	if index < 0 || index >= len(c.levels) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLevel, index)
	}
	return c.levels[index], nil
}

// Levels returns the levels in index order.
func (c *Catalog) Levels() []*Level {
	return append([]*Level(nil), c.levels...)
}

// Len returns the number of levels in the catalog.
func (c *Catalog) Len() int {
	return len(c.levels)
}

// Difficulty returns the difficulty of the catalog's levels.
func (c *Catalog) Difficulty() Difficulty {
	return c.difficulty
}

func loadAll(d Difficulty) ([]*Level, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDifficulty, uint8(d))
	}

	levels := make([]*Level, NumLevels)
	for i := range levels {
		l, err := Load(i, d)
		if err != nil {
			return nil, err
		}
		levels[i] = l
	}
	return levels, nil
}
