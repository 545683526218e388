package level

import (
	"fmt"
	"strings"
)

// Difficulty selects one of the fixed coefficient sets used to size and time a level.
type Difficulty uint8

const (
	Easy Difficulty = iota
	Normal
	Hard
)

// Coefficients are the tuning values attached to a difficulty.
type Coefficients struct {
	Scale   float64 `json:"scale"`    // maze size multiplier
	TimeMul float64 `json:"time_mul"` // time budget multiplier
	Hint    int     `json:"hint"`     // hints a player may request per level
}

var (
	difficulties = [...]Difficulty{Easy, Normal, Hard}

	coefficients = [...]Coefficients{
		Easy:   {Scale: 1.0, TimeMul: 1.2, Hint: 3},
		Normal: {Scale: 1.2, TimeMul: 1.0, Hint: 2},
		Hard:   {Scale: 1.5, TimeMul: 0.8, Hint: 1},
	}

	difficultyNames = [...]string{
		Easy:   "easy",
		Normal: "normal",
		Hard:   "hard",
	}
)

// Difficulties returns every difficulty from easiest to hardest.
func Difficulties() []Difficulty {
	return difficulties[:]
}

// ParseDifficulty converts a case-insensitive difficulty name into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, d := range difficulties {
		if difficultyNames[d] == name {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	return int(d) < len(difficulties)
}

// Coefficients returns the coefficient set of d. Unknown difficulties yield the zero value.
func (d Difficulty) Coefficients() Coefficients {
	if !d.Valid() {
		return Coefficients{}
	}
	return coefficients[d]
}

// Next cycles to the following difficulty, wrapping from Hard back to Easy.
func (d Difficulty) Next() Difficulty {
	return (d + 1) % Difficulty(len(difficulties))
}

func (d Difficulty) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Difficulty(%d)", uint8(d))
	}
	return difficultyNames[d]
}

// MarshalText implements encoding.TextMarshaler.
func (d Difficulty) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDifficulty, uint8(d))
	}
	return []byte(difficultyNames[d]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
