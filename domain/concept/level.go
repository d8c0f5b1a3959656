package concept

import (
	"encoding/json"
	"fmt"
)

// AbstractionLevel is the granularity at which a concept is expressed,
// from a concrete named implementation up to a cross-domain meta-pattern.
// The set is closed: retrieval and ranking logic match on it exhaustively.
type AbstractionLevel int

const (
	LevelConcrete AbstractionLevel = iota // specific named implementation
	LevelPattern                          // reusable design pattern
	LevelAbstract                         // abstract principle
	LevelMeta                             // cross-domain meta-pattern
)

// NumLevels is the size of the closed level set, usable as an array length.
const NumLevels = int(LevelMeta) + 1

// AllLevels lists every abstraction level in ascending order.
var AllLevels = []AbstractionLevel{LevelConcrete, LevelPattern, LevelAbstract, LevelMeta}

// String returns the canonical name of the level
func (l AbstractionLevel) String() string {
	switch l {
	case LevelConcrete:
		return "concrete"
	case LevelPattern:
		return "pattern"
	case LevelAbstract:
		return "abstract"
	case LevelMeta:
		return "meta"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// IsValid reports whether l is one of the four defined levels
func (l AbstractionLevel) IsValid() bool {
	return l >= LevelConcrete && l <= LevelMeta
}

// Distance returns the integer distance between two abstraction levels
func (l AbstractionLevel) Distance(other AbstractionLevel) int {
	d := int(l) - int(other)
	if d < 0 {
		d = -d
	}
	return d
}

// ParseLevel parses a level name as produced by the external classifier
func ParseLevel(s string) (AbstractionLevel, error) {
	switch s {
	case "concrete":
		return LevelConcrete, nil
	case "pattern":
		return LevelPattern, nil
	case "abstract":
		return LevelAbstract, nil
	case "meta":
		return LevelMeta, nil
	default:
		return 0, fmt.Errorf("unknown abstraction level %q", s)
	}
}

// MarshalJSON encodes the level by name so persisted artifacts stay readable
func (l AbstractionLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

func (l *AbstractionLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseLevel(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
