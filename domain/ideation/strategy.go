package ideation

import (
	"encoding/json"
	"fmt"
)

// Strategy is one of the closed set of combination strategies the candidate
// generator applies to a concept bridge.
type Strategy int

const (
	StrategyAnalogy  Strategy = iota // map the mechanism of one side onto the other
	StrategyBlend                    // fuse both mechanisms into one
	StrategyTransfer                 // relocate one side's solution into the other's context
	StrategyInvert                   // apply the reverse of one side's mechanism
	StrategyScale                    // change the operating scale of a mechanism
)

// AllStrategies lists every strategy in canonical order
var AllStrategies = []Strategy{
	StrategyAnalogy,
	StrategyBlend,
	StrategyTransfer,
	StrategyInvert,
	StrategyScale,
}

// String returns the canonical name of the strategy
func (s Strategy) String() string {
	switch s {
	case StrategyAnalogy:
		return "analogy"
	case StrategyBlend:
		return "blend"
	case StrategyTransfer:
		return "transfer"
	case StrategyInvert:
		return "invert"
	case StrategyScale:
		return "scale"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// IsValid reports whether s is a defined strategy
func (s Strategy) IsValid() bool {
	return s >= StrategyAnalogy && s <= StrategyScale
}

// ParseStrategy parses a strategy by name
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "analogy":
		return StrategyAnalogy, nil
	case "blend":
		return StrategyBlend, nil
	case "transfer":
		return StrategyTransfer, nil
	case "invert":
		return StrategyInvert, nil
	case "scale":
		return StrategyScale, nil
	default:
		return 0, fmt.Errorf("unknown strategy %q", name)
	}
}

// MarshalJSON encodes the strategy by name
func (s Strategy) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Strategy) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseStrategy(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
