package scaling

import (
	"fmt"
	"strings"

	"github.com/skillcoder/hyperscale-autoscaler/internal/logic/tier"
)

// Direction selects which half of the hysteresis band is evaluated.
type Direction int

const (
	DirectionUp Direction = iota + 1
	DirectionDown
)

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// ParseDirection accepts "up" or "down" in any case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return DirectionUp, nil
	case "down":
		return DirectionDown, nil
	default:
		return 0, fmt.Errorf("unknown scaling direction %q", s)
	}
}

// Outcome is the kind of a Decision.
type Outcome int

const (
	OutcomeNoChange Outcome = iota
	OutcomeInsufficientData
	OutcomeScaleTo
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoChange:
		return "no_change"
	case OutcomeInsufficientData:
		return "insufficient_data"
	case OutcomeScaleTo:
		return "scale_to"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Decision is the result of one evaluation. Target is set only for OutcomeScaleTo.
type Decision struct {
	Outcome Outcome
	Target  tier.Tier
}

func (d Decision) String() string {
	if d.Outcome == OutcomeScaleTo {
		return d.Outcome.String() + "(" + d.Target.String() + ")"
	}

	return d.Outcome.String()
}

// Navigator steps through a tier ladder. *tier.Catalog implements it.
type Navigator interface {
	Next(t tier.Tier) (tier.Tier, bool)
	Previous(t tier.Tier) (tier.Tier, bool)
}

type rule struct {
	triggered func(s Snapshot, p Policy) bool
	step      func(nav Navigator, t tier.Tier) (tier.Tier, bool)
	// movable reports whether the current tier may still move in this direction.
	movable func(current tier.Tier, p Policy) bool
}

var rules = map[Direction]rule{
	// Any pressure signal is enough to grow.
	DirectionUp: {
		triggered: func(s Snapshot, p Policy) bool {
			return s.MovingAvgCPUPercent > p.HighCPUPercent ||
				s.MovingAvgWorkerPercent > p.HighWorkerPercent
		},
		step: Navigator.Next,
		movable: func(current tier.Tier, p Policy) bool {
			return current.Cores < p.MaxCores
		},
	},
	// Every signal must be low before shrinking.
	DirectionDown: {
		triggered: func(s Snapshot, p Policy) bool {
			return s.MovingAvgCPUPercent < p.LowCPUPercent &&
				s.MovingAvgWorkerPercent < p.LowWorkerPercent
		},
		step: Navigator.Previous,
		movable: func(current tier.Tier, p Policy) bool {
			return current.Cores > p.MinCores
		},
	},
}

// Decide evaluates one direction for the current tier. It has no side effects.
func Decide(nav Navigator, current tier.Tier, snap Snapshot, p Policy, d Direction) Decision {
	if snap.DataPoints < p.RequiredDataPoints {
		return Decision{Outcome: OutcomeInsufficientData}
	}

	r, ok := rules[d]
	if !ok || !r.triggered(snap, p) || !r.movable(current, p) {
		return Decision{Outcome: OutcomeNoChange}
	}

	candidate, ok := r.step(nav, current)
	if !ok || candidate == current {
		return Decision{Outcome: OutcomeNoChange}
	}

	if candidate.Cores < p.MinCores || candidate.Cores > p.MaxCores {
		return Decision{Outcome: OutcomeNoChange}
	}

	return Decision{Outcome: OutcomeScaleTo, Target: candidate}
}
