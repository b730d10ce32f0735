package rules

import "fmt"

// Phase is a state of the turn state machine.
type Phase int

const (
	PhaseActions Phase = iota
	PhaseDraw
	PhaseInfect
	PhaseGameOver
)

var phaseNames = map[Phase]string{
	PhaseActions:  "actions",
	PhaseDraw:     "draw",
	PhaseInfect:   "infect",
	PhaseGameOver: "gameover",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PHASE_%d", int(p))
}

// ParsePhase converts a phase name back to a Phase.
func ParsePhase(name string) (Phase, error) {
	for p, n := range phaseNames {
		if n == name {
			return p, nil
		}
	}
	return PhaseActions, fmt.Errorf("unknown phase %q", name)
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(b []byte) error {
	v, err := ParsePhase(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// transitions lists the legal successors of each phase. Any live phase may
// fall into gameover; gameover is terminal.
var transitions = map[Phase][]Phase{
	PhaseActions: {PhaseDraw, PhaseGameOver},
	PhaseDraw:    {PhaseInfect, PhaseGameOver},
	PhaseInfect:  {PhaseActions, PhaseGameOver},
}

// CanTransition reports whether the machine may move from p to next.
func (p Phase) CanTransition(next Phase) bool {
	for _, allowed := range transitions[p] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are possible.
func (p Phase) Terminal() bool {
	return len(transitions[p]) == 0
}

// InfectionRateTrack is the number of infection cards drawn per infect phase,
// indexed by how many epidemics have been resolved.
var InfectionRateTrack = []int{2, 2, 3, 4}

// InfectionRate returns the rate at the given track position, clamped to the track.
func InfectionRate(idx int) int {
	if idx < 0 {
		idx = 0
	}
	if idx >= len(InfectionRateTrack) {
		idx = len(InfectionRateTrack) - 1
	}
	return InfectionRateTrack[idx]
}

// AdvanceInfectionRate moves one step along the track, saturating at its end.
func AdvanceInfectionRate(idx int) int {
	if idx < len(InfectionRateTrack)-1 {
		return idx + 1
	}
	return len(InfectionRateTrack) - 1
}
