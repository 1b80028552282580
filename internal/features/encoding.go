package features

// Integer encodings for categorical columns. These must match the exact
// factorize order from model training; changing them silently breaks
// every prediction, so they are fixed tables, not derived.

var laneEncoding = map[string]int{
	"BOTTOM":  0,
	"SUPPORT": 1, // old API lane value
	"UTILITY": 1, // maps to SUPPORT
	"NONE":    2,
	"JUNGLE":  3,
	"TOP":     4,
	"MIDDLE":  5,
}

var roleEncoding = map[string]int{
	"SUPPORT": 0,
	"ADC":     1,
	"DUO":     1, // maps to ADC
	"CARRY":   1, // maps to ADC
	"NONE":    2,
	"JUNGLE":  3,
	"TOP":     4,
	"SOLO":    4, // maps to TOP
	"MIDDLE":  5,
}

const (
	unknownLaneCode = 5
	unknownRoleCode = 1
)

// EncodeLane returns the training-time integer code for a lane label.
func EncodeLane(lane string) int {
	if code, ok := laneEncoding[lane]; ok {
		return code
	}
	return unknownLaneCode
}

// EncodeRole returns the training-time integer code for a role label.
func EncodeRole(role string) int {
	if code, ok := roleEncoding[role]; ok {
		return code
	}
	return unknownRoleCode
}

// GamePhase buckets a game by its duration.
type GamePhase string

const (
	PhaseEarly GamePhase = "Early"
	PhaseMid   GamePhase = "Mid"
	PhaseLate  GamePhase = "Late"
)

// Duration thresholds in minutes. Tunable, but must stay consistent
// between training data generation and inference.
const (
	earlyPhaseMaxMinutes = 20.0
	midPhaseMaxMinutes   = 35.0
)

// PhaseForDuration buckets a game duration (in minutes) into a phase.
func PhaseForDuration(minutes float64) GamePhase {
	switch {
	case minutes < earlyPhaseMaxMinutes:
		return PhaseEarly
	case minutes < midPhaseMaxMinutes:
		return PhaseMid
	default:
		return PhaseLate
	}
}

// Code returns the training-time integer code for the phase.
func (p GamePhase) Code() int {
	switch p {
	case PhaseMid:
		return 0
	case PhaseLate:
		return 1
	case PhaseEarly:
		return 2
	}
	return 0
}
