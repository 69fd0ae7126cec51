package game

// Source is the randomness the probability model draws from. *rand.Rand from
// math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
}

const (
	// interceptionBase is the chance a defender two cells away cuts out a pass.
	interceptionBase = 0.20
	// interceptionDecay is subtracted per cell of distance beyond that.
	interceptionDecay = 0.10

	// blockPerCell is the chance per cell (beyond the first) that a shot is
	// stopped before it reaches the goal.
	blockPerCell = 0.366
	// maxBlock caps the block chance so that a long shot can still go in.
	maxBlock = 0.95
)

// Distance returns the Manhattan distance between two cells.
func Distance(a, b Position) uint8 {
	dx := int(a.X) - int(b.X)
	dy := int(a.Y) - int(b.Y)
	return uint8(abs(dx) + abs(dy))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// InterceptionProbability is the chance that a defender at distance d from
// the passer or the receiver wins the ball.
//
// Only d == 2 carries a real chance: beyond that the linear decay goes
// negative and clamps to zero.
func InterceptionProbability(d uint8) float64 {
	switch {
	case d < 2:
		return 0
	case d == 2:
		return interceptionBase
	default:
		return max(interceptionBase-interceptionDecay*float64(d), 0)
	}
}

// IsIntercepted draws once (for d >= 2) and reports whether a defender at
// distance d intercepts. The comparison is inclusive at d == 2 and strict
// otherwise.
func IsIntercepted(rng Source, d uint8) bool {
	if d < 2 {
		return false
	}
	r := rng.Float64()
	if d == 2 && r <= interceptionBase {
		return true
	}
	return r < max(interceptionBase-interceptionDecay*float64(d), 0)
}

// BlockProbability is the chance a shot from distance d to the keeper is
// stopped.
func BlockProbability(d uint8) float64 {
	if d == 0 {
		return 0
	}
	return min(blockPerCell*(float64(d)-1), maxBlock)
}

// ShotReachesGoal reports whether a shot taken at distance d from the keeper
// goes in. A shot from the keeper's own cell always scores without a draw.
func ShotReachesGoal(rng Source, d uint8) bool {
	if d == 0 {
		return true
	}
	return BlockProbability(d) < rng.Float64()
}
