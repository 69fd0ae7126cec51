package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/passandshoot/internal/game"
)

// MatchResult represents the outcome of a single bot-vs-bot match
type MatchResult struct {
	Seed          int64 // RNG seed for this match (for replay)
	Score         game.Score
	Passes        int // Completed passes
	Interceptions int // Passes won by the defending side
	Shots         int // Shots taken, scored or not
}

// ResultOf summarises a finished match from its event log.
func ResultOf(seed int64, score game.Score, events []game.Event) MatchResult {
	result := MatchResult{Seed: seed, Score: score}
	for _, e := range events {
		switch e.Kind {
		case game.EventPass:
			result.Passes++
		case game.EventInterception:
			result.Interceptions++
		case game.EventGoal, game.EventMiss:
			result.Shots++
		}
	}
	return result
}

// Margin is the blue goal difference of the match.
func (r MatchResult) Margin() int {
	return r.Score.Blue - r.Score.Red
}

// Statistics aggregates bot-vs-bot match results. Margins are measured from
// blue's side: positive means blue won.
type Statistics struct {
	Matches    int
	SumMargin  float64
	SumMargin2 float64   // Sum of squares for variance calculation
	Values     []float64 // Store all margins for median/percentile calculation

	BlueWins int
	RedWins  int
	Draws    int

	BlueGoals     int
	RedGoals      int
	Shots         int
	Passes        int
	Interceptions int

	// Highest single-match total, for spotting runaway matches
	MaxGoals int
}

// Mean returns the mean blue goal difference per match
func (s *Statistics) Mean() float64 {
	if s.Matches == 0 {
		return 0
	}
	return s.SumMargin / float64(s.Matches)
}

// Variance returns the sample variance of the goal difference
func (s *Statistics) Variance() float64 {
	if s.Matches < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumMargin2 - float64(s.Matches)*mean*mean) / float64(s.Matches-1)
}

// StdDev returns the sample standard deviation of the goal difference
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Matches == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Matches))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add incorporates a new match result into the statistics
func (s *Statistics) Add(result MatchResult) {
	margin := float64(result.Margin())
	s.Matches++
	s.SumMargin += margin
	s.SumMargin2 += margin * margin
	s.Values = append(s.Values, margin)

	switch result.Score.Leader() {
	case game.Blue:
		s.BlueWins++
	case game.Red:
		s.RedWins++
	default:
		s.Draws++
	}

	s.BlueGoals += result.Score.Blue
	s.RedGoals += result.Score.Red
	s.Shots += result.Shots
	s.Passes += result.Passes
	s.Interceptions += result.Interceptions

	if total := result.Score.Blue + result.Score.Red; total > s.MaxGoals {
		s.MaxGoals = total
	}
}

// Merge folds other into s.
func (s *Statistics) Merge(other *Statistics) {
	s.Matches += other.Matches
	s.SumMargin += other.SumMargin
	s.SumMargin2 += other.SumMargin2
	s.Values = append(s.Values, other.Values...)
	s.BlueWins += other.BlueWins
	s.RedWins += other.RedWins
	s.Draws += other.Draws
	s.BlueGoals += other.BlueGoals
	s.RedGoals += other.RedGoals
	s.Shots += other.Shots
	s.Passes += other.Passes
	s.Interceptions += other.Interceptions
	s.MaxGoals = max(s.MaxGoals, other.MaxGoals)
}

// Median returns the median goal difference
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the goal difference at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// WinRate returns the share of matches won by t
func (s *Statistics) WinRate(t game.Team) float64 {
	if s.Matches == 0 {
		return 0
	}
	switch t {
	case game.Blue:
		return float64(s.BlueWins) / float64(s.Matches)
	case game.Red:
		return float64(s.RedWins) / float64(s.Matches)
	}
	return float64(s.Draws) / float64(s.Matches)
}

// GoalsPerMatch returns the mean number of goals in a match
func (s *Statistics) GoalsPerMatch() float64 {
	if s.Matches == 0 {
		return 0
	}
	return float64(s.BlueGoals+s.RedGoals) / float64(s.Matches)
}

// ConversionRate returns the share of shots that ended in a goal
func (s *Statistics) ConversionRate() float64 {
	if s.Shots == 0 {
		return 0
	}
	return float64(s.BlueGoals+s.RedGoals) / float64(s.Shots)
}

// InterceptionRate returns the share of attempted passes that were intercepted
func (s *Statistics) InterceptionRate() float64 {
	attempts := s.Passes + s.Interceptions
	if attempts == 0 {
		return 0
	}
	return float64(s.Interceptions) / float64(attempts)
}

// Validate performs consistency checks on the aggregated data
func (s *Statistics) Validate() error {
	if s.Matches <= 0 {
		return fmt.Errorf("invalid matches count: %d", s.Matches)
	}

	if len(s.Values) != s.Matches {
		return fmt.Errorf("values array length (%d) does not match matches count (%d)",
			len(s.Values), s.Matches)
	}

	if outcomes := s.BlueWins + s.RedWins + s.Draws; outcomes != s.Matches {
		return fmt.Errorf("outcomes total (%d) does not match matches count (%d)", outcomes, s.Matches)
	}

	if goals := s.BlueGoals + s.RedGoals; goals > s.Shots {
		return fmt.Errorf("goals (%d) exceed shots (%d)", goals, s.Shots)
	}

	if diff := float64(s.BlueGoals - s.RedGoals); math.Abs(diff-s.SumMargin) > 1e-6 {
		return fmt.Errorf("margin mismatch: goals say %.0f, margins sum to %.0f", diff, s.SumMargin)
	}

	// Every round is exactly one pass, interception or shot.
	if turns := s.Passes + s.Interceptions + s.Shots; turns != s.Matches*game.TotalRounds {
		return fmt.Errorf("recorded %d turns, want %d for %d matches", turns, s.Matches*game.TotalRounds, s.Matches)
	}

	return nil
}
