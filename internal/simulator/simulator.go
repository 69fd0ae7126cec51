// Package simulator plays many bot-vs-bot matches and aggregates the results.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/passandshoot/internal/bot"
	"github.com/lox/passandshoot/internal/game"
	"github.com/lox/passandshoot/internal/match"
	"github.com/lox/passandshoot/internal/randutil"
	"github.com/lox/passandshoot/internal/statistics"
)

// Config holds configuration for running simulations
type Config struct {
	Games int
	// Red and Blue name the bot policy playing each side.
	Red  string
	Blue string
	Seed int64
	// Parallel bounds the number of matches in flight; zero uses GOMAXPROCS.
	Parallel int
	// Timeout bounds a single match.
	Timeout time.Duration
	Logger  *log.Logger
}

// Simulator runs bot-vs-bot matches
type Simulator struct {
	config Config
	logger *log.Logger
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Parallel <= 0 {
		config.Parallel = runtime.GOMAXPROCS(0)
	}
	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Second
	}
	return &Simulator{config: config, logger: config.Logger.WithPrefix("simulator")}
}

// Run plays every match and returns the aggregated statistics. Match i is
// seeded from the configured seed and i alone, so results do not depend on
// scheduling.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if s.config.Games <= 0 {
		return nil, fmt.Errorf("games must be positive, got %d", s.config.Games)
	}
	for _, name := range []string{s.config.Red, s.config.Blue} {
		if _, err := bot.New(name, randutil.New(0), s.logger); err != nil {
			return nil, err
		}
	}

	results := make([]statistics.MatchResult, s.config.Games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Parallel)

	for i := range s.config.Games {
		seed := randutil.Derive(s.config.Seed, i)
		g.Go(func() error {
			result, err := s.playMatch(ctx, seed)
			if err != nil {
				return fmt.Errorf("match %d (seed %d): %w", i+1, seed, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, r := range results {
		stats.Add(r)
	}

	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	s.logger.Info("Simulation complete", "games", stats.Matches, "blue_wins", stats.BlueWins, "red_wins", stats.RedWins)
	return stats, nil
}

// playMatch runs a single match with timeout protection
func (s *Simulator) playMatch(ctx context.Context, seed int64) (statistics.MatchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	rng := randutil.New(seed)
	red, err := bot.New(s.config.Red, rng, s.config.Logger)
	if err != nil {
		return statistics.MatchResult{}, err
	}
	blue, err := bot.New(s.config.Blue, rng, s.config.Logger)
	if err != nil {
		return statistics.MatchResult{}, err
	}

	clock := quartz.NewReal()
	m, err := match.New(match.Config{
		Red:    match.NewBotController(red, clock, 0, s.config.Logger),
		Blue:   match.NewBotController(blue, clock, 0, s.config.Logger),
		Sink:   match.DiscardSink{},
		RNG:    rng,
		Logger: s.config.Logger,
	})
	if err != nil {
		return statistics.MatchResult{}, err
	}

	res, err := m.Run(ctx)
	if err != nil {
		return statistics.MatchResult{}, err
	}
	if !res.Completed {
		return statistics.MatchResult{}, errors.New("match stopped before full time")
	}

	s.logger.Debug("Match finished", "seed", seed, "score", res.Score)
	return statistics.ResultOf(seed, res.Score, res.Events), nil
}

// PrintSummary writes a summary of simulation results
func PrintSummary(w io.Writer, stats *statistics.Statistics, red, blue string) {
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== FINAL RESULTS: blue %s-bot vs red %s-bot ===\n", blue, red)
	fmt.Fprintf(w, "Matches played: %d\n", stats.Matches)
	fmt.Fprintf(w, "Blue wins: %d (%.1f%%)\n", stats.BlueWins, stats.WinRate(game.Blue)*100)
	fmt.Fprintf(w, "Red wins: %d (%.1f%%)\n", stats.RedWins, stats.WinRate(game.Red)*100)
	fmt.Fprintf(w, "Draws: %d (%.1f%%)\n", stats.Draws, stats.WinRate(game.NoTeam)*100)

	fmt.Fprintf(w, "\n=== GOAL DIFFERENCE (blue - red) ===\n")
	fmt.Fprintf(w, "Mean: %.4f goals/match\n", stats.Mean())
	fmt.Fprintf(w, "Median: %.4f\n", stats.Median())
	fmt.Fprintf(w, "Std Dev: %.4f\n", stats.StdDev())
	fmt.Fprintf(w, "Std Error: %.4f\n", stats.StdError())
	fmt.Fprintf(w, "95%% CI: [%.4f, %.4f]\n", low, high)
	fmt.Fprintf(w, "Percentiles: P5=%.1f, P25=%.1f, P75=%.1f, P95=%.1f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))

	fmt.Fprintf(w, "\n=== PLAY ANALYSIS ===\n")
	fmt.Fprintf(w, "Goals: %d blue, %d red (%.2f per match, max %d)\n",
		stats.BlueGoals, stats.RedGoals, stats.GoalsPerMatch(), stats.MaxGoals)
	fmt.Fprintf(w, "Shots: %d (%.1f%% converted)\n", stats.Shots, stats.ConversionRate()*100)
	fmt.Fprintf(w, "Passes: %d completed, %d intercepted (%.1f%%)\n",
		stats.Passes, stats.Interceptions, stats.InterceptionRate()*100)
}
