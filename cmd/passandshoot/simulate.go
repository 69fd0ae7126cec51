package main

import (
	"fmt"
	"os"
	"time"

	"github.com/lox/passandshoot/cmd/passandshoot/shared"
	"github.com/lox/passandshoot/internal/randutil"
	"github.com/lox/passandshoot/internal/simulator"
)

type SimulateCmd struct {
	Games    int           `kong:"default='1000',help='Number of matches to play'"`
	Seed     int64         `kong:"help='Seed for deterministic runs (0 for random)'"`
	Parallel int           `kong:"default='4',help='Matches played concurrently'"`
	Red      string        `kong:"default='forward',enum='forward,random',help='Policy playing red'"`
	Blue     string        `kong:"default='forward',enum='forward,random',help='Policy playing blue'"`
	Timeout  time.Duration `kong:"default='5s',help='Timeout for a single match'"`
	LogLevel string        `kong:"default='warn',enum='debug,info,warn,error',help='Log level'"`
}

func (c *SimulateCmd) Run() error {
	logger, err := shared.SetupLogger(os.Stderr, c.LogLevel)
	if err != nil {
		return err
	}
	ctx := shared.SetupSignalHandler(logger)

	seed := c.Seed
	if seed == 0 {
		if seed, err = randutil.NewSeed(); err != nil {
			return err
		}
	}

	sim := simulator.New(simulator.Config{
		Games:    c.Games,
		Red:      c.Red,
		Blue:     c.Blue,
		Seed:     seed,
		Parallel: c.Parallel,
		Timeout:  c.Timeout,
		Logger:   logger,
	})

	start := time.Now()
	stats, err := sim.Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	simulator.PrintSummary(os.Stdout, stats, c.Red, c.Blue)
	fmt.Printf("\nSeed: %d (%s)\n", seed, time.Since(start).Round(time.Millisecond))
	return nil
}
