package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/passandshoot/cmd/passandshoot/shared"
	"github.com/lox/passandshoot/internal/bot"
	"github.com/lox/passandshoot/internal/config"
	"github.com/lox/passandshoot/internal/display"
	"github.com/lox/passandshoot/internal/game"
	"github.com/lox/passandshoot/internal/match"
	"github.com/lox/passandshoot/internal/randutil"
	"github.com/lox/passandshoot/internal/tui"
)

type PlayCmd struct {
	Config    string         `kong:"default='passandshoot.hcl',help='HCL configuration file (defaults apply when missing)'"`
	HumanTeam string         `kong:"name='human-team',help='Team you control (B or R)'"`
	Seed      int64          `kong:"help='Seed for a reproducible match (0 for random)'"`
	Opponent  string         `kong:"help='Computer policy (forward|random)'"`
	Delay     *time.Duration `kong:"help='Pause before each computer move'"`
	Watch     bool           `kong:"help='Let the computer play both teams'"`
	TUI       bool           `kong:"name='tui',help='Use the full-screen interface'"`
	NoColor   bool           `kong:"help='Disable colour output'"`
	LogLevel  string         `kong:"help='Log level (debug|info|warn|error)'"`
	LogFile   string         `kong:"help='Write logs to this file'"`
}

func (c *PlayCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	c.applyOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, closer, err := shared.SetupFileLogger(cfg.UI.LogFile, cfg.UI.LogLevel)
	if err != nil {
		return err
	}
	defer func() {
		if err := closer.Close(); err != nil {
			log.Error("Failed to close log file", "error", err)
		}
	}()

	ctx := shared.SetupSignalHandler(logger)

	seed := cfg.Game.Seed
	if seed == 0 {
		if seed, err = randutil.NewSeed(); err != nil {
			return err
		}
	}
	rng := randutil.New(seed)
	logger.Info("Starting match", "seed", seed, "human", cfg.HumanTeam(), "opponent", cfg.Opponent.Policy, "watch", c.Watch)

	clock := quartz.NewReal()
	newBot := func() (match.Controller, error) {
		policy, err := bot.New(cfg.Opponent.Policy, rng, logger)
		if err != nil {
			return nil, err
		}
		return match.NewBotController(policy, clock, cfg.OpponentDelay(), logger), nil
	}

	seats := func(human match.Controller) (red, blue match.Controller, err error) {
		opponent, err := newBot()
		if err != nil {
			return nil, nil, err
		}
		if c.Watch {
			if human, err = newBot(); err != nil {
				return nil, nil, err
			}
		}
		if cfg.HumanTeam() == game.Red {
			return human, opponent, nil
		}
		return opponent, human, nil
	}

	mcfg := match.Config{
		RNG:        rng,
		Logger:     logger,
		EventsTail: cfg.UI.EventsTail,
	}

	if cfg.UI.TUI {
		return runTUI(ctx, mcfg, seats, cfg.UseColor(), logger)
	}

	renderer := display.NewTextRenderer(os.Stdout, cfg.UseColor())
	mcfg.Sink = match.NewTextSink(os.Stdout, renderer)
	if mcfg.Red, mcfg.Blue, err = seats(match.NewLineController(os.Stdin, os.Stdout)); err != nil {
		return err
	}

	m, err := match.New(mcfg)
	if err != nil {
		return err
	}
	res, err := m.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	if err != nil {
		return err
	}
	logger.Info("Match over", "score", res.Score, "completed", res.Completed, "seed", seed)
	return nil
}

func (c *PlayCmd) applyOverrides(cfg *config.Config) {
	if c.HumanTeam != "" {
		cfg.Game.HumanTeam = c.HumanTeam
	}
	if c.Seed != 0 {
		cfg.Game.Seed = c.Seed
	}
	if c.Opponent != "" {
		cfg.Opponent.Policy = c.Opponent
	}
	if c.Delay != nil {
		cfg.Opponent.DelayMS = int(c.Delay.Milliseconds())
	}
	if c.TUI {
		cfg.UI.TUI = true
	}
	if c.NoColor {
		color := false
		cfg.UI.Color = &color
	}
	if c.LogLevel != "" {
		cfg.UI.LogLevel = c.LogLevel
	}
	if c.LogFile != "" {
		cfg.UI.LogFile = c.LogFile
	}
}

func runTUI(ctx context.Context, mcfg match.Config, seats func(match.Controller) (match.Controller, match.Controller, error), color bool, logger *log.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	renderer := display.NewTextRenderer(os.Stdout, color)
	model := tui.NewModel(renderer, logger)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.Attach(program)

	var err error
	mcfg.Sink = model.Sink()
	if mcfg.Red, mcfg.Blue, err = seats(model.Controller()); err != nil {
		return err
	}
	m, err := match.New(mcfg)
	if err != nil {
		return err
	}

	matchErr := make(chan error, 1)
	go func() {
		res, err := m.Run(ctx)
		if err == nil {
			summary := fmt.Sprintf("Match stopped at %s.", res.Score)
			if res.Completed {
				summary = fmt.Sprintf("Full time: %s.", res.Score)
			}
			model.Finish(summary)
		}
		matchErr <- err
	}()

	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	cancel()
	if err := <-matchErr; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
