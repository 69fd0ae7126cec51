package match

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/passandshoot/internal/bot"
	"github.com/lox/passandshoot/internal/command"
	"github.com/lox/passandshoot/internal/game"
)

// Controller supplies the commands for one team. It does not care whether the
// commands come from a keyboard or a script.
type Controller interface {
	NextCommand(ctx context.Context, view game.View) (command.Command, error)
}

// LineController reads one command per line from an input stream.
type LineController struct {
	prompt io.Writer
	lines  chan string
	errs   chan error
	start  sync.Once
	in     io.Reader
}

// NewLineController reads commands from in and writes a prompt to prompt
// before each read. prompt may be nil.
func NewLineController(in io.Reader, prompt io.Writer) *LineController {
	return &LineController{
		in:     in,
		prompt: prompt,
		lines:  make(chan string),
		errs:   make(chan error, 1),
	}
}

// NextCommand blocks until a line is read, the input ends (io.EOF) or ctx is
// done.
func (c *LineController) NextCommand(ctx context.Context, _ game.View) (command.Command, error) {
	c.start.Do(func() { go c.scan() })

	if c.prompt != nil {
		_, _ = fmt.Fprint(c.prompt, "\nEnter command: ")
	}

	select {
	case line := <-c.lines:
		return command.Parse(line), nil
	case err := <-c.errs:
		return command.Command{}, err
	case <-ctx.Done():
		return command.Command{}, ctx.Err()
	}
}

func (c *LineController) scan() {
	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		c.lines <- scanner.Text()
	}
	if err := scanner.Err(); err != nil {
		c.errs <- fmt.Errorf("read command: %w", err)
		return
	}
	c.errs <- io.EOF
}

// BotController plays a team with a scripted policy. Each decision is paced
// by a short delay so a human opponent can follow the match.
type BotController struct {
	policy bot.Policy
	clock  quartz.Clock
	delay  time.Duration
	logger *log.Logger
}

// NewBotController wraps a policy. A zero delay decides immediately.
func NewBotController(policy bot.Policy, clock quartz.Clock, delay time.Duration, logger *log.Logger) *BotController {
	return &BotController{
		policy: policy,
		clock:  clock,
		delay:  delay,
		logger: logger.WithPrefix("bot-controller"),
	}
}

func (c *BotController) NextCommand(ctx context.Context, view game.View) (command.Command, error) {
	if err := ctx.Err(); err != nil {
		return command.Command{}, err
	}
	if c.delay > 0 {
		thinking := make(chan struct{})
		timer := c.clock.AfterFunc(c.delay, func() {
			close(thinking)
		}, "bot", "think")
		defer timer.Stop()

		select {
		case <-thinking:
		case <-ctx.Done():
			return command.Command{}, ctx.Err()
		}
	}

	cmd := c.policy.Decide(view)
	c.logger.Debug("bot decided", "holder", view.Holder.ID, "command", cmd)
	return cmd, nil
}
