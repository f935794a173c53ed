// Package dispatch resolves a tool id to its implementation, runs it,
// and records the outcome. Tool bodies never crash the caller: errors
// and panics are contained here and converted into failure results.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/devbelt/toolbox-mcp/pkg/history"
	"github.com/devbelt/toolbox-mcp/pkg/models"
	"github.com/devbelt/toolbox-mcp/pkg/registry"
	"github.com/devbelt/toolbox-mcp/pkg/types"
	"github.com/rs/zerolog"
)

var (
	ErrUnknownTool = errors.New("unknown tool")
	ErrEmptyInput  = errors.New("input cannot be empty")
	ErrToolPanic   = errors.New("tool execution panicked")
)

// Result is the outcome of one invocation: either Output on success or
// Err plus an optional Suggestion on failure. It is produced once and
// never mutated.
type Result struct {
	OK         bool   `json:"ok"`
	Output     string `json:"output,omitempty"`
	Err        string `json:"error,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`

	cause error
}

// Cause reports the underlying error of a failure result, usable with
// errors.Is. Nil for success results.
func (r Result) Cause() error {
	return r.cause
}

func success(output string) Result {
	return Result{OK: true, Output: output}
}

func failure(err error, suggestion string) Result {
	return Result{Err: err.Error(), Suggestion: suggestion, cause: err}
}

type Shell struct {
	registry  *registry.Registry
	history   *history.Store
	logger    zerolog.Logger
	threshold int
}

type Option func(*Shell)

// WithOffloadThreshold sets the input size in bytes at which execution
// moves off the calling goroutine (default types.OffloadThreshold).
func WithOffloadThreshold(n int) Option {
	return func(s *Shell) {
		if n > 0 {
			s.threshold = n
		}
	}
}

func New(reg *registry.Registry, hist *history.Store, logger zerolog.Logger, opts ...Option) *Shell {
	s := &Shell{
		registry:  reg,
		history:   hist,
		logger:    logger.With().Str("component", "dispatch").Logger(),
		threshold: types.OffloadThreshold,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type execConfig struct {
	noHistory bool
}

type ExecOption func(*execConfig)

// WithoutHistory suppresses the history entry for this invocation, for
// tools handling sensitive input.
func WithoutHistory() ExecOption {
	return func(c *execConfig) {
		c.noHistory = true
	}
}

// Execute resolves toolID, runs its body with (input, opts) and returns
// the outcome. Inputs larger than the offload threshold run on a
// separate goroutine; the caller suspends until the result arrives or
// ctx is cancelled. Sequential calls from one caller observe results in
// call order; no ordering holds across tools executing concurrently.
//
// Cancellation is best-effort: a result produced after ctx is done is
// still recorded to history but not delivered.
func (s *Shell) Execute(ctx context.Context, toolID, input string, opts registry.Options, execOpts ...ExecOption) Result {
	var cfg execConfig
	for _, opt := range execOpts {
		opt(&cfg)
	}

	desc, err := s.registry.Lookup(toolID)
	if err != nil {
		// Registry misconfiguration surfaces as a user-visible failure,
		// with no history entry for an id that does not exist.
		s.logger.Warn().Str("tool", toolID).Msg("dispatch to unknown tool")
		return failure(
			fmt.Errorf("%w: %q", ErrUnknownTool, toolID),
			"use the catalog tool to list available tool ids",
		)
	}

	started := time.Now()

	if desc.RequiresInput && input == "" {
		res := failure(ErrEmptyInput, fmt.Sprintf("provide a non-empty input for %s", desc.DisplayName))
		s.record(ctx, toolID, input, res, started, cfg)
		return res
	}

	if len(input) >= s.threshold {
		return s.executeOffloaded(ctx, desc, toolID, input, opts, started, cfg)
	}

	res := s.invoke(desc, input, opts)
	s.record(ctx, toolID, input, res, started, cfg)
	return res
}

func (s *Shell) executeOffloaded(ctx context.Context, desc registry.Descriptor, toolID, input string, opts registry.Options, started time.Time, cfg execConfig) Result {
	s.logger.Debug().Str("tool", toolID).Int("bytes", len(input)).Msg("offloading large payload")

	resultCh := make(chan Result, 1)
	go func() {
		resultCh <- s.invoke(desc, input, opts)
	}()

	select {
	case res := <-resultCh:
		s.record(ctx, toolID, input, res, started, cfg)
		return res
	case <-ctx.Done():
		// The worker cannot be interrupted; once its result lands it is
		// still recorded, just never delivered to this caller.
		go func() {
			res := <-resultCh
			s.record(context.Background(), toolID, input, res, started, cfg)
		}()
		return failure(fmt.Errorf("execution cancelled: %w", ctx.Err()), "")
	}
}

// invoke runs the tool body, containing errors and panics.
func (s *Shell) invoke(desc registry.Descriptor, input string, opts registry.Options) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Str("tool", desc.ID).Msgf("tool body panicked: %v", r)
			res = failure(fmt.Errorf("%w: %v", ErrToolPanic, r), "")
		}
	}()

	output, err := desc.Run(input, opts)
	if err != nil {
		var toolErr *registry.ToolError
		if errors.As(err, &toolErr) {
			return failure(err, toolErr.Suggestion)
		}
		return failure(err, "")
	}
	return success(output)
}

func (s *Shell) record(ctx context.Context, toolID, input string, res Result, started time.Time, cfg execConfig) {
	if cfg.noHistory {
		return
	}

	entry := models.HistoryEntry{
		ToolID:     toolID,
		Input:      input,
		DurationMs: time.Since(started).Milliseconds(),
		Success:    res.OK,
	}
	if res.OK {
		entry.Output = res.Output
	} else {
		entry.ErrorMessage = res.Err
	}
	s.history.Append(ctx, entry)
}
