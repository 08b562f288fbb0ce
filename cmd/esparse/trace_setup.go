package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"esparse/internal/trace"
)

// setupTracing reads the trace flags and attaches a tracer to the command
// context. The returned cleanup stops the heartbeat and flushes the tracer;
// after a failed command a ring tracer also dumps its events to stderr.
func setupTracing(cmd *cobra.Command) (func(error), error) {
	flags := cmd.Root().PersistentFlags()

	traceOutput, err := flags.GetString("trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := flags.GetString("trace-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	modeStr, err := flags.GetString("trace-mode")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	ringSize, err := flags.GetInt("trace-ring-size")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}
	heartbeatInterval, err := flags.GetDuration("trace-heartbeat")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-heartbeat flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace level: %w", err)
	}
	// --trace without a level means phase spans.
	if level == trace.LevelOff && traceOutput != "" {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func(error) {}, nil
	}

	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace mode: %w", err)
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		OutputPath: traceOutput,
		RingSize:   ringSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	ctx := trace.WithTracer(cmd.Context(), tracer)
	cmd.SetContext(ctx)

	heartbeat := trace.StartHeartbeat(ctx, tracer, heartbeatInterval)

	return func(cmdErr error) {
		heartbeat.Stop()
		if cmdErr != nil {
			dumpRing(cmd, tracer)
		}
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}, nil
}

// dumpRing writes the events kept by a ring tracer, alone or inside a
// multi tracer.
func dumpRing(cmd *cobra.Command, t trace.Tracer) {
	var ring *trace.RingTracer
	switch t := t.(type) {
	case *trace.RingTracer:
		ring = t
	case *trace.MultiTracer:
		ring = t.Ring()
	}
	if ring == nil {
		return
	}
	if n := ring.Dropped(); n > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "trace: last events before the failure (%d older dropped):\n", n)
	} else {
		fmt.Fprintln(cmd.ErrOrStderr(), "trace: last events before the failure:")
	}
	if err := ring.Dump(cmd.ErrOrStderr(), trace.FormatText); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "trace: dump error: %v\n", err)
	}
}
