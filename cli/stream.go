package cli

import (
	"bufio"
	"fmt"
	"io"
	"sync"

	"github.com/compozy/toolkit/pkg/config"
	"github.com/compozy/toolkit/pkg/timer"
	"github.com/spf13/cobra"
)

func StreamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stream",
		Short: "Rate-limit lines read from stdin",
	}
	cmd.AddCommand(streamDebounceCmd(), streamThrottleCmd())
	return cmd
}

// lineWriter serializes writes from timer goroutines.
type lineWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lineWriter) write(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, line)
}

// seqLine numbers input lines so the command can wait for the last one.
type seqLine struct {
	seq  int
	text string
}

func streamDebounceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debounce",
		Short: "Print a line once input has been quiet for the debounce wait",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := applyTimerFlags(cmd, config.FromContext(ctx).Timer)
			out := &lineWriter{w: cmd.OutOrStdout()}
			var (
				mu       sync.Mutex
				firedSeq int
			)
			fired := make(chan struct{}, 1)
			d := timer.DebouncerFromConfig(&cfg, func(l seqLine) {
				out.write(l.text)
				mu.Lock()
				firedSeq = max(firedSeq, l.seq)
				mu.Unlock()
				select {
				case fired <- struct{}{}:
				default:
				}
			})
			defer d.Cancel()
			lastSeq := 0
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				lastSeq++
				d.Trigger(seqLine{seq: lastSeq, text: scanner.Text()})
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			for {
				mu.Lock()
				done := firedSeq >= lastSeq
				mu.Unlock()
				if done {
					return nil
				}
				select {
				case <-fired:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		},
	}
	addTimerFlags(cmd)
	return cmd
}

func streamThrottleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "throttle",
		Short: "Print at most one line per throttle interval",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := applyTimerFlags(cmd, config.FromContext(cmd.Context()).Timer)
			out := &lineWriter{w: cmd.OutOrStdout()}
			th := timer.ThrottlerFromConfig(&cfg, out.write)
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				th.Trigger(scanner.Text())
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			return nil
		},
	}
	addTimerFlags(cmd)
	return cmd
}

func addTimerFlags(cmd *cobra.Command) {
	cmd.Flags().Duration("wait", 0, "Debounce wait (overrides timer.debounce_wait)")
	cmd.Flags().Duration("max-wait", 0, "Debounce max wait (overrides timer.debounce_max_wait)")
	cmd.Flags().Duration("interval", 0, "Throttle interval (overrides timer.throttle_interval)")
}

func applyTimerFlags(cmd *cobra.Command, cfg config.TimerConfig) config.TimerConfig {
	if v, err := cmd.Flags().GetDuration("wait"); err == nil && cmd.Flags().Changed("wait") {
		cfg.DebounceWait = v
	}
	if v, err := cmd.Flags().GetDuration("max-wait"); err == nil && cmd.Flags().Changed("max-wait") {
		cfg.DebounceMaxWait = v
	}
	if v, err := cmd.Flags().GetDuration("interval"); err == nil && cmd.Flags().Changed("interval") {
		cfg.ThrottleInterval = v
	}
	return cfg
}
