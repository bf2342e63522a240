package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/BurntSushi/toml"
	"github.com/mattn/go-colorable"
	"github.com/spf13/cobra"

	"github.com/alex65536/randset/internal/bench"
	"github.com/alex65536/randset/internal/util/slogx"
	"github.com/alex65536/randset/internal/util/style"
)

var (
	stdout = colorable.NewColorableStdout()
	stderr = colorable.NewColorableStderr()
)

var (
	aOptsPath string
	aQuiet    bool
	aVerbose  bool
)

var cmd = cobra.Command{
	Use:   "randbench",
	Short: "Benchmarks the randset container under a concurrent workload",
	Long: `Randbench runs a randomized add/del/rand workload against a single randset
instance shared between workers behind a mutex, and reports throughput. The
workload also verifies that every sampled element is a member of the set.
`,
	Version: "0.1.0",
	Args:    cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, _args []string) error {
		var opts Options
		if aOptsPath != "" {
			data, err := os.ReadFile(aOptsPath)
			if err != nil {
				return fmt.Errorf("read options file: %w", err)
			}
			if err := toml.Unmarshal(data, &opts); err != nil {
				return fmt.Errorf("unmarshal options file: %w", err)
			}
		}
		o := opts.Bench()
		if err := o.Validate(); err != nil {
			return fmt.Errorf("bad options: %w", err)
		}
		o.FillDefaults()

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		log := slogx.DiscardLogger()
		if aVerbose {
			log = slog.Default()
		}

		d := newDisplay(stdout, o.Ops, aQuiet)
		res, err := bench.Run(ctx, o, bench.Config{
			Log:     log,
			Watcher: func(s bench.Status) { d.Show(s) },
		})
		if err != nil {
			if errors.Is(err, context.Canceled) {
				fmt.Fprintln(stderr, style.Warn.Stderr("interrupted"))
				return nil
			}
			return err
		}
		d.Final(res)
		return nil
	},
}

func main() {
	cmd.SetOutput(stdout)
	cmd.SetErr(stderr)
	cmd.SetErrPrefix(style.Err.Stderr("error:"))
	cmd.Flags().StringVarP(
		&aOptsPath, "options", "o", "",
		"options file")
	cmd.Flags().BoolVarP(
		&aQuiet, "quiet", "q", false,
		"do not report progress")
	cmd.Flags().BoolVarP(
		&aVerbose, "verbose", "v", false,
		"log workload events")
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
