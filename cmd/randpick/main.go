package main

import (
	"bufio"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/spf13/cobra"

	"github.com/alex65536/randset"
	"github.com/alex65536/randset/internal/util/style"
)

var (
	stdout = colorable.NewColorableStdout()
	stderr = colorable.NewColorableStderr()
)

var (
	aCount  int
	aUnique bool
	aSeed   uint64
)

var cmd = cobra.Command{
	Use:   "randpick [file]",
	Short: "Picks uniformly random lines from the input",
	Long: `Randpick reads lines from a file (or from stdin, if no file is given), drops
duplicate lines and picks lines uniformly at random.
`,
	Version: "0.1.0",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if aCount <= 0 {
			return fmt.Errorf("non-positive count")
		}

		in := os.Stdin
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open: %w", err)
			}
			defer f.Close()
			in = f
		}

		set := randset.New[string]()
		if cmd.Flags().Lookup("seed").Changed {
			set = randset.NewWithSource[string](rand.NewPCG(aSeed, 0))
		}
		sc := bufio.NewScanner(in)
		sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
		for sc.Scan() {
			set.Add(sc.Text())
		}
		if err := sc.Err(); err != nil {
			return fmt.Errorf("read: %w", err)
		}
		if set.Empty() {
			return fmt.Errorf("no lines in the input")
		}
		if aUnique && aCount > set.Len() {
			return fmt.Errorf("only %v distinct lines for %v unique picks", set.Len(), aCount)
		}

		w := bufio.NewWriter(stdout)
		for range aCount {
			v, ok := set.Rand()
			if !ok {
				break
			}
			if aUnique {
				set.Del(v)
			}
			if _, err := fmt.Fprintln(w, v); err != nil {
				return fmt.Errorf("write: %w", err)
			}
		}
		if err := w.Flush(); err != nil {
			return fmt.Errorf("flush: %w", err)
		}
		return nil
	},
}

func main() {
	cmd.SetOutput(stdout)
	cmd.SetErr(stderr)
	cmd.SetErrPrefix(style.Err.Stderr("error:"))
	cmd.Flags().IntVarP(
		&aCount, "count", "n", 1,
		"number of lines to pick")
	cmd.Flags().BoolVarP(
		&aUnique, "unique", "u", false,
		"do not pick the same line twice")
	cmd.Flags().Uint64VarP(
		&aSeed, "seed", "s", 0,
		"seed for reproducible picks")
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
