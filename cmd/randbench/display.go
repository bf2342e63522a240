package main

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/alex65536/randset/internal/bench"
	"github.com/alex65536/randset/internal/util/human"
	"github.com/alex65536/randset/internal/util/style"
)

var progressChars = []rune{' ', '▏', '▎', '▍', '▌', '▋', '▊', '▉', '█'}

func formatProgressBar(size int, completed, total int64) string {
	var b strings.Builder
	syms := size * 8
	if total != 0 {
		syms = int(math.Round(float64(size*8) * float64(completed) / float64(total)))
	}
	if !style.StdoutSupportsColor() {
		_ = b.WriteByte('[')
	}
	for range size {
		take := min(syms, 8)
		syms -= take
		_, _ = b.WriteRune(progressChars[take])
	}
	if !style.StdoutSupportsColor() {
		_ = b.WriteByte(']')
	}
	return style.Bar.Stdout(b.String())
}

type display struct {
	mu    sync.Mutex
	out   *bufio.Writer
	start time.Time
	total int64
	quiet bool
	fancy bool
	dirty bool
}

func newDisplay(out io.Writer, total int64, quiet bool) *display {
	return &display{
		out:   bufio.NewWriter(out),
		start: time.Now(),
		total: total,
		quiet: quiet,
		fancy: style.IsStdoutTTY(),
	}
}

func (d *display) Show(s bench.Status) {
	if d.quiet {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	ratio := 1.0
	if d.total != 0 {
		ratio = float64(s.Done) / float64(d.total)
	}
	if d.fancy {
		_, _ = fmt.Fprintf(
			d.out,
			"\r\033[2K%v %5.1f%% (%v/%v ops, size %v)",
			formatProgressBar(40, s.Done, d.total),
			ratio*100.0,
			human.Count(s.Done),
			human.Count(d.total),
			human.Count(int64(s.Size)),
		)
		d.dirty = true
	} else {
		_, _ = fmt.Fprintf(
			d.out,
			"ops: %v/%v, size: %v\n",
			human.Count(s.Done),
			human.Count(d.total),
			human.Count(int64(s.Size)),
		)
	}
	_ = d.out.Flush()
}

func (d *display) Final(r bench.Result) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.dirty {
		_, _ = fmt.Fprint(d.out, "\r\033[2K")
		d.dirty = false
	}
	elapsed := r.Elapsed.Round(time.Millisecond)
	rate := 0.0
	if r.Elapsed > 0 {
		rate = float64(r.Done) / r.Elapsed.Seconds()
	}
	_, _ = fmt.Fprintf(
		d.out,
		""+
			"Ops: %v in %v (%v)\n"+
			"Added: %v, Deleted: %v, Sampled: %v\n"+
			"Final size: %v\n",
		human.Count(r.Done),
		elapsed,
		style.Bold.Stdout(human.Rate(rate)),
		human.Count(r.Added),
		human.Count(r.Deleted),
		human.Count(r.Sampled),
		human.Count(int64(r.Size)),
	)
	_ = d.out.Flush()
}
