// Package style renders ANSI SGR escapes for terminal output. Styling is
// dropped when the stream is not a terminal or when NO_COLOR is set
// (https://no-color.org/).
package style

import (
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
)

var (
	noColor = os.Getenv("NO_COLOR") != ""

	isTTY      = isatty.IsTerminal(os.Stdout.Fd())
	isErrTTY   = isatty.IsTerminal(os.Stderr.Fd())
	isColor    = isTTY && !noColor
	isErrColor = isErrTTY && !noColor
)

func IsStdoutTTY() bool         { return isTTY }
func IsStderrTTY() bool         { return isErrTTY }
func StdoutSupportsColor() bool { return isColor }
func StderrSupportsColor() bool { return isErrColor }

// Style is a list of SGR attributes applied together.
type Style []int

var (
	Err  = Style{31, 1}
	Warn = Style{33, 1}
	Good = Style{32, 1}
	Bold = Style{1}
	Bar  = Style{44, 37, 1}
)

func (st Style) seq() string {
	var b strings.Builder
	_, _ = b.WriteString("\033[")
	for i, m := range st {
		if i != 0 {
			_ = b.WriteByte(';')
		}
		_, _ = b.WriteString(strconv.FormatInt(int64(m), 10))
	}
	_ = b.WriteByte('m')
	return b.String()
}

const reset = "\033[0m"

// Stdout wraps s in the style if stdout supports color.
func (st Style) Stdout(s string) string {
	if !isColor {
		return s
	}
	return st.seq() + s + reset
}

// Stderr wraps s in the style if stderr supports color.
func (st Style) Stderr(s string) string {
	if !isErrColor {
		return s
	}
	return st.seq() + s + reset
}
