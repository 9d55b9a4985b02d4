// Command axo is the AXO interpreter's command-line entry point: run a
// source file given one positional argument, or start a line-buffered REPL
// given none (spec.md §6). Grounded in the teacher's cmd/able/main.go
// os.Exit(run(args)) shape, trimmed to AXO's much smaller CLI surface.
package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"

	"axo/pkg/config"
	"axo/pkg/diagnostic"
	"axo/pkg/interpreter"
	"axo/pkg/runtime"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	logger := newLogger()
	slog.SetDefault(logger)

	if len(args) > 1 {
		printUsage()
		return 1
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	manifest, err := config.Load(cwd)
	if err != nil {
		logger.Warn("failed to load axo.yaml", "error", err)
		manifest = &config.Manifest{}
	}

	if len(args) == 1 {
		return runFile(args[0], logger)
	}

	entry := strings.TrimSpace(manifest.Entry)
	if entry != "" {
		return runFile(entry, logger)
	}
	return runREPL(logger)
}

func runFile(path string, logger *slog.Logger) int {
	logger.Debug("loading entry module", "path", path)
	ip := interpreter.New(os.Stdout)
	if err := ip.RunFile(path); err != nil {
		src := ""
		if data, rerr := os.ReadFile(path); rerr == nil {
			src = string(data)
		}
		reportFatal(err, src)
		return 1
	}
	return 0
}

// runREPL implements main.cpp's buffering loop verbatim in behavior
// (SPEC_FULL.md SUPPLEMENTED FEATURES): accumulate lines until one contains
// `;` or `}`, then parse+execute that buffer; errors print without exiting;
// `exit` quits.
func runREPL(logger *slog.Logger) int {
	ip := interpreter.New(os.Stdout)
	env := runtime.NewEnvironment(nil)
	cwd, _ := os.Getwd()

	scanner := bufio.NewScanner(os.Stdin)
	var buf strings.Builder

	prompt := func() {
		if buf.Len() == 0 {
			fmt.Fprint(os.Stdout, "axo> ")
		} else {
			fmt.Fprint(os.Stdout, "...> ")
		}
	}

	prompt()
	for scanner.Scan() {
		line := scanner.Text()
		if buf.Len() == 0 && strings.TrimSpace(line) == "exit" {
			return 0
		}
		buf.WriteString(line)
		buf.WriteString("\n")

		if strings.ContainsAny(line, ";}") {
			src := buf.String()
			buf.Reset()
			result, err := ip.RunSource(src, env, cwd)
			if err != nil {
				reportFatal(err, src)
			} else if _, isUnit := result.(runtime.UnitValue); !isUnit {
				fmt.Fprintln(os.Stdout, ip.CanonicalString(result))
			}
		}
		prompt()
	}
	fmt.Fprintln(os.Stdout)
	return 0
}

func reportFatal(err error, src string) {
	msg := diagnostic.Format(err, src)
	lines := strings.SplitN(msg, "\n", 2)
	headerColor := color.New(color.FgRed, color.Bold)
	headerColor.Fprintln(os.Stderr, lines[0])
	if len(lines) == 2 {
		locColor := color.New(color.FgCyan)
		locColor.Fprintln(os.Stderr, "--> "+lines[1])
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  axo <file.axo>")
	fmt.Fprintln(os.Stderr, "  axo            (starts a REPL)")
}

func newLogger() *slog.Logger {
	noColor := !isatty.IsTerminal(os.Stderr.Fd())
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelWarn,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	}))
}
