package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/fathomcode/fathom/internal/engine"
	"github.com/fathomcode/fathom/internal/output"
	"github.com/fathomcode/fathom/internal/progress"
	"github.com/fathomcode/fathom/pkg/config"
)

var (
	version = "dev"
	commit  = "none"    //nolint:unused // set via ldflags at build time
	date    = "unknown" //nolint:unused // set via ldflags at build time
)

func main() {
	app := &cli.App{
		Name:     "fathom",
		Usage:    "Code quality and understandability metrics",
		Version:  version,
		Metadata: make(map[string]interface{}),
		Description: `Fathom analyzes a codebase and reports language composition, line
breakdown, cyclomatic complexity, duplication, maintainability,
technical debt, and a composite understanding score.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (TOML, YAML, or JSON)",
				EnvVars: []string{"FATHOM_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "pprof",
				Usage: "Enable pprof profiling and write to specified prefix (creates <prefix>.cpu.pprof and <prefix>.mem.pprof)",
			},
		},
		Before: func(c *cli.Context) error {
			if pprofPrefix := c.String("pprof"); pprofPrefix != "" {
				cpuFile, err := os.Create(pprofPrefix + ".cpu.pprof")
				if err != nil {
					return fmt.Errorf("failed to create CPU profile: %w", err)
				}
				if err := pprof.StartCPUProfile(cpuFile); err != nil {
					cpuFile.Close()
					return fmt.Errorf("failed to start CPU profile: %w", err)
				}
				c.App.Metadata["pprofCPU"] = cpuFile
			}
			return nil
		},
		After: func(c *cli.Context) error {
			if pprofPrefix := c.String("pprof"); pprofPrefix != "" {
				pprof.StopCPUProfile()
				if cpuFile, ok := c.App.Metadata["pprofCPU"].(*os.File); ok {
					cpuFile.Close()
					color.Green("CPU profile written to %s.cpu.pprof", pprofPrefix)
				}

				memFile, err := os.Create(pprofPrefix + ".mem.pprof")
				if err != nil {
					return fmt.Errorf("failed to create memory profile: %w", err)
				}
				defer memFile.Close()

				runtime.GC() // Get up-to-date statistics
				if err := pprof.WriteHeapProfile(memFile); err != nil {
					return fmt.Errorf("failed to write memory profile: %w", err)
				}
				color.Green("Memory profile written to %s.mem.pprof", pprofPrefix)
			}
			return nil
		},
		Commands: []*cli.Command{
			analyzeCmd(),
		},
		DefaultCommand: "analyze",
	}

	if err := app.Run(os.Args); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func analyzeCmd() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Aliases:   []string{"a"},
		Usage:     "Analyze a source tree and report quality metrics",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "text",
				Usage:   "Output format: text, json, markdown",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write output to file",
			},
			&cli.StringFlag{
				Name:    "language",
				Aliases: []string{"l"},
				Usage:   "Override the detected primary language",
			},
			&cli.BoolFlag{
				Name:  "no-tools",
				Usage: "Skip external analysis tools, use built-in tiers only",
			},
			&cli.IntFlag{
				Name:  "tool-timeout",
				Usage: "Per-tool timeout in seconds",
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Aliases: []string{"q"},
				Usage: "Suppress warnings and progress output",
			},
		},
		Action: runAnalyze,
	}
}

func runAnalyze(c *cli.Context) error {
	root := "."
	if c.Args().Len() > 0 {
		root = c.Args().First()
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	cfg := config.LoadOrDefault()
	if path := c.String("config"); path != "" {
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}
	if c.Bool("no-tools") {
		cfg.Tools.Enabled = false
	}
	if t := c.Int("tool-timeout"); t > 0 {
		cfg.Tools.TimeoutSeconds = t
	}

	quiet := c.Bool("quiet")

	eng := engine.New(cfg)
	var tracker *progress.Tracker
	if !quiet {
		eng.Warnf = func(format string, args ...any) {
			color.New(color.FgYellow).Fprintf(os.Stderr, format+"\n", args...)
		}
		tracker = progress.NewTracker("analyzing", len(engine.Stages))
		eng.Progress = func(stage string) {
			tracker.Describe(stage)
			tracker.Tick()
		}
	}
	if c.String("language") != "" {
		eng.LanguageHint = c.String("language")
	}

	result, err := eng.Analyze(c.Context, root)
	if err != nil {
		if tracker != nil {
			tracker.FinishError(err)
		}
		return err
	}
	if tracker != nil {
		tracker.FinishSuccess()
	}

	formatter, err := output.NewFormatter(
		output.ParseFormat(c.String("format")),
		c.String("output"),
		cfg.Output.Color,
	)
	if err != nil {
		return err
	}
	defer formatter.Close()

	return formatter.Output(output.NewReport(result))
}
