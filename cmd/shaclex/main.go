// Package main provides the shaclex binary entry point.
// Shaclex translates RDF shape schemas between SHACL (Turtle) and
// ShEx (compact syntax) in either direction.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/shaclex/config"
	"github.com/c360studio/shaclex/translate"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "shaclex"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   appName,
		Short: "SHACL / ShEx schema translator",
		Long: `Shaclex converts RDF shape-constraint schemas between SHACL and ShEx.

It accepts a schema in either language, builds an in-memory model,
converts it to the other formalism and emits the result as text:

- SHACL shapes graphs are read and written as Turtle (.ttl)
- ShEx schemas are read and written as compact syntax (.shex)

Constructs that cannot be carried across (general regex patterns,
sh:ignoredProperties, ...) are dropped and reported as warnings.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logLevel)
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(translateCmd())
	cmd.AddCommand(batchCmd())
	cmd.AddCommand(versionCmd())
	return cmd
}

func setupLogging(level string) error {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return fmt.Errorf("unknown log level %q", level)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	return nil
}

func loadConfig() (*config.Config, error) {
	return config.NewLoader(slog.Default()).Load()
}

func translateCmd() *cobra.Command {
	var (
		direction string
		output    string
		shapeBase string
	)

	cmd := &cobra.Command{
		Use:   "translate <file>",
		Short: "Translate a single schema file",
		Long: `Translate one schema file to the other formalism.

The direction is inferred from the file extension (.ttl/.turtle reads
SHACL, .shex reads ShEx) unless --direction is given. The result is
written to stdout or to --output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if shapeBase != "" {
				cfg.Translate.ShapeBase = shapeBase
			}

			dir := translate.Direction(direction)
			if direction == "" {
				dir, err = translate.DetectDirection(args[0])
				if err != nil {
					return err
				}
			}

			app := NewApp(cfg)
			return app.TranslateFile(args[0], dir, output)
		},
	}

	cmd.Flags().StringVarP(&direction, "direction", "d", "", "Translation direction (shacl2shex or shex2shacl)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&shapeBase, "shape-base", "", "Namespace for minted SHACL shape IRIs")
	return cmd
}

func batchCmd() *cobra.Command {
	var (
		outputDir string
		patterns  []string
		watch     bool
	)

	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Translate every schema under a directory",
		Long: `Walk a directory tree and translate every file matching the configured
glob patterns. Each .ttl file produces a sibling .shex file and vice
versa. With --watch the command keeps running and re-translates files
as they change.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if outputDir != "" {
				cfg.Batch.OutputDir = outputDir
			}
			if len(patterns) > 0 {
				cfg.Batch.Patterns = patterns
			}

			app := NewApp(cfg)
			if err := app.RunBatch(cmd.Context(), args[0]); err != nil {
				return err
			}
			if watch {
				return app.Watch(cmd.Context(), args[0])
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for translated files (default: alongside inputs)")
	cmd.Flags().StringSliceVarP(&patterns, "pattern", "p", nil, "Glob patterns selecting input files")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep running and re-translate files on change")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s %s (built %s)\n", appName, Version, BuildTime)
		},
	}
}
