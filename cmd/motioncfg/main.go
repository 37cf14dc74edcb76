// Command motioncfg checks, inspects and edits motion controller
// configuration files.
//
// Usage:
//
//	motioncfg <command> [flags]
//
// Commands:
//
//	init     Write the wall plotter profile to a new file
//	check    Load a configuration and report every problem
//	dump     Regenerate a configuration as YAML, JSON or CBOR
//	get      Show one setting
//	set      Change settings and save the file
//	list     Show every setting as a $path=value line
//	shell    Interactive settings prompt
//	log      View, export or summarize a change log
//
// Examples:
//
//	# Validate a file
//	motioncfg check config.yaml
//
//	# Change a setting and record the change
//	motioncfg --change-log changes.clog set config.yaml /axes/x/steps_per_mm=80
//
//	# Show refused changes from a change log
//	motioncfg log view --rejected changes.clog
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/motion-firmware/motioncfg/cmd/motioncfg/commands"
	"github.com/motion-firmware/motioncfg/cmd/motioncfg/interactive"
	"github.com/motion-firmware/motioncfg/pkg/log"
)

type globalFlags struct {
	logLevel  string
	logFormat string
	changeLog string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var g globalFlags
	var env commands.Env
	var closeChanges func() error

	root := &cobra.Command{
		Use:           "motioncfg",
		Short:         "Motion controller configuration tool",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(g.logLevel, g.logFormat)
			if err != nil {
				return err
			}
			env.Logger = logger
			slog.SetDefault(logger)

			if g.changeLog == "" {
				return nil
			}
			fl, err := log.NewFileLogger(g.changeLog)
			if err != nil {
				return fmt.Errorf("failed to open change log: %w", err)
			}
			closeChanges = fl.Close
			env.Changes = log.Tee(fl, log.NewSlogAdapter(logger))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if closeChanges != nil {
				return closeChanges()
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	pf.StringVar(&g.logFormat, "log-format", "text", "Log format (text, json)")
	pf.StringVar(&g.changeLog, "change-log", "", "Append setting changes to this file")

	root.AddCommand(
		newInitCmd(),
		newCheckCmd(&env),
		newDumpCmd(&env),
		newGetCmd(&env),
		newSetCmd(&env),
		newListCmd(&env),
		newShellCmd(&env),
		newLogCmd(),
	)
	return root
}

func newLogger(level, format string) (*slog.Logger, error) {
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level: %s", level)
	}
	opts := &slog.HandlerOptions{Level: lv}
	switch strings.ToLower(format) {
	case "text":
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format: %s (must be text or json)", format)
	}
}

func newInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init <file>",
		Short: "Write the wall plotter profile to a new file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := commands.RunInit(args[0], force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	return cmd
}

func newCheckCmd(env *commands.Env) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Load a configuration and report every problem",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunCheck(args[0], *env, cmd.OutOrStdout())
		},
	}
}

func newDumpCmd(env *commands.Env) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Regenerate a configuration as YAML, JSON or CBOR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunDump(args[0], format, *env, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "Output format (yaml, json, cbor)")
	return cmd
}

func newGetCmd(env *commands.Env) *cobra.Command {
	return &cobra.Command{
		Use:   "get <file> <path>",
		Short: "Show one setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunGet(args[0], args[1], *env, cmd.OutOrStdout())
		},
	}
}

func newSetCmd(env *commands.Env) *cobra.Command {
	return &cobra.Command{
		Use:   "set <file> <path>=<value>...",
		Short: "Change settings and save the file",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunSet(args[0], args[1:], *env, cmd.OutOrStdout())
		},
	}
}

func newListCmd(env *commands.Env) *cobra.Command {
	return &cobra.Command{
		Use:   "list <file>",
		Short: "Show every setting as a $path=value line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunList(args[0], *env, cmd.OutOrStdout())
		},
	}
}

func newShellCmd(env *commands.Env) *cobra.Command {
	return &cobra.Command{
		Use:   "shell <file>",
		Short: "Interactive settings prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, store, err := commands.Load(args[0], *env)
			if err != nil {
				return err
			}
			defer m.Close()

			sh, err := interactive.New(m, store, env.Logger)
			if err != nil {
				return err
			}
			sh.Run(cmd.Context())
			return nil
		},
	}
}

func newLogCmd() *cobra.Command {
	var opts commands.LogFilterOptions

	cmd := &cobra.Command{
		Use:   "log",
		Short: "View, export or summarize a change log",
	}
	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.Session, "session", "", "Filter by session ID")
	pf.StringVar(&opts.Source, "source", "", "Filter by source (file, runtime, snapshot)")
	pf.StringVar(&opts.PathPrefix, "path", "", "Filter by setting path prefix")
	pf.BoolVar(&opts.RejectedOnly, "rejected", false, "Show only refused changes")
	pf.StringVar(&opts.TimeStart, "time-start", "", "Filter by start time (RFC3339)")
	pf.StringVar(&opts.TimeEnd, "time-end", "", "Filter by end time (RFC3339)")

	var output string
	export := &cobra.Command{
		Use:   "export <file.clog>",
		Short: "Export events as JSON lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := opts.Filter()
			if err != nil {
				return err
			}
			return commands.RunExport(args[0], f, output, cmd.OutOrStdout())
		},
	}
	export.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "view <file.clog>",
			Short: "View events in human-readable form",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				f, err := opts.Filter()
				if err != nil {
					return err
				}
				return commands.RunView(args[0], f, cmd.OutOrStdout())
			},
		},
		export,
		&cobra.Command{
			Use:   "stats <file.clog>",
			Short: "Show statistics about a change log",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				f, err := opts.Filter()
				if err != nil {
					return err
				}
				return commands.RunStats(args[0], f, cmd.OutOrStdout())
			},
		},
	)
	return cmd
}
