// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

// Command eclib inspects and exercises the erasure coding backends.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	cancel()

	if err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// exitError carries a non-zero exit status out of a command.
type exitError struct{ code int }

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func exitWith(code int) error {
	if code == 0 {
		return nil
	}
	return &exitError{code: code}
}

// env is shared by all subcommands.
type env struct {
	level string
	log   *zap.Logger
}

func newRootCmd() *cobra.Command {
	env := &env{log: zap.NewNop()}

	root := &cobra.Command{
		Use:           "eclib",
		Short:         "inspect and exercise erasure coding backends",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(env.level)
			if err != nil {
				return err
			}
			env.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = env.log.Sync()
		},
	}
	root.PersistentFlags().StringVar(&env.level, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(
		newListCmd(env),
		newCheckCmd(env),
		newVerifyCmd(env),
		newBenchCmd(env),
	)
	return root
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.Level.SetLevel(lvl)
	return cfg.Build()
}
