package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
)

// Exit codes.
const (
	exitOK          = 0
	exitError       = 1
	exitPolicyFails = 2
)

var (
	// errPolicyFailed is returned by scan when the policy's enforcement
	// block is triggered by the findings.
	errPolicyFailed = errors.New("policy enforcement failed")

	// errUnhealthy is returned by doctor when any check failed. The
	// diagnostics themselves have already been printed.
	errUnhealthy = errors.New("environment unhealthy")
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the root command and maps its error to a process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errPolicyFailed):
		fmt.Fprintln(stderr, err)
		return exitPolicyFails
	case errors.Is(err, errUnhealthy):
		return exitError
	default:
		fmt.Fprintln(stderr, "Error:", err)
		return exitError
	}
}

// newLogger returns the console logger used for diagnostics on w. Findings
// never go through it.
func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}).
		Level(lvl).
		With().Timestamp().
		Logger()
}
