package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fabmenu/internal/cli"
	"github.com/matzehuels/fabmenu/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	os.Exit(exitCode(run(ctx)))
}

func run(ctx context.Context) error {
	var verbose, quiet bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log warnings and errors")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// cobra runs only one of PersistentPreRun and PersistentPreRunE, so the
	// level is set ahead of the root's own hook.
	attachLogger := root.PersistentPreRun
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		switch {
		case verbose:
			c.SetLogLevel(cli.LogDebug)
		case quiet:
			c.SetLogLevel(cli.LogWarn)
		}
		if attachLogger != nil {
			attachLogger(cmd, args)
		}
	}

	return root.ExecuteContext(ctx)
}

// exitCode prints err and maps it to a process exit status: 0 on success,
// 130 on interrupt, 2 for invalid input and 1 otherwise.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case stderrors.Is(err, context.Canceled):
		return 130
	}

	if code := errors.GetCode(err); code != "" {
		fmt.Fprintf(os.Stderr, "Error: %s [%s]\n", errors.UserMessage(err), code)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	if errors.IsInvalid(err) {
		return 2
	}
	return 1
}
