// Package commands wraps cobra commands so that returned errors are rendered
// as error boxes
package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Command is a cobra command with a Runner
type Command struct {
	*cobra.Command
	runner Runner
}

// Runner executes a command
type Runner interface {
	RunE(cmd *cobra.Command, args []string) error
}

// New attaches run to cmd. Errors returned by run are printed and exit with status 1
func New(cmd *cobra.Command, run Runner) *Command {
	build := &Command{
		cmd,
		run,
	}
	build.Command.Run = func(cmd *cobra.Command, args []string) {
		if err := run.RunE(cmd, args); err != nil {
			fmt.Fprintln(os.Stderr, Render(err))
			os.Exit(1)
		}
	}

	return build
}

// Render renders err for the terminal
func Render(err error) string {
	err = FromAPIError(err)
	var asCliErr *CliError
	if errors.As(err, &asCliErr) {
		return asCliErr.RichError() + "\n"
	}
	return ErrorBox(err.Error(), "")
}
