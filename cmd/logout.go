package cmd

import (
	"github.com/minepkg/modio/internals/cmdlog"
	"github.com/minepkg/modio/internals/commands"
	"github.com/spf13/cobra"
)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:     "logout",
		Aliases: []string{"signout"},
		Short:   "Forget the stored mod.io session",
		Args:    cobra.ExactArgs(0),
	}, &logoutRunner{})

	rootCmd.AddCommand(cmd.Command)
}

type logoutRunner struct{}

func (l *logoutRunner) RunE(cmd *cobra.Command, args []string) error {
	instance, err := root.Instance()
	if err != nil {
		return err
	}
	defer instance.Shutdown()

	if !instance.IsLoggedIn() {
		cmdlog.Dim("You are not logged in")
		return nil
	}
	if err := instance.Logout(); err != nil {
		return err
	}
	cmdlog.Success("Logged out")
	return nil
}
