package cmd

import (
	"github.com/minepkg/modio/internals/cmdlog"
	"github.com/minepkg/modio/internals/commands"
	"github.com/minepkg/modio/internals/utils"
	"github.com/spf13/cobra"
)

func init() {
	runner := &clearCacheRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "clear-cache",
		Short: "Removes all downloaded and installed mods",
		Args:  cobra.ExactArgs(0),
	}, runner)

	cmd.Flags().BoolVarP(&runner.yes, "yes", "y", false, "Do not ask for confirmation")

	rootCmd.AddCommand(cmd.Command)
}

type clearCacheRunner struct {
	yes bool
}

func (c *clearCacheRunner) RunE(cmd *cobra.Command, args []string) error {
	instance, err := root.Instance()
	if err != nil {
		return err
	}
	defer instance.Shutdown()

	if !c.yes {
		ok, err := utils.Confirm("Remove all downloaded and installed mods?")
		if err != nil || !ok {
			return err
		}
	}

	if err := instance.ClearMods(); err != nil {
		return err
	}
	cmdlog.Success("Removed all mods")
	return nil
}
