package cmd

import (
	"fmt"

	"github.com/minepkg/modio/internals/cmdlog"
	"github.com/minepkg/modio/internals/commands"
	"github.com/minepkg/modio/internals/utils"
	"github.com/spf13/cobra"
)

func init() {
	runner := &uninstallRunner{}
	cmd := commands.New(&cobra.Command{
		Use:     "uninstall <mod id>...",
		Aliases: []string{"remove", "rm"},
		Short:   "Removes installed mods",
		Args:    cobra.MinimumNArgs(1),
	}, runner)

	cmd.Flags().BoolVarP(&runner.yes, "yes", "y", false, "Do not ask for confirmation")

	rootCmd.AddCommand(cmd.Command)
}

type uninstallRunner struct {
	yes bool
}

func (u *uninstallRunner) RunE(cmd *cobra.Command, args []string) error {
	ids, err := parseModIDs(args)
	if err != nil {
		return err
	}

	instance, err := root.Instance()
	if err != nil {
		return err
	}
	defer instance.Shutdown()

	if !u.yes {
		ok, err := utils.Confirm(fmt.Sprintf("Uninstall %d mods?", len(ids)))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborting")
			return nil
		}
	}

	for _, id := range ids {
		if err := instance.UninstallMod(id); err != nil {
			return err
		}
		cmdlog.Success(fmt.Sprintf("Uninstalled %d", id))
	}
	return nil
}
