package cmd

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/minepkg/modio/internals/cmdlog"
	"github.com/minepkg/modio/internals/commands"
	"github.com/minepkg/modio/pkg/sdk"
	"github.com/spf13/cobra"
)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:     "install",
		Aliases: []string{"i"},
		Short:   "Installs all downloaded mods",
		Args:    cobra.ExactArgs(0),
	}, &installRunner{})

	rootCmd.AddCommand(cmd.Command)
}

type installRunner struct{}

func (i *installRunner) RunE(cmd *cobra.Command, args []string) error {
	// creating the instance already installs everything that was downloaded.
	// mods that failed there are tried again
	instance, err := root.Instance()
	if err != nil {
		return err
	}
	defer instance.Shutdown()

	if err := installDownloaded(instance); err != nil {
		return err
	}
	cmdlog.Success(fmt.Sprintf("%d mods installed", len(instance.InstalledMods())))
	return nil
}

// installDownloaded installs all downloaded mods with a spinner
func installDownloaded(instance *sdk.Instance) error {
	downloaded := instance.DownloadedMods()
	if len(downloaded) == 0 {
		return nil
	}

	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond)
	s.Prefix = "  "
	s.Suffix = fmt.Sprintf("  Installing %d mods", len(downloaded))
	s.Start()
	progress := cmdlog.NewProgress(root.logger)
	err := instance.InstallDownloadedMods()
	s.Stop()
	if err != nil {
		return fmt.Errorf("could not install all mods: %w", err)
	}
	progress.Done(fmt.Sprintf("Installed %d mods", len(downloaded)))
	return nil
}
