package cmd

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/jwalton/gchalk"
	"github.com/minepkg/modio/internals/commands"
	"github.com/minepkg/modio/internals/utils"
	"github.com/minepkg/modio/pkg/sdk"
	"github.com/spf13/cobra"
)

func init() {
	runner := &outdatedRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "outdated",
		Short: "Lists installed mods that have a newer file",
		Args:  cobra.ExactArgs(0),
	}, runner)

	cmd.Flags().BoolVar(&runner.update, "update", false, "Download and install the updates")

	rootCmd.AddCommand(cmd.Command)
}

type outdatedRunner struct {
	update bool
}

func (o *outdatedRunner) RunE(cmd *cobra.Command, args []string) error {
	instance, err := root.Instance()
	if err != nil {
		return err
	}
	defer instance.Shutdown()

	installed := instance.InstalledMods()
	if len(installed) == 0 {
		fmt.Println("No mods installed")
		return nil
	}

	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond)
	s.Prefix = "  "
	s.Suffix = fmt.Sprintf("  Checking %d mods for updates", len(installed))
	s.Start()

	var res sdk.Response
	var updates []sdk.Update
	instance.CheckForUpdates(func(r sdk.Response, u []sdk.Update) {
		res = r
		updates = u
	})
	await(instance)
	s.Stop()
	if res.Err != nil {
		return res.Err
	}

	if len(updates) == 0 {
		fmt.Println(checkMark.String() + " All mods are up to date")
		return nil
	}

	rows := [][]string{{"ID", "Installed", "Latest", "Released"}}
	ids := make([]uint32, len(updates))
	for i, update := range updates {
		ids[i] = update.Installed.ModID
		rows = append(rows, []string{
			fmt.Sprint(update.Installed.ModID),
			gchalk.Dim(utils.PrettyVersion(update.Installed.Modfile.Version)),
			gchalk.Bold(utils.PrettyVersion(update.Latest.Version)),
			utils.HumanDate(update.Latest.DateAdded),
		})
	}
	fmt.Println(commands.Table(rows))

	if !o.update {
		fmt.Println(gchalk.Gray("\nRun \"modio outdated --update\" to update them"))
		return nil
	}

	results, err := downloadMods(instance, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if code := results[id]; code != 200 {
			return fmt.Errorf("could not download update of %d %s", id, describeCode(code))
		}
	}
	return installDownloaded(instance)
}
