package cmd

import (
	"fmt"

	"github.com/minepkg/modio/internals/cmdlog"
	"github.com/minepkg/modio/internals/commands"
	"github.com/minepkg/modio/pkg/sdk"
	"github.com/spf13/cobra"
)

var youtubeCmd = &cobra.Command{
	Use:   "youtube",
	Short: "Manage YouTube links of a mod",
}

func init() {
	addCmd := commands.New(&cobra.Command{
		Use:     "add <mod id> <url>...",
		Short:   "Adds YouTube links to a mod",
		Args:    cobra.MinimumNArgs(2),
		Example: "  modio youtube add 2231 https://www.youtube.com/watch?v=dQw4w9WgXcQ",
	}, &youtubeRunner{remove: false})

	removeCmd := commands.New(&cobra.Command{
		Use:     "remove <mod id> <url>...",
		Aliases: []string{"rm"},
		Short:   "Removes YouTube links from a mod",
		Args:    cobra.MinimumNArgs(2),
	}, &youtubeRunner{remove: true})

	youtubeCmd.AddCommand(addCmd.Command, removeCmd.Command)
	rootCmd.AddCommand(youtubeCmd)
}

type youtubeRunner struct {
	remove bool
}

func (y *youtubeRunner) RunE(cmd *cobra.Command, args []string) error {
	ids, err := parseModIDs(args[:1])
	if err != nil {
		return err
	}
	links := args[1:]

	instance, err := root.Instance()
	if err != nil {
		return err
	}
	defer instance.Shutdown()

	var res sdk.Response
	if y.remove {
		instance.DeleteModYoutubeLinks(ids[0], links, func(r sdk.Response) { res = r })
	} else {
		instance.AddModYoutubeLinks(ids[0], links, func(r sdk.Response) { res = r })
	}
	await(instance)
	if res.Err != nil {
		return res.Err
	}

	if y.remove {
		cmdlog.Success(fmt.Sprintf("Removed %d links", len(links)))
	} else {
		cmdlog.Success(fmt.Sprintf("Added %d links", len(links)))
	}
	return nil
}
