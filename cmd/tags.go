package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/minepkg/modio/internals/cmdlog"
	"github.com/minepkg/modio/internals/commands"
	"github.com/minepkg/modio/pkg/sdk"
	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Manage tags of a mod",
}

func init() {
	listCmd := commands.New(&cobra.Command{
		Use:   "list <mod id>",
		Short: "Lists the tags of a mod",
		Args:  cobra.ExactArgs(1),
	}, &tagsListRunner{})

	addCmd := commands.New(&cobra.Command{
		Use:   "add <mod id> <tag>...",
		Short: "Adds tags to a mod",
		Args:  cobra.MinimumNArgs(2),
	}, &tagsRunner{remove: false})

	removeCmd := commands.New(&cobra.Command{
		Use:     "remove <mod id> <tag>...",
		Aliases: []string{"rm"},
		Short:   "Removes tags from a mod",
		Args:    cobra.MinimumNArgs(2),
	}, &tagsRunner{remove: true})

	tagsCmd.AddCommand(listCmd.Command, addCmd.Command, removeCmd.Command)
	rootCmd.AddCommand(tagsCmd)
}

type tagsListRunner struct{}

func (t *tagsListRunner) RunE(cmd *cobra.Command, args []string) error {
	ids, err := parseModIDs(args)
	if err != nil {
		return err
	}

	instance, err := root.Instance()
	if err != nil {
		return err
	}
	defer instance.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	page, err := instance.Client().GetModTags(ctx, ids[0])
	if err != nil {
		return err
	}

	names := make([]string, len(page.Data))
	for i, tag := range page.Data {
		names[i] = tag.Name
	}
	if len(names) == 0 {
		fmt.Println("No tags")
		return nil
	}
	fmt.Println(strings.Join(names, ", "))
	return nil
}

type tagsRunner struct {
	remove bool
}

func (t *tagsRunner) RunE(cmd *cobra.Command, args []string) error {
	ids, err := parseModIDs(args[:1])
	if err != nil {
		return err
	}
	tags := args[1:]

	instance, err := root.Instance()
	if err != nil {
		return err
	}
	defer instance.Shutdown()

	var res sdk.Response
	if t.remove {
		instance.DeleteModTags(ids[0], tags, func(r sdk.Response) { res = r })
	} else {
		instance.AddModTags(ids[0], tags, func(r sdk.Response) { res = r })
	}
	await(instance)
	if res.Err != nil {
		return res.Err
	}

	if t.remove {
		cmdlog.Success("Removed " + strings.Join(tags, ", "))
	} else {
		cmdlog.Success("Added " + strings.Join(tags, ", "))
	}
	return nil
}
