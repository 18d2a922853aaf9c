package cmd

import (
	"fmt"

	"github.com/jwalton/gchalk"
	"github.com/minepkg/modio/internals/commands"
	"github.com/minepkg/modio/internals/utils"
	"github.com/minepkg/modio/pkg/modio"
	"github.com/minepkg/modio/pkg/sdk"
	"github.com/spf13/cobra"
)

func init() {
	runner := &modsRunner{}
	cmd := commands.New(&cobra.Command{
		Use:     "mods [search]",
		Aliases: []string{"search", "list"},
		Short:   "Lists mods of the game",
		Args:    cobra.MaximumNArgs(1),
	}, runner)

	cmd.Flags().IntVar(&runner.limit, "limit", 20, "Number of mods to show (max 100)")
	cmd.Flags().IntVar(&runner.offset, "offset", 0, "Number of mods to skip")
	cmd.Flags().StringVar(&runner.sort, "sort", "-popular", "Sort by field, prefix with - for descending order")
	cmd.Flags().StringSliceVar(&runner.tags, "tag", nil, "Only show mods with these tags")
	cmd.Flags().BoolVar(&runner.subscribed, "subscribed", false, "Only show mods you are subscribed to")

	rootCmd.AddCommand(cmd.Command)
}

type modsRunner struct {
	limit      int
	offset     int
	sort       string
	tags       []string
	subscribed bool
}

func (m *modsRunner) RunE(cmd *cobra.Command, args []string) error {
	instance, err := root.Instance()
	if err != nil {
		return err
	}
	defer instance.Shutdown()

	query := &modio.ModsQuery{
		Limit:  m.limit,
		Offset: m.offset,
		Sort:   m.sort,
		Tags:   m.tags,
	}
	if len(args) == 1 {
		query.Search = args[0]
	}

	var res sdk.Response
	var mods []modio.Mod
	collect := func(r sdk.Response, list []modio.Mod) {
		res = r
		mods = list
	}
	if m.subscribed {
		instance.GetUserSubscriptions(query, collect)
	} else {
		instance.GetMods(query, collect)
	}
	await(instance)
	if res.Err != nil {
		return res.Err
	}

	if len(mods) == 0 {
		fmt.Println("No mods found")
		return nil
	}

	rows := [][]string{{"ID", "Name", "Version", "Downloads", "Updated"}}
	for _, mod := range mods {
		rows = append(rows, []string{
			fmt.Sprint(mod.ID),
			mod.Name,
			utils.PrettyVersion(mod.Modfile.Version),
			utils.HumanInteger(mod.Stats.DownloadsTotal),
			utils.HumanDate(mod.DateUpdated),
		})
	}
	fmt.Println(commands.Table(rows))
	fmt.Println(gchalk.Gray(fmt.Sprintf(
		"\nShowing %d-%d of %d",
		res.ResultOffset+1,
		res.ResultOffset+res.ResultCount,
		res.ResultTotal,
	)))
	if res.ResultOffset+res.ResultCount < res.ResultTotal {
		fmt.Println(gchalk.Gray(fmt.Sprintf("Use --offset %d for more", res.ResultOffset+res.ResultCount)))
	}
	return nil
}
