package cmd

import (
	"fmt"
	"strings"

	"github.com/jwalton/gchalk"
	"github.com/minepkg/modio/internals/commands"
	"github.com/minepkg/modio/internals/utils"
	"github.com/minepkg/modio/pkg/modio"
	"github.com/minepkg/modio/pkg/sdk"
	"github.com/spf13/cobra"
)

func init() {
	runner := &infoRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "info <mod id>",
		Short: "Displays details of a mod and its files",
		Args:  cobra.ExactArgs(1),
	}, runner)

	cmd.Flags().BoolVar(&runner.open, "open", false, "Open the mod page in a browser")

	rootCmd.AddCommand(cmd.Command)
}

type infoRunner struct {
	open bool
}

func (i *infoRunner) RunE(cmd *cobra.Command, args []string) error {
	ids, err := parseModIDs(args)
	if err != nil {
		return err
	}

	instance, err := root.Instance()
	if err != nil {
		return err
	}
	defer instance.Shutdown()

	var modRes, filesRes sdk.Response
	var mod *modio.Mod
	var files []modio.Modfile
	instance.GetMod(ids[0], func(r sdk.Response, m *modio.Mod) {
		modRes = r
		mod = m
	})
	instance.GetModfiles(ids[0], func(r sdk.Response, f []modio.Modfile) {
		filesRes = r
		files = f
	})
	await(instance)
	if modRes.Err != nil {
		return modRes.Err
	}
	if filesRes.Err != nil {
		return filesRes.Err
	}

	if i.open {
		return utils.OpenBrowser(mod.ProfileURL)
	}

	printField := func(name string, value string) {
		fmt.Printf("%-12s %s\n", gchalk.Gray(name+":"), value)
	}

	fmt.Println(gchalk.Bold(mod.Name) + " " + gchalk.Gray(fmt.Sprintf("(id %d)", mod.ID)))
	if mod.Summary != "" {
		fmt.Println(mod.Summary)
	}
	fmt.Println()
	printField("Author", mod.SubmittedBy.Username)
	printField("Version", utils.PrettyVersion(mod.Modfile.Version))
	printField("Downloads", utils.HumanInteger(mod.Stats.DownloadsTotal))
	printField("Rating", mod.Stats.RatingsDisplayText)
	printField("Updated", utils.HumanDate(mod.DateUpdated))
	printField("Page", mod.ProfileURL)

	if len(mod.Tags) != 0 {
		tags := make([]string, len(mod.Tags))
		for n, tag := range mod.Tags {
			tags[n] = tag.Name
		}
		printField("Tags", strings.Join(tags, ", "))
	}
	for _, link := range mod.Media.Youtube {
		printField("YouTube", link)
	}
	for _, link := range mod.Media.Sketchfab {
		printField("Sketchfab", link)
	}

	if installed, ok := findInstalled(instance, mod.ID); ok {
		status := "installed " + utils.PrettyVersion(installed.Modfile.Version)
		if installed.Outdated(&mod.Modfile) {
			status += gchalk.Yellow(" (update available)")
		}
		printField("Local", status)
	}

	if len(files) != 0 {
		fmt.Println("\n" + gchalk.Bold("Files"))
		rows := [][]string{{"ID", "Version", "Size", "Added", "Virus scan"}}
		for _, file := range files {
			rows = append(rows, []string{
				fmt.Sprint(file.ID),
				utils.PrettyVersion(file.Version),
				utils.HumanSize(file.Filesize),
				utils.HumanDate(file.DateAdded),
				virusStatus(&file),
			})
		}
		fmt.Println(commands.Table(rows))
	}
	return nil
}

func findInstalled(instance *sdk.Instance, modID uint32) (*sdk.InstalledMod, bool) {
	for _, mod := range instance.InstalledMods() {
		if mod.ModID == modID {
			mod := mod
			return &mod, true
		}
	}
	return nil, false
}

func virusStatus(file *modio.Modfile) string {
	switch {
	case file.VirusPositive != 0:
		return gchalk.Red("malicious")
	case file.VirusStatus == modio.VirusStatusScanComplete:
		return gchalk.Green("clean")
	case file.VirusStatus == modio.VirusStatusInProgress:
		return "in progress"
	default:
		return gchalk.Gray("not scanned")
	}
}
