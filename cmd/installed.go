package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jwalton/gchalk"
	"github.com/minepkg/modio/internals/commands"
	"github.com/minepkg/modio/internals/utils"
	"github.com/pelletier/go-toml"
	"github.com/spf13/cobra"
)

func init() {
	runner := &installedRunner{}
	cmd := commands.New(&cobra.Command{
		Use:     "installed",
		Aliases: []string{"ls"},
		Short:   "Lists installed mods",
		Args:    cobra.ExactArgs(0),
	}, runner)

	cmd.Flags().StringVar(&runner.format, "format", "table", "Output format: table, json or toml")

	rootCmd.AddCommand(cmd.Command)
}

type installedRunner struct {
	format string
}

// installedEntry is a row of the installed list
type installedEntry struct {
	ModID         uint32    `json:"mod_id" toml:"mod_id"`
	FileID        uint32    `json:"file_id" toml:"file_id"`
	Version       string    `json:"version" toml:"version"`
	Path          string    `json:"path" toml:"path"`
	DateInstalled time.Time `json:"date_installed" toml:"date_installed"`
}

type installedList struct {
	Mods []installedEntry `json:"mods" toml:"mods"`
}

func (i *installedRunner) RunE(cmd *cobra.Command, args []string) error {
	instance, err := root.Instance()
	if err != nil {
		return err
	}
	defer instance.Shutdown()

	list := installedList{Mods: []installedEntry{}}
	for _, mod := range instance.InstalledMods() {
		list.Mods = append(list.Mods, installedEntry{
			ModID:         mod.ModID,
			FileID:        mod.Modfile.ID,
			Version:       mod.Modfile.Version,
			Path:          mod.Path,
			DateInstalled: time.Unix(mod.DateInstalled, 0).UTC(),
		})
	}

	switch i.format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	case "toml":
		raw, err := toml.Marshal(list)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(raw)
		return err
	case "table":
		if len(list.Mods) == 0 {
			fmt.Println("No mods installed")
			return nil
		}
		rows := [][]string{{"ID", "Version", "Installed", "Path"}}
		for _, mod := range list.Mods {
			rows = append(rows, []string{
				fmt.Sprint(mod.ModID),
				utils.PrettyVersion(mod.Version),
				utils.HumanDate(mod.DateInstalled.Unix()),
				gchalk.Gray(mod.Path),
			})
		}
		fmt.Println(commands.Table(rows))
		return nil
	default:
		return &commands.CliError{
			Text:        fmt.Sprintf("unknown format %q", i.format),
			Suggestions: []string{"Use --format table, json or toml"},
		}
	}
}
