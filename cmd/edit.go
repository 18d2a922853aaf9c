package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/minepkg/modio/internals/cmdlog"
	"github.com/minepkg/modio/internals/commands"
	"github.com/minepkg/modio/pkg/modio"
	"github.com/minepkg/modio/pkg/sdk"
	"github.com/spf13/cobra"
)

func init() {
	runner := &editRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "edit <mod id>",
		Short: "Changes the details of a mod",
		Args:  cobra.ExactArgs(1),
		Example: `  modio edit 2231 --summary "A castle on a hill"
  modio edit 2231 --logo logo.png`,
	}, runner)

	flags := cmd.Flags()
	flags.StringVar(&runner.edit.Name, "name", "", "New name")
	flags.StringVar(&runner.edit.Summary, "summary", "", "New summary")
	flags.StringVar(&runner.edit.Description, "description", "", "New description (HTML)")
	flags.StringVar(&runner.edit.HomepageURL, "homepage", "", "New homepage url")
	flags.StringVar(&runner.logo, "logo", "", "Upload a new logo image (jpg or png)")
	flags.BoolVar(&runner.hidden, "hidden", false, "Hide the mod")
	flags.BoolVar(&runner.public, "public", false, "Make the mod visible")

	rootCmd.AddCommand(cmd.Command)
}

type editRunner struct {
	edit   modio.EditModRequest
	logo   string
	hidden bool
	public bool
}

func (e *editRunner) RunE(cmd *cobra.Command, args []string) error {
	ids, err := parseModIDs(args)
	if err != nil {
		return err
	}
	if e.hidden && e.public {
		return &commands.CliError{Text: "--hidden and --public can not be combined"}
	}
	if e.hidden || e.public {
		visible := e.public
		e.edit.Visible = &visible
	}

	instance, err := root.Instance()
	if err != nil {
		return err
	}
	defer instance.Shutdown()

	if e.logo != "" {
		if err := uploadLogo(instance, ids[0], e.logo); err != nil {
			return err
		}
		cmdlog.Success("Uploaded logo")
		if e.edit == (modio.EditModRequest{}) {
			return nil
		}
	}

	var res sdk.Response
	var mod *modio.Mod
	instance.EditMod(ids[0], &e.edit, func(r sdk.Response, m *modio.Mod) {
		res = r
		mod = m
	})
	await(instance)
	if res.Err != nil {
		return res.Err
	}
	cmdlog.Success(fmt.Sprintf("Updated %s", mod.Name))
	return nil
}

func uploadLogo(instance *sdk.Instance, modID uint32, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	_, err = instance.Client().EditModLogo(ctx, modID, filepath.Base(path), f)
	return err
}
