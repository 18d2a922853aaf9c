package cmd

import (
	"fmt"

	"github.com/jwalton/gchalk"
	"github.com/minepkg/modio/internals/commands"
	"github.com/minepkg/modio/pkg/modio"
	"github.com/minepkg/modio/pkg/sdk"
	"github.com/spf13/cobra"
)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:   "whoami",
		Short: "Shows the logged in user",
		Args:  cobra.ExactArgs(0),
	}, &whoamiRunner{})

	rootCmd.AddCommand(cmd.Command)
}

type whoamiRunner struct{}

func (w *whoamiRunner) RunE(cmd *cobra.Command, args []string) error {
	instance, err := root.Instance()
	if err != nil {
		return err
	}
	defer instance.Shutdown()

	if !instance.IsLoggedIn() {
		return &commands.CliError{
			Text:        "You are not logged in",
			Suggestions: []string{"Run \"modio login\""},
		}
	}

	var res sdk.Response
	var user *modio.User
	instance.GetAuthenticatedUser(func(r sdk.Response, u *modio.User) {
		res = r
		user = u
	})
	await(instance)
	if res.Err != nil {
		return res.Err
	}

	fmt.Printf("%s %s\n", gchalk.Bold(user.Username), gchalk.Gray(fmt.Sprintf("(id %d)", user.ID)))
	if user.ProfileURL != "" {
		fmt.Println(user.ProfileURL)
	}
	return nil
}
