package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jwalton/gchalk"
	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
	"github.com/minepkg/modio/internals/cmdlog"
	"github.com/minepkg/modio/internals/commands"
	"github.com/minepkg/modio/internals/utils"
	"github.com/minepkg/modio/pkg/sdk"
	"github.com/spf13/cobra"
)

func init() {
	runner := &loginRunner{}
	cmd := commands.New(&cobra.Command{
		Use:     "login",
		Aliases: []string{"signin"},
		Short:   "Sign in to mod.io with your email address",
		Long:    "Sign in to mod.io. A 5 character security code is sent to your email address, enter it to finish the login.",
		Args:    cobra.ExactArgs(0),
	}, runner)

	cmd.Flags().BoolVar(&runner.force, "force", false, "Prompt even if this is not a terminal")
	cmd.Flags().StringVar(&runner.email, "email", "", "Email address (skips the prompt)")

	rootCmd.AddCommand(cmd.Command)
}

type loginRunner struct {
	force bool
	email string
}

func (l *loginRunner) RunE(cmd *cobra.Command, args []string) error {
	if !l.force && !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return &commands.CliError{
			Text:        "This does not seem to be a terminal. Login needs user input.",
			Suggestions: []string{"Add --force if you want to try it nonetheless"},
		}
	}

	instance, err := root.Instance()
	if err != nil {
		return err
	}
	defer instance.Shutdown()

	if instance.IsLoggedIn() {
		cmdlog.Dim("You are already logged in. Logging in again replaces the current session.")
	}

	email := l.email
	if email == "" {
		email, err = utils.StringPrompt(&promptui.Prompt{
			Label:    "Email",
			Validate: validateEmail,
		})
		if err != nil {
			return err
		}
	}

	var res sdk.Response
	instance.EmailRequest(email, func(r sdk.Response) { res = r })
	await(instance)
	if res.Err != nil {
		return res.Err
	}
	fmt.Printf("A security code was sent to %s\n", gchalk.Bold(email))

	code, err := utils.StringPrompt(&promptui.Prompt{
		Label:    "Security code",
		Validate: validateSecurityCode,
	})
	if err != nil {
		return err
	}

	instance.EmailExchange(strings.TrimSpace(code), func(r sdk.Response) { res = r })
	await(instance)
	if res.Err != nil {
		return res.Err
	}

	cmdlog.Success("Logged in to mod.io")
	return nil
}

func validateEmail(input string) error {
	if !strings.Contains(input, "@") {
		return errors.New("this is not an email address")
	}
	return nil
}

func validateSecurityCode(input string) error {
	if len(strings.TrimSpace(input)) != 5 {
		return errors.New("the security code has 5 characters")
	}
	return nil
}
