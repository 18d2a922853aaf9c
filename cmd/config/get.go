package config

import (
	"fmt"
	"strings"

	"github.com/jwalton/gchalk"
	"github.com/minepkg/modio/internals/commands"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:   "get [key]",
		Short: "Gets a global config value or all of them",
		Args:  cobra.MaximumNArgs(1),
	}, &getRunner{})

	SubCmd.AddCommand(cmd.Command)
}

type getRunner struct{}

func (i *getRunner) RunE(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		for _, key := range keys() {
			printEntry(key)
		}
		if file := viper.ConfigFileUsed(); file != "" {
			fmt.Println(gchalk.Gray("\nfrom " + file))
		}
		return nil
	}

	key := strings.ToLower(args[0])
	if _, ok := config[key]; !ok {
		return unknownKey(key)
	}
	printEntry(key)
	return nil
}

func printEntry(key string) {
	value := viper.Get(key)
	shown := fmt.Sprintf("%v", value)
	switch {
	case value == nil || shown == "":
		shown = gchalk.Gray("(unset)")
	case config[key].secret && len(shown) > 4:
		shown = shown[:4] + strings.Repeat("*", len(shown)-4)
	}
	fmt.Printf("  %s: %s %s\n", key, shown, gchalk.Gray("# "+config[key].help))
}

func unknownKey(key string) error {
	return &commands.CliError{
		Text:        fmt.Sprintf("config key %q does not exist", key),
		Suggestions: []string{"Valid keys are: " + strings.Join(keys(), ", ")},
	}
}
