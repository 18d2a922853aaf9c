package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/minepkg/modio/cmd/config"
	"github.com/minepkg/modio/internals/cmdlog"
	"github.com/minepkg/modio/internals/commands"
	"github.com/minepkg/modio/pkg/modio"
	"github.com/minepkg/modio/pkg/sdk"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// set by main
var (
	Version string
	Commit  string
)

// frame is how often the CLI calls Process while waiting, like a game running at 60 fps
const frame = 16 * time.Millisecond

// Root holds what all commands share
type Root struct {
	logger *log.Logger
}

var root = &Root{}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "modio",
	Short: "Browse, download and manage mod.io mods of a game",
	Long:  "A mod.io client for the terminal. Configure your game with \"modio config set game_id <id>\" and \"modio config set api_key <key>\" first.",

	Example: `
  modio mods castle
  modio download 2231 2232
  modio youtube add 2231 https://www.youtube.com/watch?v=dQw4w9WgXcQ`,
}

var completionCmd = &cobra.Command{
	Use:   "completion",
	Args:  cobra.MaximumNArgs(1),
	Short: "Output shell completion code for bash",
	Long: `To load completion run

. <(modio completion)

You can add that line to your ~/.bashrc or ~/.profile to
persist completion in your shell.
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenBashCompletion(os.Stdout)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = Version
	if Commit != "" {
		rootCmd.Version += " (" + Commit + ")"
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, commands.Render(err))
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.BoolP("verbose", "v", false, "log every request")
	flags.Uint32("game", 0, "mod.io game id (overwrites game_id)")
	flags.String("env", "", "\"live\" or \"test\" (overwrites environment)")
	flags.String("root", "", "directory for downloaded and installed mods (overwrites root_dir)")

	viper.BindPFlag("verbose", flags.Lookup("verbose"))
	viper.BindPFlag("game_id", flags.Lookup("game"))
	viper.BindPFlag("environment", flags.Lookup("env"))
	viper.BindPFlag("root_dir", flags.Lookup("root"))

	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(config.SubCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetDefault("environment", "live")
	if dir, err := os.UserCacheDir(); err == nil {
		viper.SetDefault("root_dir", filepath.Join(dir, "modio"))
	} else {
		viper.SetDefault("root_dir", sdk.DefaultRootDir)
	}

	if dir, err := os.UserConfigDir(); err == nil {
		viper.AddConfigPath(filepath.Join(dir, "modio"))
	}
	viper.SetConfigName("config")
	viper.SetConfigType("toml")

	viper.SetEnvPrefix("modio")
	viper.AutomaticEnv() // MODIO_GAME_ID, MODIO_API_KEY …

	root.logger = cmdlog.New(os.Stderr, viper.GetBool("verbose"))

	var notFound viper.ConfigFileNotFoundError
	if err := viper.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
		root.logger.Warn("could not read config file", "err", err)
	}
	// the level might have been set in the config file
	if viper.GetBool("verbose") {
		root.logger.SetLevel(log.DebugLevel)
	}
	root.logger.Debug("config", "file", viper.ConfigFileUsed())
}

// SDKConfig builds the sdk configuration from flags, env variables and the config file
func (r *Root) SDKConfig() (sdk.Config, error) {
	env, err := modio.ParseEnvironment(viper.GetString("environment"))
	if err != nil {
		return sdk.Config{}, err
	}

	cfg := sdk.Config{
		GameID:      viper.GetUint32("game_id"),
		APIKey:      viper.GetString("api_key"),
		Environment: env,
		RootDir:     viper.GetString("root_dir"),
		Logger:      r.logger,
	}
	if cfg.GameID == 0 || cfg.APIKey == "" {
		return cfg, &commands.CliError{
			Text: "No game configured",
			Help: "Get your game id and api key from https://mod.io/me/access",
			Suggestions: []string{
				"modio config set game_id <id>",
				"modio config set api_key <key>",
				"or set MODIO_GAME_ID and MODIO_API_KEY",
			},
		}
	}
	return cfg, nil
}

// Instance creates a new sdk instance. `mutate` can adjust the configuration
func (r *Root) Instance(mutate ...func(cfg *sdk.Config)) (*sdk.Instance, error) {
	cfg, err := r.SDKConfig()
	if err != nil {
		return nil, err
	}
	for _, m := range mutate {
		m(&cfg)
	}
	return sdk.New(cfg)
}

// await calls Process until all calls (including the ones started by callbacks) completed
func await(instance *sdk.Instance) {
	for instance.Pending() > 0 {
		instance.Process()
		time.Sleep(frame)
	}
	instance.Process()
}

// parseModIDs parses all args as mod ids
func parseModIDs(args []string) ([]uint32, error) {
	ids := make([]uint32, len(args))
	for i, arg := range args {
		id, err := strconv.ParseUint(arg, 10, 32)
		if err != nil || id == 0 {
			return nil, &commands.CliError{
				Text:        fmt.Sprintf("%q is not a valid mod id", arg),
				Suggestions: []string{"Find mod ids with \"modio mods <search>\""},
			}
		}
		ids[i] = uint32(id)
	}
	return ids, nil
}
