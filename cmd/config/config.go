// Package config contains the "modio config" commands
package config

import (
	"sort"

	"github.com/spf13/cobra"
)

const (
	configKindString = iota
	configKindBool
	configKindInt
)

type configEntry struct {
	kind int
	help string
	// secret values are masked when printed
	secret bool
}

var config = map[string]configEntry{
	"game_id":     {kind: configKindInt, help: "id of the game on mod.io"},
	"api_key":     {kind: configKindString, help: "api key of the game (https://mod.io/me/access)", secret: true},
	"environment": {kind: configKindString, help: "\"live\" or \"test\""},
	"root_dir":    {kind: configKindString, help: "directory for downloaded and installed mods"},
	"verbose":     {kind: configKindBool, help: "log every request"},
}

// keys returns all config keys sorted
func keys() []string {
	list := make([]string, 0, len(config))
	for key := range config {
		list = append(list, key)
	}
	sort.Strings(list)
	return list
}

var SubCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage global config options",
}
