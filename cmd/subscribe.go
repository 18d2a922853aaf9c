package cmd

import (
	"fmt"
	"net/http"

	"github.com/minepkg/modio/internals/cmdlog"
	"github.com/minepkg/modio/internals/commands"
	"github.com/minepkg/modio/pkg/modio"
	"github.com/minepkg/modio/pkg/sdk"
	"github.com/spf13/cobra"
)

func init() {
	subRunner := &subscribeRunner{}
	subCmd := commands.New(&cobra.Command{
		Use:     "subscribe <mod id>...",
		Aliases: []string{"sub"},
		Short:   "Subscribes to mods",
		Args:    cobra.MinimumNArgs(1),
	}, subRunner)
	subCmd.Flags().BoolVar(&subRunner.download, "download", true, "Download the mods after subscribing")

	unsubCmd := commands.New(&cobra.Command{
		Use:     "unsubscribe <mod id>...",
		Aliases: []string{"unsub"},
		Short:   "Unsubscribes from mods and uninstalls them",
		Args:    cobra.MinimumNArgs(1),
	}, &unsubscribeRunner{})

	rootCmd.AddCommand(subCmd.Command, unsubCmd.Command)
}

type subscribeRunner struct {
	download bool
}

func (s *subscribeRunner) RunE(cmd *cobra.Command, args []string) error {
	ids, err := parseModIDs(args)
	if err != nil {
		return err
	}

	instance, err := root.Instance(func(cfg *sdk.Config) {
		cfg.AutoDownload = s.download
	})
	if err != nil {
		return err
	}
	defer instance.Shutdown()

	instance.SetDownloadListener(func(code int, modID uint32) {
		if code == http.StatusOK {
			cmdlog.Success(fmt.Sprintf("Downloaded %d", modID))
			return
		}
		cmdlog.Warn(fmt.Sprintf("Download of %d failed %s", modID, describeCode(code)))
	})

	var firstErr error
	for _, id := range ids {
		id := id
		instance.SubscribeToMod(id, func(r sdk.Response, mod *modio.Mod) {
			if r.Err != nil {
				root.logger.Error("could not subscribe", "mod", id, "err", r.Err)
				if firstErr == nil {
					firstErr = r.Err
				}
				return
			}
			cmdlog.Success(fmt.Sprintf("Subscribed to %s", mod.Name))
		})
	}
	await(instance)

	if firstErr != nil {
		return firstErr
	}
	if s.download {
		return installDownloaded(instance)
	}
	return nil
}

type unsubscribeRunner struct{}

func (u *unsubscribeRunner) RunE(cmd *cobra.Command, args []string) error {
	ids, err := parseModIDs(args)
	if err != nil {
		return err
	}

	instance, err := root.Instance()
	if err != nil {
		return err
	}
	defer instance.Shutdown()

	var firstErr error
	for _, id := range ids {
		id := id
		instance.UnsubscribeFromMod(id, func(r sdk.Response) {
			if r.Err != nil {
				root.logger.Error("could not unsubscribe", "mod", id, "err", r.Err)
				if firstErr == nil {
					firstErr = r.Err
				}
				return
			}
			cmdlog.Success(fmt.Sprintf("Unsubscribed from %d", id))
		})
	}
	await(instance)
	return firstErr
}
