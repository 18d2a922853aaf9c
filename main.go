package main

import (
	"net/http"

	"github.com/minepkg/modio/cmd"
	"github.com/minepkg/modio/internals/ownhttp"
)

// set by goreleaser
var (
	version = "dev"
	commit  string
)

func main() {
	// replace default http client
	http.DefaultClient = ownhttp.New()

	cmd.Version = version
	cmd.Commit = commit
	cmd.Execute()
}
