package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mrlokans/carrental/internal/cli"
	"github.com/mrlokans/carrental/internal/config"
	"github.com/mrlokans/carrental/internal/services"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	root := cli.NewRootCommand(config.NewConfig(), Version+" ("+Commit+")")
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", services.Message(err))
		os.Exit(1)
	}
}
