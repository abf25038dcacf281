package main

import (
	"fmt"
	"os"
	_ "time/tzdata"

	"github.com/urfave/cli/v2"
)

const ServiceName = "futsal"

func main() {
	app := &cli.App{
		Name:           ServiceName,
		Usage:          "futsal field booking service",
		DefaultCommand: "serve",
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
			purgeCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
