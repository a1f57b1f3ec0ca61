package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/GustavoCaso/carfinder/internal/cli"
	"github.com/GustavoCaso/carfinder/internal/cli/favorite"
	"github.com/GustavoCaso/carfinder/internal/cli/favorites"
	"github.com/GustavoCaso/carfinder/internal/cli/search"
	"github.com/GustavoCaso/carfinder/internal/cli/theme"
	"github.com/GustavoCaso/carfinder/internal/cli/web"
	"github.com/GustavoCaso/carfinder/internal/config"
	"github.com/GustavoCaso/carfinder/internal/logger"
)

var configPath string

var subcommands = map[string]cli.Command{
	"web":       web.NewCommand(),
	"search":    search.NewCommand(),
	"favorite":  favorite.NewCommand(),
	"favorites": favorites.NewCommand(),
	"theme":     theme.NewCommand(),
}

var subcommandsFlagSets = map[string]*flag.FlagSet{}

func main() {
	if len(os.Args) < 2 {
		fmt.Printf("subcommand is required\n")
		printUsage()

		os.Exit(1)
	}

	for c, cLogic := range subcommands {
		fset := flag.NewFlagSet(c, flag.ExitOnError)
		fset.StringVar(&configPath, "c", "", "Configuration file (overrides CARFINDER_CONFIG)")

		cLogic.SetFlags(fset)

		subcommandsFlagSets[c] = fset
	}

	commandName := os.Args[1]
	command, ok := subcommands[commandName]
	if !ok {
		if strings.Contains(commandName, "help") {
			printHelp()

			os.Exit(0)
		}
		log.Fatalf("unsupported command %s. \nUse 'help' command to print information about supported commands\n", commandName)
	}

	if err := subcommandsFlagSets[commandName].Parse(os.Args[2:]); err != nil {
		log.Fatalf("Unable to parse flags: %s", err.Error())
	}

	if configPath != "" {
		os.Setenv("CARFINDER_CONFIG", configPath)
	}

	conf, err := config.Parse()
	if err != nil {
		log.Fatalf("Unable to parse the configuration: %s", err.Error())
	}

	logger := logger.New(conf.Logger)
	for _, warning := range conf.Warnings {
		logger.Warn("Configuration", "warning", warning)
	}

	if err := command.Run(conf, logger); err != nil {
		logger.Fatal("Command failed", "command", commandName, "error", err)
	}
}

func printHelp() {
	printUsage()

	names := make([]string, 0, len(subcommands))
	for c := range subcommands {
		names = append(names, c)
	}
	sort.Strings(names)

	for _, c := range names {
		fmt.Printf("subcommand <%s>: %s\n", c, subcommands[c].Description())
		subcommandsFlagSets[c].PrintDefaults()
		fmt.Println()
	}
}

func printUsage() {
	fmt.Printf("usage: carfinder <subcommand> [flags]\n\n")
}
