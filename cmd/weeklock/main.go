package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/opslock/weeklock/commands"
)

var cli = []commands.Command{
	&commands.VersionCmd,
	&commands.RunCmd,
}

var options = commands.Options{
	Debug: false,
}

func main() {
	flag.BoolVar(&options.Debug, "debug", options.Debug, "Enable debugging information")
	flag.Parse()

	cmd, err := parse(flag.Args())
	if err != nil {
		fmt.Printf("\nError parsing command line: %v\n\n", err)
		os.Exit(1)
	}

	if cmd == nil {
		help()
		os.Exit(1)
	}

	if err := cmd.Execute(&options); err != nil {
		log.Fatalf("ERROR: %v", err)
	}
}

// parse matches the first non-flag argument against the command list. A
// plain invocation with no arguments runs the locking pass.
func parse(args []string) (commands.Command, error) {
	if len(args) == 0 {
		return &commands.RunCmd, nil
	}

	if args[0] == "help" {
		if len(args) > 1 {
			for _, c := range cli {
				if c.Name() == args[1] {
					c.Help()
					os.Exit(0)
				}
			}
		}

		help()
		os.Exit(0)
	}

	for _, c := range cli {
		if c.Name() == args[0] {
			flagset := c.FlagSet()
			if err := flagset.Parse(args[1:]); err != nil {
				return nil, err
			}

			return c, nil
		}
	}

	return nil, fmt.Errorf("unknown command '%s'", args[0])
}

func help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] <command> [options]\n", commands.APP)
	fmt.Println()
	fmt.Println("  Commands:")

	for _, c := range cli {
		fmt.Printf("    %-9s %s\n", c.Name(), c.Description())
	}

	fmt.Println()
	fmt.Printf("  Use '%s help <command>' for command specific information\n", commands.APP)
	fmt.Println()
}
