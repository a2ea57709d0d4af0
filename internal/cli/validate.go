package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"inferoute/internal/config"
)

// runValidate builds the handler for the validate command.
func runValidate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		endpointsPath := flags.String("endpoints", "", "Path to endpoints file")
		requestsPath := flags.String("requests", "", "Path to requests file (optional)")
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if flags.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if *endpointsPath == "" {
			fmt.Fprintln(stderr, "Missing --endpoints")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		if _, err := config.LoadEndpoints(*endpointsPath); err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%s\n", err.Error())
			return ExitError
		}
		if *requestsPath != "" {
			if _, err := config.LoadRequests(*requestsPath); err != nil {
				fmt.Fprintf(stderr, "Validation failed:\n%s\n", err.Error())
				return ExitError
			}
		}

		fmt.Fprintln(stdout, "Config OK")
		return ExitOK
	}
}
