package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"time"

	"inferoute/internal/config"
	"inferoute/internal/journal"
	"inferoute/internal/ui/live"
	"inferoute/pkg/schedule"
)

// startLiveUI is a test seam for launching the live dashboard.
var startLiveUI = func(stdout io.Writer) *live.Controller {
	return live.Start(stdout, live.Options{})
}

// runRun builds the handler for the run command.
func runRun(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		endpointsPath := fs.String("endpoints", "", "Path to endpoints file")
		requestsPath := fs.String("requests", "", "Path to requests file")
		journalPath := fs.String("journal", "", "Write a run journal to this path")
		uiFlag := fs.String("ui", "auto", "UI mode: auto|live|plain")
		simulate := fs.Bool("simulate", false, "Drain on a virtual clock without real waiting")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		if *endpointsPath == "" || *requestsPath == "" {
			fmt.Fprintln(stderr, "Missing --endpoints or --requests")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		endpoints, err := config.LoadEndpoints(*endpointsPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load endpoints: %v\n", err)
			return ExitError
		}
		requests, err := config.LoadRequests(*requestsPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load requests: %v\n", err)
			return ExitError
		}
		decision, err := resolveUIMode(*uiFlag, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		clock := schedule.RealClock()
		if *simulate {
			// Simulated runs finish instantly, so there is nothing for a
			// live dashboard to show.
			clock = schedule.VirtualClock(time.Now())
			decision.useLive = false
		}
		server, err := config.NewServer(endpoints, clock)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to build server: %v\n", err)
			return ExitError
		}

		record := journal.New()
		observers := []schedule.Observer{record}
		var controller *live.Controller
		if decision.useLive {
			controller = startLiveUI(stdout)
			observers = append(observers, controller)
		}

		scheduler := schedule.NewScheduler(server, clock,
			schedule.WithObserver(schedule.MultiObserver(observers...)))
		queue := schedule.NewQueue(requests)
		report, runErr := scheduler.Run(context.Background(), queue)
		if controller != nil {
			controller.Close()
			controller.Wait()
		}

		if *journalPath != "" {
			if err := record.Save(*journalPath); err != nil {
				fmt.Fprintf(stderr, "Failed to write journal: %v\n", err)
				return ExitError
			}
		}
		if runErr != nil {
			var unroutableErr *schedule.UnroutableRequestError
			if errors.As(runErr, &unroutableErr) {
				fmt.Fprintf(stderr, "Run failed: %v\n", unroutableErr)
				return ExitError
			}
			fmt.Fprintf(stderr, "Run failed: %v\n", runErr)
			return ExitError
		}

		printReport(stdout, report, record.Statistics())
		if *journalPath != "" {
			fmt.Fprintf(stdout, "Journal: %s\n", *journalPath)
		}
		return ExitOK
	}
}

// printReport writes the plain-mode run summary.
func printReport(stdout io.Writer, report schedule.Report, stats journal.Statistics) {
	fmt.Fprintf(stdout, "Fulfilled %d request(s) in %s\n", report.Fulfilled, report.Makespan)
	fmt.Fprintf(stdout, "Rejections: %d request-gate, %d token-gate across %d wait(s)\n",
		report.RequestRejections, report.TokenRejections, report.Waits)
	fmt.Fprintf(stdout, "Longest admission delay: %ds\n", stats.LongestElapsedTime)
	routes := make([]string, 0, len(report.FulfilledByRoute))
	for route := range report.FulfilledByRoute {
		routes = append(routes, route)
	}
	sort.Strings(routes)
	for _, route := range routes {
		fmt.Fprintf(stdout, "  %s: %d\n", route, report.FulfilledByRoute[route])
	}
}
