// Command shipcheck prints the shipping strategy taxonomy and validates JSON plan descriptions.
//
// Usage:
//
//	shipcheck --list
//	shipcheck [--fail-fast] [--log-level LEVEL] [--config FILE] plan.json...
//
// Settings may also be supplied through a config file or SHIPCHECK_FAIL_FAST and
// SHIPCHECK_LOG_LEVEL environment variables.
package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/go-sif/shipping"
	"github.com/go-sif/shipping/logging"
	"github.com/go-sif/shipping/planner"
	"github.com/go-sif/shipping/stats"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type result struct {
	plan shipping.Plan
	err  error
}

func run(args []string, stdout io.Writer, stderr io.Writer) int {
	flags := pflag.NewFlagSet("shipcheck", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	list := flags.BoolP("list", "l", false, "print the shipping strategy taxonomy and exit")
	configFile := flags.StringP("config", "c", "", "read settings from a config file")
	flags.Bool("fail-fast", false, "report only the first validation error of each plan")
	flags.String("log-level", shipping.DefaultLogLevel, "planner log level (trace, debug, info, warn, error)")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	if *list {
		printTaxonomy(stdout)
		return 0
	}

	v := viper.New()
	v.SetEnvPrefix("shipcheck")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for key, flag := range map[string]string{"fail_fast": "fail-fast", "log_level": "log-level"} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			fmt.Fprintf(stderr, "unable to bind flag --%s: %v\n", flag, err)
			return 2
		}
	}
	if *configFile != "" {
		v.SetConfigFile(*configFile)
		if err := v.ReadInConfig(); err != nil {
			fmt.Fprintf(stderr, "unable to read config %s: %v\n", *configFile, err)
			return 2
		}
	}
	conf := shipping.PlannerConfigFromViper(v)
	conf.Logger = logging.CreateLogger(logging.ParseLogLevel(conf.LogLevel), stderr)

	paths := flags.Args()
	if len(paths) == 0 {
		fmt.Fprintln(stderr, "usage: shipcheck [--list] [--fail-fast] [--log-level LEVEL] [--config FILE] plan.json...")
		return 2
	}

	results := make([]result, len(paths))
	var g errgroup.Group
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			doc, err := ioutil.ReadFile(path)
			if err != nil {
				return err
			}
			p, err := planner.LoadPlan(doc, conf)
			results[i] = result{plan: p, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	status := 0
	for i, path := range paths {
		if results[i].err != nil {
			status = 1
			fmt.Fprintf(stdout, "%s: INVALID\n", path)
			for _, err := range flatten(results[i].err) {
				fmt.Fprintf(stdout, "  - %v\n", err)
			}
			continue
		}
		p := results[i].plan
		ps := stats.Summarize(p)
		fmt.Fprintf(stdout, "%s: OK fingerprint=%016x stages=%d edges=%d network_edges=%d network_channels=%d comparator_edges=%d\n",
			path, p.Fingerprint(), ps.NumStages, ps.NumEdges, ps.NetworkEdges, ps.NetworkChannels, ps.ComparatorEdges)
	}
	return status
}

func flatten(err error) []error {
	if merr, ok := err.(*multierror.Error); ok {
		return merr.Errors
	}
	return []error{err}
}

func printTaxonomy(out io.Writer) {
	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "STRATEGY\tNETWORK\tCOMPENSATES\tCOMPARATOR\tEXECUTABLE")
	for _, s := range shipping.ShipStrategies() {
		f := s.Flags()
		fmt.Fprintf(w, "%s\t%t\t%t\t%t\t%t\n", s, f.IsNetworkStrategy, f.CompensatesForLocalParallelismChanges, f.RequiresComparator, s.IsValidForExecution())
	}
	w.Flush()
}
