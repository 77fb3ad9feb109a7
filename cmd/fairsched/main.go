package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/viant/afs"
	"github.com/viant/fairsched"
	"github.com/viant/fairsched/service/dump"
	"github.com/viant/fairsched/service/event"
	"github.com/viant/fairsched/service/script"
)

func main() {
	configURL := flag.String("config", "", "configuration URL (yaml or json)")
	scriptURL := flag.String("script", "-", "command script URL, - reads stdin")
	diff := flag.Bool("diff", false, "print a process listing diff after every mutating command")
	dumpURL := flag.String("dump", "", "upload the final process listing to URL")
	logLevel := flag.String("log", "", "log level: debug, info, warn, error")
	traceOutput := flag.String("trace", "", "export spans to file, - for stdout")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if err := run(ctx, *configURL, *scriptURL, *dumpURL, *logLevel, *traceOutput, *diff); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configURL, scriptURL, dumpURL, logLevel, traceOutput string, diff bool) error {
	config := fairsched.DefaultConfig()
	if configURL != "" {
		var err error
		if config, err = fairsched.LoadConfig(ctx, configURL); err != nil {
			return err
		}
	}
	if logLevel != "" {
		config.Log.Level = logLevel
	}
	if traceOutput != "" {
		config.Tracing.Enabled = true
		if traceOutput != "-" {
			config.Tracing.Output = traceOutput
		}
	}
	srv, err := fairsched.New(fairsched.WithConfig(config))
	if err != nil {
		return err
	}

	logger := srv.Logger()
	if config.Events.Enabled {
		listener := event.NewListener(srv.Events(), func(e *event.Event) {
			logger.Debug("event", "kind", e.Kind, "pid", e.PID, "from", e.From, "to", e.To, "vruntime", e.VRuntime)
		}, logger)
		listener.Start(ctx)
		defer listener.Stop()
	}

	fs := afs.New()
	var commands []*script.Command
	if scriptURL == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		if commands, err = script.Parse(string(data)); err != nil {
			return err
		}
	} else if commands, err = script.Load(ctx, fs, scriptURL); err != nil {
		return err
	}

	if err = srv.Runner(os.Stdout, script.WithDiff(diff)).Run(ctx, commands); err != nil {
		return err
	}
	counters := srv.Kernel().Stats()
	logger.Info("script completed", "commands", len(commands), "forks", counters.Forks, "dispatches", counters.Dispatches, "idle", counters.Idle)
	if dumpURL != "" {
		return dump.Upload(ctx, fs, dumpURL, srv.Kernel().Dump(ctx))
	}
	return nil
}
