package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/goliatone/go-cascade/pkg/controls"
	"github.com/goliatone/go-cascade/pkg/renderers/tui"
	"github.com/goliatone/go-cascade/pkg/selector"
	"github.com/goliatone/go-cascade/pkg/shape"
)

func main() {
	endpoint := flag.String("url", "http://localhost:8090/api/regions", "data endpoint")
	param := flag.String("param", selector.DefaultParam, "query parameter carrying the selected value")
	levels := flag.String("levels", "province,city,district", "comma separated control names, one per level")
	results := flag.String("results", "data", "dotted path to the record list in each response")
	valueProp := flag.String("value", selector.DefaultValueProperty, "record property used as option value")
	textProp := flag.String("text", selector.DefaultTextProperty, "record property used as option text")
	status := flag.String("status", "", "response field that must equal 1 for the response to be used")
	filter := flag.String("filter", "", "expr-lang expression records must satisfy")
	token := flag.String("token", "", "bearer token sent with every request")
	debug := flag.Bool("debug", false, "log selector diagnostics to stderr")
	timeout := flag.Duration("timeout", 10*time.Second, "per-request timeout")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	names := splitNames(*levels)
	if len(names) == 0 {
		log.Error("no levels given")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fetcher := selector.HTTPFetcher{Client: &http.Client{Timeout: *timeout}}
	if *token != "" {
		fetcher.Header = http.Header{"Authorization": {"Bearer " + *token}}
	}

	chain := controls.NewChain("", names...)
	loop := selector.NewLoop()
	sel, err := selector.New(*endpoint, controls.Controls(chain...),
		selector.WithParam(*param),
		selector.WithFetcher(fetcher),
		selector.WithDispatcher(loop),
		selector.WithDebug(*debug),
		selector.WithLogger(log),
		selector.WithDataCallback(shape.Populate(shape.Config{
			ResultsPath:   *results,
			StatusField:   *status,
			Filter:        *filter,
			ValueProperty: *valueProp,
			TextProperty:  *textProp,
		})),
		selector.WithFetchErrorHandler(func(_ *selector.Selector, _ selector.Group, err error) {
			log.Error("fetch failed", "error", err)
		}),
	)
	if err != nil {
		log.Error("invalid selector", "error", err)
		os.Exit(2)
	}

	host := tui.New(
		tui.WithLoop(loop),
		tui.WithPromptDriver(tui.NewSurveyDriver(os.Stderr)),
	)
	chosen, err := host.Run(ctx, sel, chain)
	if err != nil {
		if errors.Is(err, tui.ErrAborted) || errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		log.Error("cascade failed", "error", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(chosen); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func splitNames(raw string) []string {
	var out []string
	for _, name := range strings.Split(raw, ",") {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}
