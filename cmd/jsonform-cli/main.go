package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-jsonform/pkg/controls"
	pkgopenapi "github.com/goliatone/go-jsonform/pkg/openapi"
	"github.com/goliatone/go-jsonform/pkg/orchestrator"
)

func main() {
	formID := flag.String("form", "", "form document id to run")
	formsDir := flag.String("forms", "", "directory of form documents (embedded samples if empty)")
	source := flag.String("source", "", "OpenAPI document path or URL")
	opID := flag.String("operation", "", "OpenAPI operation ID whose request body becomes the form")
	output := flag.String("output", "", "output file (stdout if empty)")
	list := flag.Bool("list", false, "list available form documents and exit")
	attempts := flag.Int("max-attempts", 0, "stop after this many failed submits (0 means unlimited)")
	verbose := flag.Bool("verbose", false, "log form events to stderr")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	options := []orchestrator.Option{
		orchestrator.WithLogger(logger),
		orchestrator.WithRunOptions(controls.WithMaxAttempts(*attempts)),
	}
	if *formsDir != "" {
		options = append(options, orchestrator.WithFormsFS(os.DirFS(*formsDir)))
	}
	gen := orchestrator.New(options...)

	if *list {
		for _, id := range gen.Forms() {
			fmt.Println(id)
		}
		return
	}

	req := orchestrator.Request{FormID: *formID, OperationID: *opID}
	if *source != "" {
		src, err := pkgopenapi.ResolveSource(*source)
		if err != nil {
			log.Fatalf("invalid source: %v", err)
		}
		req.Source = src
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	values, err := gen.Run(ctx, req)
	if errors.Is(err, controls.ErrCancelled) {
		fmt.Fprintln(os.Stderr, "cancelled")
		os.Exit(130)
	}
	if err != nil {
		log.Fatalf("Failed to run form: %v", err)
	}

	payload, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode values: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, append(payload, '\n'), 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Values written to %s\n", *output)
	} else {
		fmt.Println(string(payload))
	}
}
