// catastro-search ищет кадастровые ссылки в локальной таблице и печатает объекты, прошедшие фильтры.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"catastro-service/internal"
	"catastro-service/internal/adapters/gridreader"
	"catastro-service/internal/adapters/rest"
	"catastro-service/internal/adapters/sink"
	"catastro-service/internal/configs"
	"catastro-service/internal/contextkeys"
	"catastro-service/internal/core/domain"
	"catastro-service/internal/core/port"
	"catastro-service/internal/core/usecase"
)

type options struct {
	file      string
	classes   string
	minArea   float64
	maxArea   float64
	provinces string
	cities    string
	districts string
	minYear   float64
	maxYear   float64
	workers   int
	envFile   string
}

func parseFlags(args []string, output io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("catastro-search", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.file, "file", "", "path to the .xlsx or .csv file to scan (required)")
	fs.StringVar(&opts.classes, "class", "", "comma-separated property classes, e.g. Residencial,Industrial")
	fs.Float64Var(&opts.minArea, "min-area", 0, "minimum built area in m², 0 = unset")
	fs.Float64Var(&opts.maxArea, "max-area", 0, "maximum built area in m², 0 = unset")
	fs.StringVar(&opts.provinces, "provinces", "", "comma-separated provinces")
	fs.StringVar(&opts.cities, "cities", "", "comma-separated cities")
	fs.StringVar(&opts.districts, "districts", "", "comma-separated districts")
	fs.Float64Var(&opts.minYear, "min-year", 0, "minimum construction year, 0 = unset")
	fs.Float64Var(&opts.maxYear, "max-year", 0, "maximum construction year, 0 = unset")
	fs.IntVar(&opts.workers, "workers", 0, "concurrent registry requests, 0 = CATASTRO_WORKERS")
	fs.StringVar(&opts.envFile, "env", "", "optional .env file")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.file == "" {
		return opts, fmt.Errorf("-file is required")
	}
	return opts, nil
}

// criteria переиспользует разбор формы, чтобы CLI и REST понимали значения одинаково
func (o options) criteria() domain.FilterCriteria {
	form := url.Values{}
	set := func(key, value string) {
		if value != "" {
			form.Set(key, value)
		}
	}
	setNum := func(key string, v float64) {
		if v != 0 {
			form.Set(key, strconv.FormatFloat(v, 'f', -1, 64))
		}
	}
	set("clase", o.classes)
	setNum("metrosConstruidosMin", o.minArea)
	setNum("metrosConstruidosMax", o.maxArea)
	set("provincias", o.provinces)
	set("ciudades", o.cities)
	set("barrios", o.districts)
	setNum("añoConstruccionMin", o.minYear)
	setNum("añoConstruccionMax", o.maxYear)
	return rest.ParseFilterCriteria(form)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	var envPaths []string
	if opts.envFile != "" {
		envPaths = append(envPaths, opts.envFile)
	}
	cfg, err := configs.LoadConfig(envPaths...)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load configuration: %v\n", err)
		return 1
	}
	if opts.workers > 0 {
		cfg.Catastro.Workers = opts.workers
	}

	logger, fluentClient, err := internal.NewLogger(cfg, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "failed to initialize logger: %v\n", err)
		return 1
	}
	if fluentClient != nil {
		defer fluentClient.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = contextkeys.ContextWithLogger(ctx, logger)

	f, err := os.Open(opts.file)
	if err != nil {
		fmt.Fprintf(stderr, "failed to open %s: %v\n", opts.file, err)
		return 1
	}
	defer f.Close()

	grid, err := gridreader.NewGridReaderAdapter().ReadGrid(ctx, f, filepath.Base(opts.file))
	if err != nil {
		fmt.Fprintf(stderr, "failed to read %s: %v\n", opts.file, err)
		return 1
	}

	fetcher, err := internal.NewCatastroFetcher(cfg)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	var resultSink port.ResultSinkPort = sink.NewConsoleSink(stdout)
	if cfg.RabbitMQ.Enabled {
		publishing, err := internal.NewRabbitMQPublishing(cfg, logger)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		defer publishing.Close(logger)
		resultSink = sink.NewMultiSink(resultSink, publishing.Sink)
	}

	uc := usecase.NewSearchReferencesUseCase(fetcher, resultSink, cfg.Catastro.Workers)
	report, err := uc.Execute(ctx, grid, opts.criteria())
	if err != nil {
		fmt.Fprintf(stderr, "search interrupted: %v\n", err)
	}

	switch report.Status {
	case domain.SearchStatusNoReferences:
		fmt.Fprintln(stdout, "no valid cadastral references found")
	default:
		fmt.Fprintf(stdout, "\n%d references found, %d enriched, %d matched, %d failed\n",
			report.ReferencesFound, report.Enriched, len(report.Matches), len(report.Failures))
		for _, failure := range report.Failures {
			fmt.Fprintf(stderr, "  %s (%s): %s\n", failure.Reference.Value, failure.Stage, failure.Error)
		}
	}

	if err != nil {
		return 130
	}
	return 0
}
