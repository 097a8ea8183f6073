package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"vgsales/internal/config"
	"vgsales/internal/metrics"
	"vgsales/internal/metrics/datadog"
	"vgsales/internal/metrics/prompush"
	"vgsales/internal/pipeline"

	// register all backends with the storage factory.
	// config specifies which to use but we need to build in support for all of them.
	_ "vgsales/internal/storage/all"
)

// main is the entry point for the vgsales binary. It loads the pipeline
// config, optionally initializes a metrics backend, and executes a full run.
func main() {
	var (
		cfgPath           string
		metricsBackendFlg string
		pushGatewayURLFlg string
		dogstatsdAddrFlg  string
		validate          bool
	)

	flag.StringVar(&cfgPath, "config", "configs/pipelines/vgsales.json", "pipeline config JSON path")
	flag.StringVar(&metricsBackendFlg, "metrics-backend", "none", "metrics backend to use (pushgateway, datadog, none)")
	flag.StringVar(&pushGatewayURLFlg, "pushgateway-url", "http://localhost:9091", "Pushgateway base URL (overrides env PUSHGATEWAY_URL)")
	flag.StringVar(&dogstatsdAddrFlg, "dogstatsd-addr", "127.0.0.1:8125", "DogStatsD address (overrides env DOGSTATSD_ADDR)")
	flag.BoolVar(&validate, "validate", false, "validate the configuration and exit")
	verbose := flag.Bool("v", false, "enable verbose logs")

	flag.Parse()

	p, err := config.Load(cfgPath)
	if err != nil {
		fatalf("%v", err)
	}

	// Validate pipeline config.
	issues := config.ValidatePipeline(p)
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasErrors(issues) {
		log.Printf("Configuration is invalid: %v", cfgPath)
		os.Exit(1)
	}

	// If validate flag is set, only validate the configuration and exit
	if validate {
		log.Printf("Configuration is valid: %v", cfgPath)
		os.Exit(0)
	}

	// Decide metrics backend: flag → env → default.
	backendName := metricsBackendFlg
	if backendName == "" {
		backendName = os.Getenv("METRICS_BACKEND")
	}
	switch backendName {
	case "pushgateway":
		// Decide Pushgateway URL: flag → env → default.
		gwURL := pushGatewayURLFlg
		if gwURL == "" {
			gwURL = os.Getenv("PUSHGATEWAY_URL")
		}
		if gwURL == "" {
			gwURL = "http://localhost:9091"
		}

		jobName := p.Job
		if jobName == "" {
			jobName = "vgsales"
		}

		b, err := prompush.NewBackend(jobName, gwURL)
		if err != nil {
			log.Printf("metrics: failed to init prom push backend: %v; using nop", err)
		} else {
			log.Printf("metrics: url=%v, backend=%v, job_name=%v", gwURL, backendName, jobName)
			metrics.SetBackend(b)
			defer func() {
				if err := metrics.Flush(); err != nil {
					log.Printf("metrics: flush error: %v", err)
				}
			}()
		}

	case "datadog":
		addr := dogstatsdAddrFlg
		if addr == "" {
			addr = os.Getenv("DOGSTATSD_ADDR")
		}
		b, err := datadog.NewBackend(datadog.Config{
			Addr:       addr,
			Namespace:  "vgsales.",
			GlobalTags: []string{"job:" + p.Job},
		})
		if err != nil {
			log.Printf("metrics: failed to init datadog backend: %v; using nop", err)
		} else {
			log.Printf("metrics: addr=%v, backend=%v", addr, backendName)
			metrics.SetBackend(b)
			defer func() {
				if err := metrics.Flush(); err != nil {
					log.Printf("metrics: flush error: %v", err)
				}
			}()
		}

	case "", "none":
		// metrics disabled; nop backend remains
		if *verbose {
			log.Printf("metrics: disabled (backend=%q)", backendName)
		}

	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", backendName)
	}

	ctx := context.Background()
	start := time.Now()

	if *verbose {
		log.Printf("pipeline: source=%s parser=%s storage=%s table=%s",
			p.Source.Kind, p.Parser.Kind, p.Storage.Kind, p.Storage.DB.Table)
	}

	sum, err := pipeline.Run(ctx, p)
	if err != nil {
		log.Fatalf("%v", err)
	}

	log.Printf("run: parsed=%d parse_errors=%d dropped=%d stored=%d exported=%d digest=%x",
		sum.Parsed, sum.ParseErrors, sum.Dropped, sum.Stored, sum.Exported, sum.ExportDigest)
	if *verbose {
		log.Printf("completed in %s", time.Since(start).Truncate(time.Millisecond))
	}
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
