// Command urlpatternbench loads a batch of URL patterns and sample
// requests from a TOML config, registers them against a
// urlpatternlist.List, and reports match latency. With -serve it instead
// mounts the same List behind a fasthttp server.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dnalborczyk/url-pattern-list"
	"github.com/dnalborczyk/url-pattern-list/urlpattern"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "bench.toml", "path to a TOML bench config")
	serve := flag.Bool("serve", false, "mount the registered patterns behind a fasthttp server instead of benchmarking")
	verbose := flag.Bool("v", false, "enable verbose (debug-level) logging")
	flag.Parse()

	logger, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, "urlpatternbench: logger init:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}

	list := urlpatternlist.New(urlpatternlist.WithLogger(logger))
	for i, p := range cfg.Patterns {
		init := urlpattern.Init{Hostname: p.Hostname, Pathname: p.Pathname, Search: p.Search}
		if err := list.AddInit(init, p.Payload); err != nil {
			logger.Fatal("register pattern", zap.Int("index", i), zap.Error(err))
		}
	}

	if *serve {
		handler := newServeHandler(list, logger)
		logger.Info("serving", zap.String("addr", cfg.Serve.Addr))
		if err := fasthttp.ListenAndServe(cfg.Serve.Addr, handler); err != nil {
			logger.Fatal("serve", zap.Error(err))
		}
		return
	}

	runBench(list, cfg, logger)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func runBench(list *urlpatternlist.List, cfg *Config, logger *zap.Logger) {
	if len(cfg.Requests) == 0 {
		logger.Warn("no requests configured, nothing to benchmark")
		return
	}

	hits := 0
	start := time.Now()
	for i := 0; i < cfg.Repeat; i++ {
		for _, url := range cfg.Requests {
			_, ok, err := list.Match(url, "")
			if err != nil {
				logger.Error("match", zap.String("url", url), zap.Error(err))
				continue
			}
			if ok {
				hits++
			}
		}
	}
	elapsed := time.Since(start)

	total := cfg.Repeat * len(cfg.Requests)
	logger.Info("bench complete",
		zap.Int("patterns", len(cfg.Patterns)),
		zap.Int("requests", total),
		zap.Int("hits", hits),
		zap.Duration("elapsed", elapsed),
		zap.Duration("per_match", elapsed/time.Duration(max(total, 1))),
	)
}
