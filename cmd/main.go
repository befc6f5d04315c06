package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/brojonat/arv-relay/rentcast"
	"github.com/brojonat/arv-relay/server"
	"github.com/brojonat/arv-relay/worker"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	// a missing .env is fine; the environment may already be populated
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal(err)
	}

	app := &cli.App{
		Name:  "arv-relay",
		Usage: "Relay CRM property webhooks to RentCast and return the after repair value.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"ll"},
				EnvVars: []string{"LOG_LEVEL"},
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error).",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "run-http-server",
				Usage: "Run the HTTP server on the specified port.",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "listen-port",
						Aliases: []string{"port", "p"},
						EnvVars: []string{"PORT"},
						Value:   server.DefaultListenPort,
						Usage:   "Port to listen on.",
					},
					&cli.StringSliceFlag{
						Name:    "allowed-origins",
						Aliases: []string{"origins"},
						EnvVars: []string{"ALLOWED_ORIGINS"},
						Value:   cli.NewStringSlice("*"),
						Usage:   "CORS allowed origins.",
					},
					&cli.Int64Flag{
						Name:    "max-bytes",
						EnvVars: []string{"MAX_BODY_BYTES"},
						Value:   server.DefaultMaxBytes,
						Usage:   "Maximum accepted request body size.",
					},
				}, rentcastFlags()...),
				Action: func(ctx *cli.Context) error {
					return serve_http(ctx)
				},
			},
			{
				Name:  "probe",
				Usage: "Check RentCast connectivity with a sample property and print the result.",
				Flags: rentcastFlags(),
				Action: func(ctx *cli.Context) error {
					return run_probe(ctx)
				},
			},
			{
				Name:  "run-probe-worker",
				Usage: "Periodically check RentCast connectivity and log the outcome.",
				Flags: append([]cli.Flag{
					&cli.DurationFlag{
						Name:    "interval",
						Aliases: []string{"i"},
						Value:   5 * time.Minute,
						Usage:   "Minimum interval between probes.",
					},
				}, rentcastFlags()...),
				Action: func(ctx *cli.Context) error {
					return run_probe_worker(ctx)
				},
			},
			{
				Name:  "get-arv",
				Usage: "Post a webhook payload file to a running relay and print the response.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "server-endpoint",
						Aliases: []string{"server", "s"},
						EnvVars: []string{"SERVER_ENDPOINT"},
						Value:   "http://localhost:" + server.DefaultListenPort,
						Usage:   "Relay endpoint.",
					},
					&cli.PathFlag{
						Name:     "payload",
						Aliases:  []string{"f"},
						Required: true,
						Usage:    "Path to a JSON webhook payload.",
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Value: 30 * time.Second,
						Usage: "Request timeout.",
					},
				},
				Action: func(ctx *cli.Context) error {
					return get_arv(ctx)
				},
			},
		}}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func rentcastFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "rentcast-api-key",
			Aliases: []string{"key", "k"},
			EnvVars: []string{"RENTCAST_API_KEY"},
			Usage:   "RentCast API key.",
		},
		&cli.StringFlag{
			Name:    "rentcast-base-url",
			EnvVars: []string{"RENTCAST_BASE_URL"},
			Value:   rentcast.DefaultBaseURL,
			Usage:   "RentCast API base URL.",
		},
		&cli.DurationFlag{
			Name:    "rentcast-timeout",
			EnvVars: []string{"RENTCAST_TIMEOUT"},
			Value:   rentcast.DefaultTimeout,
			Usage:   "Timeout for RentCast requests.",
		},
	}
}

func getLogger(ctx *cli.Context) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(ctx.String("log-level"))); err != nil {
		return nil, fmt.Errorf("bad log level: %w", err)
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})), nil
}

func getRentcastClient(ctx *cli.Context, l *slog.Logger) rentcast.Client {
	key := ctx.String("rentcast-api-key")
	if key == "" {
		l.Warn("RENTCAST_API_KEY not set; provider requests will fail")
	}
	return rentcast.NewClient(rentcast.Config{
		APIKey:  key,
		BaseURL: ctx.String("rentcast-base-url"),
		Timeout: ctx.Duration("rentcast-timeout"),
	})
}

func serve_http(ctx *cli.Context) error {
	logger, err := getLogger(ctx)
	if err != nil {
		return err
	}
	c := getRentcastClient(ctx, logger)
	sctx, stop := signal.NotifyContext(ctx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	origins := []string{}
	for _, o := range ctx.StringSlice("allowed-origins") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return server.RunHTTPServer(
		sctx,
		logger,
		server.Config{
			ListenPort:     ctx.String("listen-port"),
			AllowedOrigins: origins,
			MaxBytes:       ctx.Int64("max-bytes"),
		},
		c,
	)
}

func run_probe(ctx *cli.Context) error {
	logger, err := getLogger(ctx)
	if err != nil {
		return err
	}
	pr := rentcast.Probe(ctx.Context, getRentcastClient(ctx, logger))
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(pr); err != nil {
		return err
	}
	if !pr.Success {
		return cli.Exit("rentcast probe failed", 1)
	}
	return nil
}

func run_probe_worker(ctx *cli.Context) error {
	logger, err := getLogger(ctx)
	if err != nil {
		return err
	}
	wctx, stop := signal.NotifyContext(ctx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = worker.RunWorkerFunc(
		wctx,
		logger,
		ctx.Duration("interval"),
		worker.MakeProbeWorkerFunc(getRentcastClient(ctx, logger)),
	)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func get_arv(ctx *cli.Context) error {
	b, err := os.ReadFile(ctx.Path("payload"))
	if err != nil {
		return err
	}
	res, err := PostARV(ctx.Context, getDefaultHTTPClient(ctx.Duration("timeout")), ctx.String("server-endpoint"), b)
	if err != nil {
		return err
	}
	fmt.Printf("%s", res)
	return nil
}
