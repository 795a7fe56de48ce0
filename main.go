// backend/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gewnthar/greenskies/backend/config"
	"github.com/gewnthar/greenskies/backend/handlers"
	"github.com/gewnthar/greenskies/backend/refdata"
	"github.com/gewnthar/greenskies/backend/services"
)

const usage = `usage: greenskies [-config path] <command> [flags]

commands:
  serve      run the HTTP API
  calc       estimate one flight and record it
  compare    compare every aircraft on one route
  history    list recorded flights (-replay N re-runs entry N)
  export     copy the history ledger (-o path, -xlsx)
  aircraft   list loaded aircraft
  airports   list loaded airports
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type app struct {
	cfg    *config.Config
	calc   *services.Calculator
	policy services.InputPolicy
	logger *slog.Logger
	out    io.Writer
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("greenskies", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }
	configPath := fs.String("config", "", "path to config.yaml")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading configuration: %v\n", err)
		return 1
	}
	logger := config.NewLogger(cfg.Logging, stderr)

	calc, err := services.NewFromConfig(cfg, logger)
	if err != nil {
		if errors.Is(err, refdata.ErrMissingDataSource) {
			logger.Error("reference data missing, cannot start", "error", err)
		} else {
			logger.Error("startup failed", "error", err)
		}
		return 1
	}

	a := &app{
		cfg:    cfg,
		calc:   calc,
		policy: services.InputPolicy{MaxSAFBlendPercent: cfg.Input.MaxSAFBlendPercent},
		logger: logger,
		out:    stdout,
	}

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "serve":
		err = a.serve()
	case "calc":
		err = a.runCalc(rest)
	case "compare":
		err = a.runCompare(rest)
	case "history":
		err = a.runHistory(rest)
	case "export":
		err = a.runExport(rest)
	case "aircraft":
		err = a.runAircraft()
	case "airports":
		err = a.runAirports()
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", cmd)
		fs.Usage()
		return 2
	}

	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func (a *app) serve() error {
	h := handlers.NewHandler(a.calc, a.policy, a.logger)
	srv := &http.Server{
		Addr:         ":" + a.cfg.Server.Port,
		Handler:      h.Routes(),
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server starting", "addr", srv.Addr, "history", a.cfg.DataFiles.History)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
