// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package run

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/luxfi/crypto/hash"
	"github.com/luxfi/database/badgerdb"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/luxfi/metric"
	"github.com/luxfi/utils/ulimit"

	"github.com/luxfi/govchain"
	"github.com/luxfi/govchain/vms/govvm"
	"github.com/luxfi/govchain/vms/govvm/builder"
)

const (
	ConfigFileKey = "config-file"

	shutdownTimeout = 5 * time.Second
)

var errMissingChainID = errors.New("chainID must be set when no genesis file is given")

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "run",
		Short: "Runs a governance chain node",
		RunE:  runFunc,
	}
	c.Flags().String(ConfigFileKey, "", "Path to a YAML config file")
	return c
}

func runFunc(c *cobra.Command, _ []string) error {
	path, err := c.Flags().GetString(ConfigFileKey)
	if err != nil {
		return err
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return err
	}

	logger := log.NewLogger("govvm")
	if err := ulimit.Set(ulimit.DefaultFDLimit, logger); err != nil {
		return fmt.Errorf("failed to set fd limit: %w", err)
	}

	ctx, stop := signal.NotifyContext(c.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return Run(ctx, logger, cfg)
}

// Run serves a node until ctx is cancelled.
func Run(ctx context.Context, logger log.Logger, cfg *Config) error {
	var genesisBytes []byte
	if cfg.GenesisFile != "" {
		var err error
		genesisBytes, err = os.ReadFile(cfg.GenesisFile)
		if err != nil {
			return fmt.Errorf("failed to read genesis: %w", err)
		}
	}
	chainID, err := chainID(cfg.ChainID, genesisBytes)
	if err != nil {
		return err
	}
	vmConfig, err := json.Marshal(cfg.VM)
	if err != nil {
		return err
	}

	db, err := badgerdb.New(cfg.DataDir, nil, "", nil)
	if err != nil {
		return fmt.Errorf("failed to open database at %s: %w", cfg.DataDir, err)
	}

	vm := &govvm.VM{}
	err = vm.Initialize(ctx, &govchain.Config{
		ChainID:     chainID,
		Log:         logger,
		DB:          db,
		Genesis:     genesisBytes,
		ConfigBytes: vmConfig,
		Metrics:     metric.NewRegistry(),
	})
	if err != nil {
		_ = db.Close()
		return err
	}
	defer func() {
		if err := vm.Shutdown(context.Background()); err != nil {
			logger.Error("failed to shut down vm", log.Err(err))
		}
	}()
	if err := vm.SetState(ctx, govchain.NormalOp); err != nil {
		return err
	}

	handler, err := newHandler(ctx, vm)
	if err != nil {
		return err
	}
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("serving api",
			log.String("addr", cfg.HTTPAddr),
			log.Stringer("chainID", chainID),
		)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return buildBlocks(gctx, logger, vm, cfg.VM.BlockInterval)
	})
	return g.Wait()
}

func chainID(encoded string, genesisBytes []byte) (ids.ID, error) {
	switch {
	case encoded != "":
		return ids.FromString(encoded)
	case len(genesisBytes) == 0:
		return ids.Empty, errMissingChainID
	default:
		return ids.ID(hash.ComputeHash256Array(genesisBytes)), nil
	}
}

// newHandler routes the chain API under /ext/gov, with process metrics and
// health next to it.
func newHandler(ctx context.Context, vm govchain.VM) (http.Handler, error) {
	handlers, err := vm.CreateHandlers(ctx)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	if err := registry.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, err
	}
	if err := registry.Register(collectors.NewGoCollector()); err != nil {
		return nil, err
	}

	router := mux.NewRouter()
	for endpoint, handler := range handlers {
		router.Handle("/ext/gov"+endpoint, handler)
	}
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		health, err := vm.HealthCheck(r.Context())
		w.Header().Set("Content-Type", "application/json")
		if err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(health)
	})
	return cors.Default().Handler(router), nil
}

// buildBlocks builds a block every interval. Intervals with no pending txs
// produce an empty block unless the VM is configured without them.
func buildBlocks(ctx context.Context, logger log.Logger, vm govchain.ChainVM, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		blkID, err := vm.BuildBlock(ctx)
		switch {
		case ctx.Err() != nil:
			return nil
		case errors.Is(err, builder.ErrNoPendingTxs):
		case err != nil:
			return fmt.Errorf("failed to build block: %w", err)
		default:
			logger.Debug("built block", log.Stringer("blkID", blkID))
		}
	}
}
