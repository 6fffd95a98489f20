// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package govchain defines the contracts between a governance VM and the node
// that hosts it.
package govchain

import (
	"context"
	"net/http"

	"github.com/luxfi/database"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/luxfi/metric"
)

// VM is the lifecycle every hosted VM implements.
type VM interface {
	// Initialize prepares the VM to run on db. Genesis is applied only when
	// db holds no accepted block.
	Initialize(context.Context, *Config) error

	// Shutdown cleanly stops the VM
	Shutdown(context.Context) error

	Version(context.Context) (string, error)

	// SetState transitions the VM to the specified state
	SetState(context.Context, State) error

	HealthCheck(context.Context) (any, error)

	// CreateHandlers returns the HTTP handlers to serve, keyed by path
	// extension.
	CreateHandlers(context.Context) (map[string]http.Handler, error)
}

// ChainVM is a VM that produces its own blocks.
type ChainVM interface {
	VM

	// WaitForEvent blocks until the VM wants the host to act.
	WaitForEvent(context.Context) (Message, error)

	// BuildBlock builds and accepts the next block.
	BuildBlock(context.Context) (ids.ID, error)

	LastAccepted(context.Context) (ids.ID, error)
}

// Config is what the host provides at initialization.
type Config struct {
	ChainID     ids.ID
	Log         log.Logger
	DB          database.Database
	Genesis     []byte
	ConfigBytes []byte
	Metrics     metric.Registry
}
