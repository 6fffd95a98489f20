// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package identity tracks which accounts hold a verified identity.
package identity

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/luxfi/database"
	"github.com/luxfi/database/prefixdb"
	"github.com/luxfi/ids"
)

// MaxNameLen bounds the display name attached to an identity.
const MaxNameLen = 64

var (
	_ Registry = (*DBRegistry)(nil)
	_ Writer   = (*DBRegistry)(nil)

	ErrInvalidName = errors.New("invalid identity name")

	identityPrefix = []byte("identity")
)

// Registry is the identity-existence oracle.
type Registry interface {
	Exists(addr ids.ShortID) (bool, error)
}

// Writer registers identities.
type Writer interface {
	Set(addr ids.ShortID, name string) error
}

// DBRegistry stores display names keyed by account.
type DBRegistry struct {
	db database.Database
}

func New(db database.Database) *DBRegistry {
	return &DBRegistry{db: prefixdb.New(identityPrefix, db)}
}

func (r *DBRegistry) Exists(addr ids.ShortID) (bool, error) {
	return r.db.Has(addr[:])
}

// Set registers or renames the identity of addr.
func (r *DBRegistry) Set(addr ids.ShortID, name string) error {
	if err := VerifyName(name); err != nil {
		return err
	}
	return r.db.Put(addr[:], []byte(name))
}

// Name returns the display name of addr, or database.ErrNotFound.
func (r *DBRegistry) Name(addr ids.ShortID) (string, error) {
	name, err := r.db.Get(addr[:])
	return string(name), err
}

func VerifyName(name string) error {
	switch {
	case len(name) == 0:
		return fmt.Errorf("%w: empty", ErrInvalidName)
	case len(name) > MaxNameLen:
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrInvalidName, len(name), MaxNameLen)
	case !utf8.ValidString(name):
		return fmt.Errorf("%w: not utf-8", ErrInvalidName)
	default:
		return nil
	}
}
