// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package units

// Denominations of value. The native currency has 12 decimals.
const (
	Pico  uint64 = 1
	Nano  uint64 = 1000 * Pico
	Micro uint64 = 1000 * Nano
	Milli uint64 = 1000 * Micro
	Unit  uint64 = 1000 * Milli
)

// Sizes in bytes
const (
	KiB = 1024
	MiB = 1024 * KiB
)
