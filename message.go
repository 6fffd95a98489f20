// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package govchain

// Message signals from the VM to its host.
type Message struct {
	Type MessageType
	// Content is optional detail, such as the number of pending txs.
	Content []byte
}

// MessageType identifies the message kind
type MessageType uint32

const (
	// PendingTxs indicates there are pending transactions to process
	PendingTxs MessageType = iota
	// Shutdown indicates the VM is stopping and will not signal again
	Shutdown
)

// String returns the string representation of the message type
func (m MessageType) String() string {
	switch m {
	case PendingTxs:
		return "PendingTxs"
	case Shutdown:
		return "Shutdown"
	default:
		return "Unknown"
	}
}
