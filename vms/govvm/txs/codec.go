// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"errors"
	"math"

	"github.com/luxfi/codec"
	"github.com/luxfi/codec/linearcodec"
)

const CodecVersion = 0

var Codec codec.Manager

func init() {
	Codec = codec.NewManager(math.MaxInt)
	lc := linearcodec.NewDefault()

	// Registration order fixes the type ids on the wire. Append only.
	err := errors.Join(
		lc.RegisterType(&JoinTx{}),
		lc.RegisterType(&LeaveTx{}),
		lc.RegisterType(&CreateProposalTx{}),
		lc.RegisterType(&CommitVoteTx{}),
		lc.RegisterType(&RevealVoteTx{}),
		lc.RegisterType(&CloseVoteTx{}),
		lc.RegisterType(&CloseRevealTx{}),
		lc.RegisterType(&RegisterIdentityTx{}),
		Codec.RegisterCodec(CodecVersion, lc),
	)
	if err != nil {
		panic(err)
	}
}
