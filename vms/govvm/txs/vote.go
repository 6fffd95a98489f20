// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"github.com/luxfi/crypto/secp256k1"
	"github.com/luxfi/ids"

	"github.com/luxfi/govchain/utils/wrappers"
	"github.com/luxfi/govchain/vms/govvm/state"
)

const votePayloadLen = wrappers.ByteLen + wrappers.IntLen

// VotePayload is the message a vote commitment signs: the choice byte
// followed by the big-endian salt.
func VotePayload(vote state.Vote, salt uint32) []byte {
	p := wrappers.Packer{MaxSize: votePayloadLen}
	p.PackByte(byte(vote))
	p.PackInt(salt)
	return p.Bytes
}

// SignVote produces the commitment signature a member submits with
// CommitVoteTx.
func SignVote(key *secp256k1.PrivateKey, vote state.Vote, salt uint32) ([]byte, error) {
	return key.Sign(VotePayload(vote, salt))
}

// VerifyVote reports whether sig is signer's signature over
// VotePayload(vote, salt).
func VerifyVote(signer ids.ShortID, vote state.Vote, salt uint32, sig []byte) bool {
	pk, err := secp256k1.RecoverPublicKey(VotePayload(vote, salt), sig)
	if err != nil {
		return false
	}
	return pk.Address() == signer
}
