package tokenmanager

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/code-payments/code-token-manager/pkg/solana/binary"
)

const (
	MintCounterAccountSize = (8 + // discriminator
		1 + // bump
		32 + // mint
		8) // count
)

var MintCounterAccountDiscriminator = accountDiscriminator("MintCounter")

type MintCounterAccount struct {
	Bump  uint8
	Mint  ed25519.PublicKey
	Count uint64
}

func (obj *MintCounterAccount) Unmarshal(data []byte) error {
	if len(data) < MintCounterAccountSize {
		return ErrInvalidAccountData
	}

	var offset int

	var discriminator []byte
	binary.GetDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, MintCounterAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	binary.GetUint8(data, &obj.Bump, &offset)
	binary.GetKey32(data, &obj.Mint, &offset)
	binary.GetUint64(data, &obj.Count, &offset)

	return nil
}

func (obj *MintCounterAccount) String() string {
	return fmt.Sprintf(
		"MintCounterAccount{bump=%d,mint=%s,count=%d}",
		obj.Bump,
		base58.Encode(obj.Mint),
		obj.Count,
	)
}
