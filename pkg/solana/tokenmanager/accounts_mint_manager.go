package tokenmanager

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/code-payments/code-token-manager/pkg/solana/binary"
)

const (
	MintManagerAccountSize = (8 + // discriminator
		1 + // bump
		32 + // initializer
		8) // token_managers
)

var MintManagerAccountDiscriminator = accountDiscriminator("MintManager")

type MintManagerAccount struct {
	Bump          uint8
	Initializer   ed25519.PublicKey
	TokenManagers uint64
}

func (obj *MintManagerAccount) Unmarshal(data []byte) error {
	if len(data) < MintManagerAccountSize {
		return ErrInvalidAccountData
	}

	var offset int

	var discriminator []byte
	binary.GetDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, MintManagerAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	binary.GetUint8(data, &obj.Bump, &offset)
	binary.GetKey32(data, &obj.Initializer, &offset)
	binary.GetUint64(data, &obj.TokenManagers, &offset)

	return nil
}

func (obj *MintManagerAccount) String() string {
	return fmt.Sprintf(
		"MintManagerAccount{bump=%d,initializer=%s,token_managers=%d}",
		obj.Bump,
		base58.Encode(obj.Initializer),
		obj.TokenManagers,
	)
}
