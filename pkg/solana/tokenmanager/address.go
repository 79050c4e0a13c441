package tokenmanager

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/code-token-manager/pkg/solana"
)

// SeedTag is the fixed prefix seed that namespaces each kind of program
// derived account.
type SeedTag string

const (
	SeedTokenManager       SeedTag = "token-manager"
	SeedMintCounter        SeedTag = "mint-counter"
	SeedMintManager        SeedTag = "mint-manager"
	SeedClaimReceipt       SeedTag = "claim-receipt"
	SeedTransferReceipt    SeedTag = "transfer-receipt"
	SeedReceiptMintManager SeedTag = "receipt-mint-manager"
)

// Number of public key components that follow each tag in the seeds.
var seedKeyCounts = map[SeedTag]int{
	SeedTokenManager:       1, // mint
	SeedMintCounter:        1, // mint
	SeedMintManager:        1, // mint
	SeedClaimReceipt:       2, // token manager, recipient
	SeedTransferReceipt:    1, // token manager
	SeedReceiptMintManager: 0,
}

// DerivedAddress is a program derived address and the canonical bump that
// produced it.
type DerivedAddress struct {
	Address ed25519.PublicKey
	Bump    uint8
}

func (a DerivedAddress) String() string {
	return fmt.Sprintf("DerivedAddress{address=%s,bump=%d}", base58.Encode(a.Address), a.Bump)
}

// FindAddress derives the address for tag and its key components. Each tag
// takes a fixed number of keys; anything else is ErrSchemaMismatch.
func (p *Program) FindAddress(tag SeedTag, keys ...ed25519.PublicKey) (DerivedAddress, error) {
	expectedKeys, ok := seedKeyCounts[tag]
	if !ok {
		return DerivedAddress{}, errors.Wrapf(ErrSchemaMismatch, "unknown seed tag %q", tag)
	}
	if len(keys) != expectedKeys {
		return DerivedAddress{}, errors.Wrapf(ErrSchemaMismatch, "seed tag %q takes %d keys, got %d", tag, expectedKeys, len(keys))
	}

	seeds := make([][]byte, 0, len(keys)+1)
	seeds = append(seeds, []byte(tag))
	for _, key := range keys {
		if len(key) != ed25519.PublicKeySize {
			return DerivedAddress{}, errors.Wrapf(ErrSchemaMismatch, "seed tag %q: invalid public key", tag)
		}
		seeds = append(seeds, key)
	}

	address, bump, err := solana.FindProgramAddressAndBump(p.id, seeds...)
	if err != nil {
		if err == solana.ErrDerivationExhausted {
			p.log.WithFields(logrus.Fields{
				"method": "FindAddress",
				"seed":   string(tag),
			}).Warn("program address derivation exhausted all bumps")
		}
		return DerivedAddress{}, errors.Wrapf(err, "error deriving %s address", tag)
	}

	return DerivedAddress{Address: address, Bump: bump}, nil
}

type GetTokenManagerAddressArgs struct {
	Mint ed25519.PublicKey
}

func (p *Program) GetTokenManagerAddress(args *GetTokenManagerAddressArgs) (ed25519.PublicKey, uint8, error) {
	return p.findAddress(SeedTokenManager, args.Mint)
}

type GetMintCounterAddressArgs struct {
	Mint ed25519.PublicKey
}

func (p *Program) GetMintCounterAddress(args *GetMintCounterAddressArgs) (ed25519.PublicKey, uint8, error) {
	return p.findAddress(SeedMintCounter, args.Mint)
}

type GetMintManagerAddressArgs struct {
	Mint ed25519.PublicKey
}

func (p *Program) GetMintManagerAddress(args *GetMintManagerAddressArgs) (ed25519.PublicKey, uint8, error) {
	return p.findAddress(SeedMintManager, args.Mint)
}

// GetClaimReceiptAddressArgs keys a claim receipt by the token manager
// address, not the mint, followed by the recipient.
type GetClaimReceiptAddressArgs struct {
	TokenManager ed25519.PublicKey
	Recipient    ed25519.PublicKey
}

func (p *Program) GetClaimReceiptAddress(args *GetClaimReceiptAddressArgs) (ed25519.PublicKey, uint8, error) {
	return p.findAddress(SeedClaimReceipt, args.TokenManager, args.Recipient)
}

type GetTransferReceiptAddressArgs struct {
	TokenManager ed25519.PublicKey
}

func (p *Program) GetTransferReceiptAddress(args *GetTransferReceiptAddressArgs) (ed25519.PublicKey, uint8, error) {
	return p.findAddress(SeedTransferReceipt, args.TokenManager)
}

func (p *Program) GetReceiptMintManagerAddress() (ed25519.PublicKey, uint8, error) {
	return p.findAddress(SeedReceiptMintManager)
}

func (p *Program) findAddress(tag SeedTag, keys ...ed25519.PublicKey) (ed25519.PublicKey, uint8, error) {
	derived, err := p.FindAddress(tag, keys...)
	if err != nil {
		return nil, 0, err
	}
	return derived.Address, derived.Bump, nil
}
