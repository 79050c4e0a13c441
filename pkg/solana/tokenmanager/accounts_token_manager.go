package tokenmanager

import (
	"bytes"
	"crypto/ed25519"
	"fmt"
	"strings"
	"time"

	"github.com/mr-tron/base58"

	"github.com/code-payments/code-token-manager/pkg/solana/binary"
)

const (
	// Fixed portion of the account. Optional keys are counted at their
	// smallest (tag only) and invalidators at an empty vector.
	MinTokenManagerAccountSize = (8 + // discriminator
		1 + // version
		1 + // bump
		8 + // count
		1 + // num_invalidators
		32 + // issuer
		32 + // mint
		8 + // amount
		1 + // kind
		1 + // state
		8 + // state_changed_at
		1 + // invalidation_type
		32 + // recipient_token_account
		1 + // receipt_mint
		1 + // claim_approver
		1 + // transfer_authority
		4) // invalidators
)

var TokenManagerAccountDiscriminator = accountDiscriminator("TokenManager")

type TokenManagerAccount struct {
	Version               uint8
	Bump                  uint8
	Count                 uint64
	NumInvalidators       uint8
	Issuer                ed25519.PublicKey
	Mint                  ed25519.PublicKey
	Amount                uint64
	Kind                  TokenManagerKind
	State                 TokenManagerState
	StateChangedAt        time.Time
	InvalidationType      InvalidationType
	RecipientTokenAccount ed25519.PublicKey
	ReceiptMint           ed25519.PublicKey // optional
	ClaimApprover         ed25519.PublicKey // optional
	TransferAuthority     ed25519.PublicKey // optional
	Invalidators          []ed25519.PublicKey
}

func (obj *TokenManagerAccount) Unmarshal(data []byte) error {
	if len(data) < MinTokenManagerAccountSize {
		return ErrInvalidAccountData
	}

	var offset int

	var discriminator []byte
	binary.GetDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, TokenManagerAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	var kind, state, invalidationType uint8
	var stateChangedAt int64

	binary.GetUint8(data, &obj.Version, &offset)
	binary.GetUint8(data, &obj.Bump, &offset)
	binary.GetUint64(data, &obj.Count, &offset)
	binary.GetUint8(data, &obj.NumInvalidators, &offset)
	binary.GetKey32(data, &obj.Issuer, &offset)
	binary.GetKey32(data, &obj.Mint, &offset)
	binary.GetUint64(data, &obj.Amount, &offset)
	binary.GetUint8(data, &kind, &offset)
	binary.GetUint8(data, &state, &offset)
	binary.GetInt64(data, &stateChangedAt, &offset)
	binary.GetUint8(data, &invalidationType, &offset)
	binary.GetKey32(data, &obj.RecipientTokenAccount, &offset)

	obj.Kind = TokenManagerKind(kind)
	obj.State = TokenManagerState(state)
	obj.StateChangedAt = time.Unix(stateChangedAt, 0).UTC()
	obj.InvalidationType = InvalidationType(invalidationType)

	for _, dst := range []*ed25519.PublicKey{&obj.ReceiptMint, &obj.ClaimApprover, &obj.TransferAuthority} {
		if offset+1 > len(data) {
			return ErrInvalidAccountData
		}
		if data[offset] == 1 && offset+1+ed25519.PublicKeySize > len(data) {
			return ErrInvalidAccountData
		}
		binary.GetOptionalKey32(data, dst, &offset)
	}

	if offset+4 > len(data) {
		return ErrInvalidAccountData
	}
	var numInvalidators uint32
	binary.GetUint32(data, &numInvalidators, &offset)
	if uint64(offset)+uint64(numInvalidators)*ed25519.PublicKeySize > uint64(len(data)) {
		return ErrInvalidAccountData
	}

	obj.Invalidators = make([]ed25519.PublicKey, numInvalidators)
	for i := range obj.Invalidators {
		binary.GetKey32(data, &obj.Invalidators[i], &offset)
	}

	return nil
}

func (obj *TokenManagerAccount) String() string {
	optional := func(key ed25519.PublicKey) string {
		if key == nil {
			return "<nil>"
		}
		return base58.Encode(key)
	}

	invalidators := make([]string, len(obj.Invalidators))
	for i, invalidator := range obj.Invalidators {
		invalidators[i] = base58.Encode(invalidator)
	}

	return fmt.Sprintf(
		"TokenManagerAccount{version=%d,bump=%d,count=%d,num_invalidators=%d,issuer=%s,mint=%s,amount=%d,kind=%s,state=%s,state_changed_at=%s,invalidation_type=%s,recipient_token_account=%s,receipt_mint=%s,claim_approver=%s,transfer_authority=%s,invalidators=[%s]}",
		obj.Version,
		obj.Bump,
		obj.Count,
		obj.NumInvalidators,
		base58.Encode(obj.Issuer),
		base58.Encode(obj.Mint),
		obj.Amount,
		obj.Kind,
		obj.State,
		obj.StateChangedAt.Format(time.RFC3339),
		obj.InvalidationType,
		base58.Encode(obj.RecipientTokenAccount),
		optional(obj.ReceiptMint),
		optional(obj.ClaimApprover),
		optional(obj.TransferAuthority),
		strings.Join(invalidators, ","),
	)
}
