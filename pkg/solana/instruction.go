package solana

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

// AccountMeta represents the account information required
// for building transactions.
type AccountMeta struct {
	PublicKey  ed25519.PublicKey
	IsSigner   bool
	IsWritable bool
}

// NewAccountMeta creates a new AccountMeta representing a writable
// account.
func NewAccountMeta(pub ed25519.PublicKey, isSigner bool) AccountMeta {
	return AccountMeta{
		PublicKey:  pub,
		IsSigner:   isSigner,
		IsWritable: true,
	}
}

// NewReadonlyAccountMeta creates a new AccountMeta representing a readonly
// account.
func NewReadonlyAccountMeta(pub ed25519.PublicKey, isSigner bool) AccountMeta {
	return AccountMeta{
		PublicKey:  pub,
		IsSigner:   isSigner,
		IsWritable: false,
	}
}

// Equal reports whether both metas reference the same key with the same roles.
func (m AccountMeta) Equal(other AccountMeta) bool {
	return bytes.Equal(m.PublicKey, other.PublicKey) &&
		m.IsSigner == other.IsSigner &&
		m.IsWritable == other.IsWritable
}

func (m AccountMeta) String() string {
	return fmt.Sprintf(
		"AccountMeta{key=%s,signer=%t,writable=%t}",
		base58.Encode(m.PublicKey),
		m.IsSigner,
		m.IsWritable,
	)
}

// Instruction represents a transaction instruction. Accounts are positional:
// the target program indexes them in the order given.
type Instruction struct {
	Program  ed25519.PublicKey
	Accounts []AccountMeta
	Data     []byte
}

// NewInstruction creates a new instruction.
func NewInstruction(program ed25519.PublicKey, data []byte, accounts ...AccountMeta) Instruction {
	return Instruction{
		Program:  program,
		Data:     data,
		Accounts: accounts,
	}
}

// ToSolanaGo converts the instruction into its github.com/gagliardetto/solana-go
// equivalent so it can be handed to a transaction builder and signer.
func (i Instruction) ToSolanaGo() solanago.Instruction {
	accounts := make(solanago.AccountMetaSlice, len(i.Accounts))
	for idx, accountMeta := range i.Accounts {
		accounts[idx] = solanago.NewAccountMeta(
			solanago.PublicKeyFromBytes(accountMeta.PublicKey),
			accountMeta.IsWritable,
			accountMeta.IsSigner,
		)
	}

	data := make([]byte, len(i.Data))
	copy(data, i.Data)

	return solanago.NewInstruction(solanago.PublicKeyFromBytes(i.Program), accounts, data)
}

// InstructionFromSolanaGo converts a github.com/gagliardetto/solana-go
// instruction back into an Instruction.
func InstructionFromSolanaGo(ix solanago.Instruction) (Instruction, error) {
	data, err := ix.Data()
	if err != nil {
		return Instruction{}, err
	}

	program := ix.ProgramID()

	accounts := make([]AccountMeta, len(ix.Accounts()))
	for idx, accountMeta := range ix.Accounts() {
		key := accountMeta.PublicKey
		accounts[idx] = AccountMeta{
			PublicKey:  ed25519.PublicKey(key[:]),
			IsSigner:   accountMeta.IsSigner,
			IsWritable: accountMeta.IsWritable,
		}
	}

	return Instruction{
		Program:  ed25519.PublicKey(program[:]),
		Accounts: accounts,
		Data:     data,
	}, nil
}
