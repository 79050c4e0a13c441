package tokenmanager

import (
	"crypto/ed25519"
	"errors"

	"github.com/mr-tron/base58"
	"github.com/sirupsen/logrus"
)

var (
	// ErrUnknownOperation is returned when an instruction name or
	// discriminator isn't declared in the program's IDL.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrSchemaMismatch is returned when accounts or arguments don't match
	// the shape the IDL declares for an instruction.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrInvalidIdl is returned when a Program is configured without a
	// usable interface description.
	ErrInvalidIdl = errors.New("invalid idl")

	ErrInvalidProgram         = errors.New("invalid program id")
	ErrInvalidAccountData     = errors.New("unexpected account data")
	ErrInvalidInstructionData = errors.New("unexpected instruction data")
)

var (
	PROGRAM_ADDRESS = mustBase58Decode("mgr99QFMYByTqGPWmNqunV7vBLmWWXdSrHUfV8Jf3JM")
	PROGRAM_ID      = ed25519.PublicKey(PROGRAM_ADDRESS)
)

var (
	SYSTEM_PROGRAM_ID    = ed25519.PublicKey(mustBase58Decode("11111111111111111111111111111111"))
	SPL_TOKEN_PROGRAM_ID = ed25519.PublicKey(mustBase58Decode("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"))
)

// Program is an immutable handle on one deployment of the token manager
// program: its address and the IDL describing its instructions. Every
// derivation and instruction is scoped to it, and it's safe for concurrent
// use.
type Program struct {
	log *logrus.Entry
	id  ed25519.PublicKey
	idl *Idl
}

// NewProgram returns a Program for the given program address and IDL.
func NewProgram(id ed25519.PublicKey, idl *Idl) (*Program, error) {
	if len(id) != ed25519.PublicKeySize {
		return nil, ErrInvalidProgram
	}
	if idl == nil {
		return nil, ErrInvalidIdl
	}

	programID := make(ed25519.PublicKey, ed25519.PublicKeySize)
	copy(programID, id)

	return &Program{
		log: logrus.StandardLogger().WithFields(logrus.Fields{
			"type":    "solana/tokenmanager",
			"program": base58.Encode(programID),
		}),
		id:  programID,
		idl: idl,
	}, nil
}

// DefaultProgram returns the mainnet deployment with the bundled IDL.
func DefaultProgram() *Program {
	p, err := NewProgram(PROGRAM_ID, DefaultIdl())
	if err != nil {
		panic(err)
	}
	return p
}

// ID returns a copy of the program address.
func (p *Program) ID() ed25519.PublicKey {
	id := make(ed25519.PublicKey, ed25519.PublicKeySize)
	copy(id, p.id)
	return id
}

// Idl returns the interface description the program was configured with.
func (p *Program) Idl() *Idl {
	return p.idl
}
