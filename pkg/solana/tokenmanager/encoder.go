package tokenmanager

import (
	"bytes"
	"crypto/ed25519"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/code-token-manager/pkg/solana"
	"github.com/code-payments/code-token-manager/pkg/solana/binary"
)

// DecodedArg is one flattened argument, named by its path in the IDL
// (for example "ix.amount").
type DecodedArg struct {
	Name  string
	Value interface{}
}

type DecodedInstruction struct {
	Name string
	Args []DecodedArg
}

// Arg returns the value of the named argument.
func (d *DecodedInstruction) Arg(name string) (interface{}, bool) {
	for _, arg := range d.Args {
		if arg.Name == name {
			return arg.Value, true
		}
	}
	return nil, false
}

// Encode assembles an instruction for the named IDL instruction.
//
// Accounts must match the declared schema exactly, in count, order and
// roles, and are passed through as-is. Args are the flattened leaves of the
// declared arguments in Borsh order: uint8 for u8, uint64 for u64,
// ed25519.PublicKey for publicKey and the typed EnumValue (or a raw uint8)
// for enums.
func (p *Program) Encode(name string, accounts []solana.AccountMeta, args ...interface{}) (solana.Instruction, error) {
	ix, ok := p.idl.instruction(name)
	if !ok {
		return solana.Instruction{}, errors.Wrapf(ErrUnknownOperation, "instruction %q", name)
	}

	if len(accounts) != len(ix.accounts) {
		return solana.Instruction{}, errors.Wrapf(ErrSchemaMismatch, "%s: expected %d accounts, got %d", name, len(ix.accounts), len(accounts))
	}
	for i, expected := range ix.accounts {
		actual := accounts[i]
		if len(actual.PublicKey) != ed25519.PublicKeySize {
			return solana.Instruction{}, errors.Wrapf(ErrSchemaMismatch, "%s: account %s is not a public key", name, expected.Name)
		}
		if actual.IsWritable != expected.IsMut || actual.IsSigner != expected.IsSigner {
			return solana.Instruction{}, errors.Wrapf(
				ErrSchemaMismatch,
				"%s: account %s expects writable=%t signer=%t",
				name,
				expected.Name,
				expected.IsMut,
				expected.IsSigner,
			)
		}
	}

	if len(args) != len(ix.args) {
		return solana.Instruction{}, errors.Wrapf(ErrSchemaMismatch, "%s: expected %d args, got %d", name, len(ix.args), len(args))
	}

	var offset int
	data := make([]byte, len(ix.discriminator)+ix.argsSize)

	binary.PutDiscriminator(data, ix.discriminator, &offset)
	for i := range ix.args {
		if err := ix.args[i].put(data, args[i], &offset); err != nil {
			return solana.Instruction{}, errors.Wrap(err, name)
		}
	}

	metas := make([]solana.AccountMeta, len(accounts))
	copy(metas, accounts)

	p.log.WithFields(logrus.Fields{
		"method":      "Encode",
		"instruction": name,
		"accounts":    len(metas),
		"data_size":   len(data),
	}).Trace("encoded instruction")

	return solana.Instruction{
		Program:  p.ID(),
		Accounts: metas,
		Data:     data,
	}, nil
}

// Decode parses instruction data produced for this program back into its
// IDL name and flattened arguments.
func (p *Program) Decode(data []byte) (*DecodedInstruction, error) {
	if len(data) < binary.DiscriminatorSize {
		return nil, errors.Wrap(ErrSchemaMismatch, "instruction data shorter than discriminator")
	}

	ix, ok := p.idl.instructionByDiscriminator(data[:binary.DiscriminatorSize])
	if !ok {
		return nil, errors.Wrapf(ErrUnknownOperation, "discriminator %v", data[:binary.DiscriminatorSize])
	}

	if len(data) != binary.DiscriminatorSize+ix.argsSize {
		return nil, errors.Wrapf(ErrSchemaMismatch, "%s: expected %d bytes of data, got %d", ix.name, binary.DiscriminatorSize+ix.argsSize, len(data))
	}

	decoded := &DecodedInstruction{
		Name: ix.name,
		Args: make([]DecodedArg, len(ix.args)),
	}

	offset := binary.DiscriminatorSize
	for i := range ix.args {
		value, err := ix.args[i].get(data, &offset)
		if err != nil {
			return nil, errors.Wrap(err, ix.name)
		}
		decoded.Args[i] = DecodedArg{Name: ix.args[i].path, Value: value}
	}

	return decoded, nil
}

// DecodeInstruction is Decode with the program and account schema checked
// as well.
func (p *Program) DecodeInstruction(ix solana.Instruction) (*DecodedInstruction, error) {
	if !bytes.Equal(ix.Program, p.id) {
		return nil, ErrInvalidProgram
	}

	decoded, err := p.Decode(ix.Data)
	if err != nil {
		return nil, err
	}

	schema, _ := p.idl.instruction(decoded.Name)
	if len(ix.Accounts) != len(schema.accounts) {
		return nil, errors.Wrapf(ErrSchemaMismatch, "%s: expected %d accounts, got %d", decoded.Name, len(schema.accounts), len(ix.Accounts))
	}
	for i, expected := range schema.accounts {
		if ix.Accounts[i].IsWritable != expected.IsMut || ix.Accounts[i].IsSigner != expected.IsSigner {
			return nil, errors.Wrapf(ErrSchemaMismatch, "%s: account %s has unexpected roles", decoded.Name, expected.Name)
		}
	}

	return decoded, nil
}

// leaves returns the decoded argument values in order, requiring exactly n.
func (d *DecodedInstruction) leaves(n int) ([]interface{}, error) {
	if len(d.Args) != n {
		return nil, errors.Wrapf(ErrSchemaMismatch, "%s: expected %d args, got %d", d.Name, n, len(d.Args))
	}

	values := make([]interface{}, n)
	for i, arg := range d.Args {
		values[i] = arg.Value
	}
	return values, nil
}

func uint64Arg(v interface{}) (uint64, error) {
	typed, ok := v.(uint64)
	if !ok {
		return 0, errors.Wrapf(ErrSchemaMismatch, "expected u64, got %T", v)
	}
	return typed, nil
}

func publicKeyArg(v interface{}) (ed25519.PublicKey, error) {
	typed, ok := v.(ed25519.PublicKey)
	if !ok || len(typed) != ed25519.PublicKeySize {
		return nil, errors.Wrapf(ErrSchemaMismatch, "expected publicKey, got %T", v)
	}
	return typed, nil
}

// uint8Arg accepts a raw u8 or, when enumName is set, a decoded enum of that
// name. Either IDL shape for an enum tag decodes the same way.
func uint8Arg(v interface{}, enumName string) (uint8, error) {
	switch typed := v.(type) {
	case uint8:
		return typed, nil
	case EnumValue:
		if len(enumName) > 0 && typed.EnumName() == enumName {
			return typed.Value(), nil
		}
	}
	return 0, errors.Wrapf(ErrSchemaMismatch, "expected u8 %s, got %T", enumName, v)
}

// decodeAs decodes ix as the named instruction with the account count the
// typed decoders index into.
func (p *Program) decodeAs(ix solana.Instruction, name string, numAccounts int) (*DecodedInstruction, error) {
	decoded, err := p.DecodeInstruction(ix)
	if err != nil {
		return nil, err
	}
	if decoded.Name != name {
		return nil, errors.Wrapf(ErrInvalidInstructionData, "expected %s, got %s", name, decoded.Name)
	}
	if len(ix.Accounts) != numAccounts {
		return nil, errors.Wrapf(ErrSchemaMismatch, "%s: expected %d accounts, got %d", name, numAccounts, len(ix.Accounts))
	}
	return decoded, nil
}

// checkDerived verifies that actual is the address derived for tag and keys.
func (p *Program) checkDerived(actual ed25519.PublicKey, tag SeedTag, keys ...ed25519.PublicKey) error {
	expected, err := p.FindAddress(tag, keys...)
	if err != nil {
		return err
	}
	if !bytes.Equal(expected.Address, actual) {
		return errors.Wrapf(ErrInvalidInstructionData, "%s account is not the derived address", tag)
	}
	return nil
}
