package tokenmanager

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/code-payments/code-token-manager/pkg/solana"
)

const (
	InitInstructionName = "init"

	DefaultNumInvalidators = 1
)

const (
	InitInstructionArgsSize = (8 + // amount
		1 + // kind
		1 + // invalidation_type
		1) // num_invalidators
)

type InitInstructionArgs struct {
	Amount           uint64
	Kind             TokenManagerKind
	InvalidationType InvalidationType

	// Zero is treated as DefaultNumInvalidators.
	NumInvalidators uint8
}

type InitInstructionAccounts struct {
	Mint               ed25519.PublicKey
	Issuer             ed25519.PublicKey
	Payer              ed25519.PublicKey
	IssuerTokenAccount ed25519.PublicKey
}

// NewInitInstruction creates the token manager for a mint. The token
// manager address is returned alongside the instruction.
func (p *Program) NewInitInstruction(
	accounts *InitInstructionAccounts,
	args *InitInstructionArgs,
) (solana.Instruction, ed25519.PublicKey, error) {
	numInvalidators := args.NumInvalidators
	if numInvalidators == 0 {
		numInvalidators = DefaultNumInvalidators
	}

	var tokenManager, mintCounter ed25519.PublicKey

	var eg errgroup.Group
	eg.Go(func() error {
		var err error
		tokenManager, _, err = p.GetTokenManagerAddress(&GetTokenManagerAddressArgs{
			Mint: accounts.Mint,
		})
		return err
	})
	eg.Go(func() error {
		var err error
		mintCounter, _, err = p.GetMintCounterAddress(&GetMintCounterAddressArgs{
			Mint: accounts.Mint,
		})
		return err
	})
	if err := eg.Wait(); err != nil {
		return solana.Instruction{}, nil, err
	}

	ix, err := p.Encode(
		InitInstructionName,
		[]solana.AccountMeta{
			{
				PublicKey:  tokenManager,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  mintCounter,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Mint,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Issuer,
				IsWritable: false,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.Payer,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.IssuerTokenAccount,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  SYSTEM_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
		},
		args.Amount,
		args.Kind,
		args.InvalidationType,
		numInvalidators,
	)
	if err != nil {
		return solana.Instruction{}, nil, err
	}

	p.log.WithFields(logrus.Fields{
		"method":            "NewInitInstruction",
		"mint":              base58.Encode(accounts.Mint),
		"token_manager":     base58.Encode(tokenManager),
		"kind":              args.Kind.String(),
		"invalidation_type": args.InvalidationType.String(),
	}).Debug("built instruction")

	return ix, tokenManager, nil
}

// InitInstructionFromInstruction recovers the args and accounts of an init
// instruction, checking both derived accounts against the mint.
func (p *Program) InitInstructionFromInstruction(ix solana.Instruction) (*InitInstructionArgs, *InitInstructionAccounts, error) {
	decoded, err := p.decodeAs(ix, InitInstructionName, 7)
	if err != nil {
		return nil, nil, err
	}

	var args InitInstructionArgs
	var accounts InitInstructionAccounts

	// Instruction Args, positionally: amount, kind, invalidation_type, num_invalidators
	values, err := decoded.leaves(4)
	if err != nil {
		return nil, nil, err
	}

	if args.Amount, err = uint64Arg(values[0]); err != nil {
		return nil, nil, errors.Wrap(err, "amount")
	}
	kind, err := uint8Arg(values[1], TokenManagerKindUnknown.EnumName())
	if err != nil {
		return nil, nil, errors.Wrap(err, "kind")
	}
	invalidationType, err := uint8Arg(values[2], InvalidationTypeUnknown.EnumName())
	if err != nil {
		return nil, nil, errors.Wrap(err, "invalidation_type")
	}
	if args.NumInvalidators, err = uint8Arg(values[3], ""); err != nil {
		return nil, nil, errors.Wrap(err, "num_invalidators")
	}

	args.Kind = TokenManagerKind(kind)
	args.InvalidationType = InvalidationType(invalidationType)

	// Instruction Accounts
	accounts.Mint = ix.Accounts[2].PublicKey
	accounts.Issuer = ix.Accounts[3].PublicKey
	accounts.Payer = ix.Accounts[4].PublicKey
	accounts.IssuerTokenAccount = ix.Accounts[5].PublicKey

	if err := p.checkDerived(ix.Accounts[0].PublicKey, SeedTokenManager, accounts.Mint); err != nil {
		return nil, nil, err
	}
	if err := p.checkDerived(ix.Accounts[1].PublicKey, SeedMintCounter, accounts.Mint); err != nil {
		return nil, nil, err
	}

	return &args, &accounts, nil
}
