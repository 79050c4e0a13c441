package tokenmanager

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/code-token-manager/pkg/solana"
)

const CloseMintManagerInstructionName = "closeMintManager"

type CloseMintManagerInstructionAccounts struct {
	Mint            ed25519.PublicKey
	FreezeAuthority ed25519.PublicKey

	// Receives the reclaimed rent. Not a signer.
	Payer ed25519.PublicKey
}

// NewCloseMintManagerInstruction closes an existing mint manager, handing
// authority back to the freeze authority. The mint manager address is
// returned alongside the instruction.
func (p *Program) NewCloseMintManagerInstruction(
	accounts *CloseMintManagerInstructionAccounts,
) (solana.Instruction, ed25519.PublicKey, error) {
	mintManager, _, err := p.GetMintManagerAddress(&GetMintManagerAddressArgs{
		Mint: accounts.Mint,
	})
	if err != nil {
		return solana.Instruction{}, nil, err
	}

	ix, err := p.Encode(
		CloseMintManagerInstructionName,
		[]solana.AccountMeta{
			{
				PublicKey:  mintManager,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Mint,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.FreezeAuthority,
				IsWritable: false,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.Payer,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  SPL_TOKEN_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
		},
	)
	if err != nil {
		return solana.Instruction{}, nil, err
	}

	p.log.WithFields(logrus.Fields{
		"method":       "NewCloseMintManagerInstruction",
		"mint":         base58.Encode(accounts.Mint),
		"mint_manager": base58.Encode(mintManager),
	}).Debug("built instruction")

	return ix, mintManager, nil
}

func (p *Program) CloseMintManagerInstructionFromInstruction(ix solana.Instruction) (*CloseMintManagerInstructionAccounts, error) {
	if _, err := p.decodeAs(ix, CloseMintManagerInstructionName, 5); err != nil {
		return nil, err
	}

	accounts := &CloseMintManagerInstructionAccounts{
		Mint:            ix.Accounts[1].PublicKey,
		FreezeAuthority: ix.Accounts[2].PublicKey,
		Payer:           ix.Accounts[3].PublicKey,
	}

	if err := p.checkDerived(ix.Accounts[0].PublicKey, SeedMintManager, accounts.Mint); err != nil {
		return nil, err
	}

	return accounts, nil
}
