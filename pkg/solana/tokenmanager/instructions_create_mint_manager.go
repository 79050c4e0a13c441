package tokenmanager

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/code-token-manager/pkg/solana"
)

const CreateMintManagerInstructionName = "createMintManager"

type CreateMintManagerInstructionAccounts struct {
	Mint            ed25519.PublicKey
	FreezeAuthority ed25519.PublicKey
	Payer           ed25519.PublicKey
}

// NewCreateMintManagerInstruction creates the mint manager that takes over
// the mint's mint and freeze authority on behalf of the program. The mint
// manager address is returned alongside the instruction.
func (p *Program) NewCreateMintManagerInstruction(
	accounts *CreateMintManagerInstructionAccounts,
) (solana.Instruction, ed25519.PublicKey, error) {
	mintManager, _, err := p.GetMintManagerAddress(&GetMintManagerAddressArgs{
		Mint: accounts.Mint,
	})
	if err != nil {
		return solana.Instruction{}, nil, err
	}

	ix, err := p.Encode(
		CreateMintManagerInstructionName,
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
				IsSigner:   true,
			},
			{
				PublicKey:  SPL_TOKEN_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  SYSTEM_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
		},
	)
	if err != nil {
		return solana.Instruction{}, nil, err
	}

	p.log.WithFields(logrus.Fields{
		"method":       "NewCreateMintManagerInstruction",
		"mint":         base58.Encode(accounts.Mint),
		"mint_manager": base58.Encode(mintManager),
	}).Debug("built instruction")

	return ix, mintManager, nil
}

func (p *Program) CreateMintManagerInstructionFromInstruction(ix solana.Instruction) (*CreateMintManagerInstructionAccounts, error) {
	if _, err := p.decodeAs(ix, CreateMintManagerInstructionName, 6); err != nil {
		return nil, err
	}

	accounts := &CreateMintManagerInstructionAccounts{
		Mint:            ix.Accounts[1].PublicKey,
		FreezeAuthority: ix.Accounts[2].PublicKey,
		Payer:           ix.Accounts[3].PublicKey,
	}

	if err := p.checkDerived(ix.Accounts[0].PublicKey, SeedMintManager, accounts.Mint); err != nil {
		return nil, err
	}

	return accounts, nil
}
