package tokenmanager

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/code-token-manager/pkg/solana"
)

const UnissueInstructionName = "unissue"

type UnissueInstructionAccounts struct {
	TokenManager             ed25519.PublicKey
	TokenManagerTokenAccount ed25519.PublicKey
	Issuer                   ed25519.PublicKey
	IssuerTokenAccount       ed25519.PublicKey
}

// NewUnissueInstruction reverses an issue. No accounts are created, so there
// is no payer.
func (p *Program) NewUnissueInstruction(
	accounts *UnissueInstructionAccounts,
) (solana.Instruction, error) {
	ix, err := p.Encode(
		UnissueInstructionName,
		[]solana.AccountMeta{
			{
				PublicKey:  accounts.TokenManager,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.TokenManagerTokenAccount,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Issuer,
				IsWritable: false,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.IssuerTokenAccount,
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
		return solana.Instruction{}, err
	}

	p.log.WithFields(logrus.Fields{
		"method":        "NewUnissueInstruction",
		"token_manager": base58.Encode(accounts.TokenManager),
	}).Debug("built instruction")

	return ix, nil
}

func (p *Program) UnissueInstructionFromInstruction(ix solana.Instruction) (*UnissueInstructionAccounts, error) {
	if _, err := p.decodeAs(ix, UnissueInstructionName, 5); err != nil {
		return nil, err
	}

	return &UnissueInstructionAccounts{
		TokenManager:             ix.Accounts[0].PublicKey,
		TokenManagerTokenAccount: ix.Accounts[1].PublicKey,
		Issuer:                   ix.Accounts[2].PublicKey,
		IssuerTokenAccount:       ix.Accounts[3].PublicKey,
	}, nil
}
