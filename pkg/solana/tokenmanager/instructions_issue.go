package tokenmanager

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/code-token-manager/pkg/solana"
)

const IssueInstructionName = "issue"

type IssueInstructionAccounts struct {
	TokenManager             ed25519.PublicKey
	TokenManagerTokenAccount ed25519.PublicKey
	Issuer                   ed25519.PublicKey
	IssuerTokenAccount       ed25519.PublicKey
	Payer                    ed25519.PublicKey
}

// NewIssueInstruction moves the issuer's tokens into the token manager's
// token account.
func (p *Program) NewIssueInstruction(
	accounts *IssueInstructionAccounts,
) (solana.Instruction, error) {
	ix, err := p.Encode(
		IssueInstructionName,
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
		return solana.Instruction{}, err
	}

	p.log.WithFields(logrus.Fields{
		"method":        "NewIssueInstruction",
		"token_manager": base58.Encode(accounts.TokenManager),
	}).Debug("built instruction")

	return ix, nil
}

func (p *Program) IssueInstructionFromInstruction(ix solana.Instruction) (*IssueInstructionAccounts, error) {
	if _, err := p.decodeAs(ix, IssueInstructionName, 7); err != nil {
		return nil, err
	}

	return &IssueInstructionAccounts{
		TokenManager:             ix.Accounts[0].PublicKey,
		TokenManagerTokenAccount: ix.Accounts[1].PublicKey,
		Issuer:                   ix.Accounts[2].PublicKey,
		IssuerTokenAccount:       ix.Accounts[3].PublicKey,
		Payer:                    ix.Accounts[4].PublicKey,
	}, nil
}
