package tokenmanager

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/code-token-manager/pkg/solana"
)

const SetTransferAuthorityInstructionName = "setTransferAuthority"

type SetTransferAuthorityInstructionArgs struct {
	TransferAuthority ed25519.PublicKey
}

type SetTransferAuthorityInstructionAccounts struct {
	TokenManager ed25519.PublicKey
	Issuer       ed25519.PublicKey
}

// NewSetTransferAuthorityInstruction sets the transfer authority of an
// existing token manager.
func (p *Program) NewSetTransferAuthorityInstruction(
	accounts *SetTransferAuthorityInstructionAccounts,
	args *SetTransferAuthorityInstructionArgs,
) (solana.Instruction, error) {
	ix, err := p.Encode(
		SetTransferAuthorityInstructionName,
		[]solana.AccountMeta{
			{
				PublicKey:  accounts.TokenManager,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Issuer,
				IsWritable: false,
				IsSigner:   true,
			},
		},
		args.TransferAuthority,
	)
	if err != nil {
		return solana.Instruction{}, err
	}

	p.log.WithFields(logrus.Fields{
		"method":             "NewSetTransferAuthorityInstruction",
		"token_manager":      base58.Encode(accounts.TokenManager),
		"transfer_authority": base58.Encode(args.TransferAuthority),
	}).Debug("built instruction")

	return ix, nil
}

func (p *Program) SetTransferAuthorityInstructionFromInstruction(ix solana.Instruction) (*SetTransferAuthorityInstructionArgs, *SetTransferAuthorityInstructionAccounts, error) {
	decoded, err := p.decodeAs(ix, SetTransferAuthorityInstructionName, 2)
	if err != nil {
		return nil, nil, err
	}

	values, err := decoded.leaves(1)
	if err != nil {
		return nil, nil, err
	}
	transferAuthority, err := publicKeyArg(values[0])
	if err != nil {
		return nil, nil, err
	}

	args := &SetTransferAuthorityInstructionArgs{
		TransferAuthority: transferAuthority,
	}
	accounts := &SetTransferAuthorityInstructionAccounts{
		TokenManager: ix.Accounts[0].PublicKey,
		Issuer:       ix.Accounts[1].PublicKey,
	}

	return args, accounts, nil
}
