package tokenmanager

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/code-token-manager/pkg/solana"
)

const InitMintCounterInstructionName = "initMintCounter"

type InitMintCounterInstructionAccounts struct {
	Mint  ed25519.PublicKey
	Payer ed25519.PublicKey
}

// NewInitMintCounterInstruction creates the mint counter account for a mint.
func (p *Program) NewInitMintCounterInstruction(
	accounts *InitMintCounterInstructionAccounts,
) (solana.Instruction, error) {
	mintCounter, _, err := p.GetMintCounterAddress(&GetMintCounterAddressArgs{
		Mint: accounts.Mint,
	})
	if err != nil {
		return solana.Instruction{}, err
	}

	ix, err := p.Encode(
		InitMintCounterInstructionName,
		[]solana.AccountMeta{
			{
				PublicKey:  mintCounter,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Payer,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  SYSTEM_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
		},
		accounts.Mint,
	)
	if err != nil {
		return solana.Instruction{}, err
	}

	p.log.WithFields(logrus.Fields{
		"method":       "NewInitMintCounterInstruction",
		"mint":         base58.Encode(accounts.Mint),
		"mint_counter": base58.Encode(mintCounter),
	}).Debug("built instruction")

	return ix, nil
}

// InitMintCounterInstructionFromInstruction recovers the accounts of an
// initMintCounter instruction, checking the mint counter was derived from
// the encoded mint.
func (p *Program) InitMintCounterInstructionFromInstruction(ix solana.Instruction) (*InitMintCounterInstructionAccounts, error) {
	decoded, err := p.decodeAs(ix, InitMintCounterInstructionName, 3)
	if err != nil {
		return nil, err
	}

	values, err := decoded.leaves(1)
	if err != nil {
		return nil, err
	}
	mint, err := publicKeyArg(values[0])
	if err != nil {
		return nil, err
	}

	accounts := &InitMintCounterInstructionAccounts{
		Mint:  mint,
		Payer: ix.Accounts[1].PublicKey,
	}

	if err := p.checkDerived(ix.Accounts[0].PublicKey, SeedMintCounter, accounts.Mint); err != nil {
		return nil, err
	}

	return accounts, nil
}
