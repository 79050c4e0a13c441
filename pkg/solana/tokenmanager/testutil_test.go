package tokenmanager

import (
	"crypto/ed25519"
	"testing"

	"github.com/code-payments/code-token-manager/pkg/testutil"
)

const (
	fixtureMint  = "kinXdEcpDQeHPEuQnqmUgtYykqKGVFq6CeVX5iAHJq6"
	fixtureOwner = "BuAprBZugjXG6QRbRQN8QKF8EzbW5SigkDuyR9KtqN5z"

	fixtureTokenManager       = "7STvQ8qwy5o8BBvyEFyijrGueLbNBRWhoLtJHfJH85s3"
	fixtureMintCounter        = "GLqWr72Bn7pHEG8iSHmB15ugh5onsqB1TFAfSRzoams7"
	fixtureMintManager        = "6d2zgk7BaUHZjYUxTTMy9tPdrQQXedWTLHzkm2GeTZAE"
	fixtureClaimReceipt       = "FUpbZi7hUdF7x9ZraZshnm4cgWpMAGkAGmdwuGfFg25h"
	fixtureTransferReceipt    = "23rTd4ZX43JY6suoAnunLM86qZcVsUfKEjGJ11yYSDiS"
	fixtureReceiptMintManager = "DawctzG6RjVN2h4ydCqppju7VSUhchQdFmc4ogsPniWy"
)

type testEnv struct {
	program *Program

	mint               ed25519.PublicKey
	issuer             ed25519.PublicKey
	payer              ed25519.PublicKey
	issuerTokenAccount ed25519.PublicKey
	tokenManagerVault  ed25519.PublicKey
}

func setup(t *testing.T) *testEnv {
	keys := testutil.GenerateSolanaKeys(t, 5)
	return &testEnv{
		program:            DefaultProgram(),
		mint:               keys[0],
		issuer:             keys[1],
		payer:              keys[2],
		issuerTokenAccount: keys[3],
		tokenManagerVault:  keys[4],
	}
}
