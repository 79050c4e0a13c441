package tokenmanager

import (
	"crypto/sha256"
	"strings"
	"unicode"

	"github.com/mr-tron/base58"
)

const (
	instructionNamespace = "global"
	accountNamespace     = "account"
)

func sighash(namespace, name string) []byte {
	h := sha256.Sum256([]byte(namespace + ":" + name))
	return h[:8]
}

func instructionDiscriminator(name string) []byte {
	return sighash(instructionNamespace, toSnakeCase(name))
}

func accountDiscriminator(name string) []byte {
	return sighash(accountNamespace, name)
}

// toSnakeCase converts IDL instruction names (initMintCounter) to the Rust
// handler names the discriminator is hashed from (init_mint_counter).
func toSnakeCase(name string) string {
	var sb strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func mustBase58Decode(value string) []byte {
	decoded, err := base58.Decode(value)
	if err != nil {
		panic(err)
	}
	return decoded
}
