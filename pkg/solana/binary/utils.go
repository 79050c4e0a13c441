package binary

import (
	"crypto/ed25519"
	"encoding/binary"
)

// All helpers read or write at dst[*offset:] / src[*offset:] and advance the
// offset by the encoded width. Callers are responsible for sizing buffers.

const (
	DiscriminatorSize = 8
)

func PutDiscriminator(dst []byte, v []byte, offset *int) {
	copy(dst[*offset:*offset+DiscriminatorSize], v)
	*offset += DiscriminatorSize
}

func GetDiscriminator(src []byte, dst *[]byte, offset *int) {
	*dst = make([]byte, DiscriminatorSize)
	copy(*dst, src[*offset:])
	*offset += DiscriminatorSize
}

func PutKey32(dst []byte, src []byte, offset *int) {
	copy(dst[*offset:*offset+ed25519.PublicKeySize], src)
	*offset += ed25519.PublicKeySize
}

func GetKey32(src []byte, dst *ed25519.PublicKey, offset *int) {
	*dst = make([]byte, ed25519.PublicKeySize)
	copy(*dst, src[*offset:])
	*offset += ed25519.PublicKeySize
}

// GetOptionalKey32 reads a Borsh Option<Pubkey>: a one byte tag followed by
// the key when the tag is set.
func GetOptionalKey32(src []byte, dst *ed25519.PublicKey, offset *int) {
	isSet := src[*offset] == 1
	*offset += 1
	if !isSet {
		*dst = nil
		return
	}
	GetKey32(src, dst, offset)
}

func PutUint64(dst []byte, v uint64, offset *int) {
	binary.LittleEndian.PutUint64(dst[*offset:], v)
	*offset += 8
}

func GetUint64(src []byte, dst *uint64, offset *int) {
	*dst = binary.LittleEndian.Uint64(src[*offset:])
	*offset += 8
}

func GetInt64(src []byte, dst *int64, offset *int) {
	*dst = int64(binary.LittleEndian.Uint64(src[*offset:]))
	*offset += 8
}

func PutUint32(dst []byte, v uint32, offset *int) {
	binary.LittleEndian.PutUint32(dst[*offset:], v)
	*offset += 4
}

func GetUint32(src []byte, dst *uint32, offset *int) {
	*dst = binary.LittleEndian.Uint32(src[*offset:])
	*offset += 4
}

func PutUint8(dst []byte, v uint8, offset *int) {
	dst[*offset] = v
	*offset += 1
}

func GetUint8(src []byte, dst *uint8, offset *int) {
	*dst = src[*offset]
	*offset += 1
}
