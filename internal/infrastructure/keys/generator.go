// Package keys is the key-material collaborator for the identity flow. The
// editor core never derives keys itself; it consumes this narrow interface.
package keys

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Scheme selects the signature scheme for a new identity.
type Scheme string

const (
	// SchemeED25519 is the only scheme this build generates
	SchemeED25519 Scheme = "ed25519"
)

// Schemes returns the supported schemes in presentation order.
func Schemes() []Scheme {
	return []Scheme{SchemeED25519}
}

// Validate returns an error for an unsupported scheme.
func (s Scheme) Validate() error {
	switch s {
	case SchemeED25519:
		return nil
	default:
		return fmt.Errorf("unsupported key scheme: %s", string(s))
	}
}

// flag returns the scheme byte prefixed to public keys and address preimages.
func (s Scheme) flag() byte {
	return 0x00 // ed25519
}

// Generated is the material produced for a new identity. PrivateKey and
// Recovery are shown to the user exactly once and never persisted by the
// editor.
type Generated struct {
	PublicKey  string // base64 of flag||pubkey
	Address    string // 0x-prefixed hex of blake2b-256(flag||pubkey)
	PrivateKey string
	Recovery   string
}

// Generator produces key material for new identities.
type Generator interface {
	Generate(scheme Scheme) (Generated, error)
}

// NewGenerator returns the default ed25519 generator.
func NewGenerator() Generator {
	return ed25519Generator{}
}

type ed25519Generator struct{}

func (ed25519Generator) Generate(scheme Scheme) (Generated, error) {
	if err := scheme.Validate(); err != nil {
		return Generated{}, err
	}

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return Generated{}, fmt.Errorf("failed to generate keypair: %w", err)
	}
	seed := priv.Seed()

	return Generated{
		PublicKey:  EncodePublicKey(scheme, pub),
		Address:    DeriveAddress(scheme, pub),
		PrivateKey: base64.StdEncoding.EncodeToString(seed),
		Recovery:   recoveryPhrase(seed),
	}, nil
}

// EncodePublicKey renders a public key as base64 with the scheme flag
// prefixed.
func EncodePublicKey(scheme Scheme, pub []byte) string {
	flagged := append([]byte{scheme.flag()}, pub...)
	return base64.StdEncoding.EncodeToString(flagged)
}

// DeriveAddress derives the account address for a public key:
// blake2b-256 over flag||pubkey, hex encoded with a 0x prefix.
func DeriveAddress(scheme Scheme, pub []byte) string {
	flagged := append([]byte{scheme.flag()}, pub...)
	sum := blake2b.Sum256(flagged)
	return "0x" + hex.EncodeToString(sum[:])
}

// recoveryPhrase renders the seed as grouped hex so it can be read back over
// the phone or written down. It is an encoding of the seed, not a wordlist
// mnemonic.
func recoveryPhrase(seed []byte) string {
	encoded := hex.EncodeToString(seed)
	groups := make([]string, 0, len(encoded)/4)
	for i := 0; i < len(encoded); i += 4 {
		groups = append(groups, encoded[i:i+4])
	}
	return strings.Join(groups, " ")
}
