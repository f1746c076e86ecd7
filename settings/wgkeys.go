package settings

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/curve25519"
)

// GenerateKeyPair returns a fresh WireGuard keypair, both halves in
// standard base64 as stored in the settings snapshot.
func GenerateKeyPair() (privateKey, publicKey string, err error) {
	priv := make([]byte, 32)
	if _, err := rand.Read(priv); err != nil {
		return "", "", fmt.Errorf("failed to generate private key: %w", err)
	}
	clampKey(priv)

	pub, err := curve25519.X25519(priv, curve25519.Basepoint)
	if err != nil {
		return "", "", fmt.Errorf("failed to derive public key: %w", err)
	}

	return base64.StdEncoding.EncodeToString(priv),
		base64.StdEncoding.EncodeToString(pub), nil
}

// PublicKeyOf derives the base64 public key for a base64 private key.
func PublicKeyOf(privateKey string) (string, error) {
	priv, err := base64.StdEncoding.DecodeString(privateKey)
	if err != nil {
		return "", fmt.Errorf("malformed private key: %w", err)
	}
	if len(priv) != 32 {
		return "", fmt.Errorf("private key must be 32 bytes, got %d", len(priv))
	}

	pub, err := curve25519.X25519(priv, curve25519.Basepoint)
	if err != nil {
		return "", fmt.Errorf("failed to derive public key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(pub), nil
}

// clampKey applies the curve25519 scalar clamp in place.
func clampKey(k []byte) {
	k[0] &= 248
	k[31] &= 127
	k[31] |= 64
}
