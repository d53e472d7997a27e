package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	"golang.org/x/crypto/chacha20poly1305"
)

var ErrInvalidToken = errors.New("invalid session token")

// SealedStrategy issues session tokens sealed with an AEAD cipher, so the
// membership claims inside cannot be read or forged by the holder.
type SealedStrategy struct {
	key []byte
	ttl time.Duration
}

// NewSealedStrategy derives the sealing key from the configured secret.
func NewSealedStrategy(secret string, opts Options) *SealedStrategy {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	key := sha256.Sum256([]byte(secret))
	return &SealedStrategy{key: key[:], ttl: ttl}
}

// IssueToken seals the session into an opaque token.
func (s *SealedStrategy) IssueToken(session Session) (string, error) {
	session.ExpiresAt = time.Now().Add(s.ttl).Unix()

	payload, err := json.Marshal(session)
	if err != nil {
		return "", err
	}

	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	sealed := aead.Seal(nonce, nonce, payload, nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// ParseToken opens the token and returns the session if it is authentic and
// not expired.
func (s *SealedStrategy) ParseToken(token string) (*Session, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return nil, err
	}

	if len(raw) < aead.NonceSize() {
		return nil, ErrInvalidToken
	}
	nonce, sealed := raw[:aead.NonceSize()], raw[aead.NonceSize():]

	payload, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrInvalidToken
	}

	var session Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, ErrInvalidToken
	}

	if time.Unix(session.ExpiresAt, 0).Before(time.Now()) {
		return nil, ErrInvalidToken
	}

	return &session, nil
}

func (s *SealedStrategy) Name() string {
	return "sealed"
}
