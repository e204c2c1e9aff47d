package sealer

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	keySize   = 32
	nonceSize = 24
)

var (
	// ErrEmptySecret возвращается, если секрет не задан
	ErrEmptySecret = errors.New("sealer: empty secret")

	// ErrOpen возвращается, если данные повреждены или зашифрованы другим ключом
	ErrOpen = errors.New("sealer: cannot open sealed value")
)

// Sealer шифрует короткие секреты и подписывает записи.
// Ключ шифрования и ключ подписи выводятся из одного секрета через HKDF.
type Sealer struct {
	encKey [keySize]byte
	macKey []byte
}

// New создает Sealer из секрета приложения
func New(secret string) (*Sealer, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte("smc-simple-booking/license"))

	s := &Sealer{macKey: make([]byte, keySize)}
	if _, err := io.ReadFull(kdf, s.encKey[:]); err != nil {
		return nil, fmt.Errorf("sealer: derive encryption key: %w", err)
	}
	if _, err := io.ReadFull(kdf, s.macKey); err != nil {
		return nil, fmt.Errorf("sealer: derive signing key: %w", err)
	}
	return s, nil
}

// Seal шифрует строку: base64(nonce || secretbox)
func (s *Sealer) Seal(plain string) (string, error) {
	if plain == "" {
		return "", nil
	}

	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("sealer: nonce: %w", err)
	}

	out := secretbox.Seal(nonce[:], []byte(plain), &nonce, &s.encKey)
	return base64.StdEncoding.EncodeToString(out), nil
}

// Open расшифровывает значение, полученное из Seal
func (s *Sealer) Open(sealed string) (string, error) {
	if sealed == "" {
		return "", nil
	}

	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil || len(raw) < nonceSize+secretbox.Overhead {
		return "", ErrOpen
	}

	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])

	plain, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &s.encKey)
	if !ok {
		return "", ErrOpen
	}
	return string(plain), nil
}

// Sign возвращает hex HMAC-SHA256 от данных
func (s *Sealer) Sign(data []byte) string {
	mac := hmac.New(sha256.New, s.macKey)
	mac.Write(data)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify сравнивает подпись за постоянное время
func (s *Sealer) Verify(data []byte, signature string) bool {
	expected, err := hex.DecodeString(signature)
	if err != nil || len(expected) == 0 {
		return false
	}
	mac := hmac.New(sha256.New, s.macKey)
	mac.Write(data)
	return hmac.Equal(mac.Sum(nil), expected)
}
