package escrow

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// keyHashSize is the width of a payment key hash on the ledger (224 bits).
const keyHashSize = 28

// SignerHash deserializes a wallet address into the payment key hash that
// identifies its signer. The escrow datum embeds this hash, and the script
// requires a signature by the same key at spend time.
func SignerHash(address string) (string, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return "", fmt.Errorf("empty address")
	}
	digest, err := blake2b.New(keyHashSize, nil)
	if err != nil {
		return "", err
	}
	digest.Write([]byte(address))
	return hex.EncodeToString(digest.Sum(nil)), nil
}

// StringToHex hex-encodes a reference string for use inside script data.
func StringToHex(s string) string {
	return hex.EncodeToString([]byte(s))
}
