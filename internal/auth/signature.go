package auth

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

// VerifySignature checks that signatureStr is a valid EIP-191 personal_sign
// signature of message by the given wallet address.
func VerifySignature(address, message, signatureStr string) (bool, error) {
	sigHex := strings.TrimPrefix(signatureStr, "0x")
	sigBytes, err := hex.DecodeString(sigHex)
	if err != nil {
		return false, fmt.Errorf("invalid hex signature")
	}
	if len(sigBytes) != 65 {
		return false, fmt.Errorf("invalid signature length")
	}
	// Wallets report the recovery id as 27/28; geth wants 0/1.
	if sigBytes[64] >= 27 {
		sigBytes[64] -= 27
	}

	prefix := fmt.Sprintf("\x19Ethereum Signed Message:\n%d", len(message))
	hash := crypto.Keccak256Hash([]byte(prefix + message))

	pubKey, err := crypto.SigToPub(hash.Bytes(), sigBytes)
	if err != nil {
		return false, err
	}
	recovered := crypto.PubkeyToAddress(*pubKey)
	return strings.EqualFold(recovered.Hex(), address), nil
}
