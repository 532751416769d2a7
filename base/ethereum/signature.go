package ethereum

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// ValidateMsgSignature reports whether signature is a valid personal-sign
// signature of message by signer
func ValidateMsgSignature(message []byte, signature, signer string) (bool, error) {
	recovered, err := RecoverPersonalSigner(message, signature)
	if err != nil {
		return false, err
	}
	return recovered == common.HexToAddress(signer), nil
}

// RecoverPersonalSigner returns the address that personal-signed message.
// Wallets encode the recovery id as 0/1 or 27/28 depending on the
// implementation, both forms are accepted
func RecoverPersonalSigner(message []byte, signature string) (common.Address, error) {
	sig, err := hexutil.Decode(signature)
	if err != nil {
		return common.Address{}, err
	}

	if len(sig) != crypto.SignatureLength {
		return common.Address{}, fmt.Errorf("signature must be %d bytes long", crypto.SignatureLength)
	}

	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}
	if sig[crypto.RecoveryIDOffset] > 1 {
		return common.Address{}, fmt.Errorf("invalid signature recovery id")
	}

	pub, err := crypto.SigToPub(accounts.TextHash(message), sig)
	if err != nil {
		return common.Address{}, err
	}

	return crypto.PubkeyToAddress(*pub), nil
}
