// Package keypair wraps the stellar keypair package for account identity.
// An account address is the stellar `G...` public address; commands are
// signed with the matching `S...` seed.
package keypair

import (
	stellar "github.com/stellar/go/keypair"
)

type Full = stellar.Full
type KP = stellar.KP

var Master = stellar.Master
var Parse = stellar.Parse
var RandomCanFail = stellar.Random

// MakeSignature makes signature from given hash string
func MakeSignature(kp KP, networkID []byte, hash string) ([]byte, error) {
	return kp.Sign(MakeSignaturePayload(networkID, hash))
}

func MakeSignaturePayload(networkID []byte, hash string) []byte {
	b := make([]byte, 0, len(networkID)+len(hash))
	b = append(b, networkID...)
	return append(b, []byte(hash)...)
}

// IsValidAddress reports whether `address` parses as a public address.
func IsValidAddress(address string) bool {
	kp, err := stellar.Parse(address)
	if err != nil {
		return false
	}

	_, isFull := kp.(*stellar.Full)
	return !isFull
}
