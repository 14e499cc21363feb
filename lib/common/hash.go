package common

import (
	"github.com/btcsuite/btcutil/base58"
	"github.com/ethereum/go-ethereum/rlp"
	"golang.org/x/crypto/blake2b"
)

func MakeHash(b []byte) []byte {
	h := blake2b.Sum256(b)
	return h[:]
}

// MakeObjectHash hashes the rlp encoding of `i`; the encoding is
// canonical, so equal bodies always give equal hashes.
func MakeObjectHash(i interface{}) (b []byte, err error) {
	var e []byte
	if e, err = rlp.EncodeToBytes(i); err != nil {
		return
	}

	b = MakeHash(e)

	return
}

func MustMakeObjectHash(i interface{}) (b []byte) {
	b, _ = MakeObjectHash(i)
	return
}

func MustMakeObjectHashString(i interface{}) string {
	return base58.Encode(MustMakeObjectHash(i))
}
