package transaction

import (
	"boscoin.io/announcer/lib/common/keypair"
	"boscoin.io/announcer/lib/transaction/operation"
)

// TestNetworkID is the network id unit tests sign with.
var TestNetworkID = []byte("announcer-unittest")

func MakeTransaction(kp *keypair.Full, op operation.Operation) Transaction {
	tx := NewTransaction(kp.Address(), op)
	tx.Sign(kp, TestNetworkID)

	return tx
}
