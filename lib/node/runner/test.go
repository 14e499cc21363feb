package runner

import (
	"time"

	"boscoin.io/announcer/lib/common"
	"boscoin.io/announcer/lib/common/keypair"
	"boscoin.io/announcer/lib/contract"
	"boscoin.io/announcer/lib/network"
)

var TestTime = time.Date(2021, 3, 1, 12, 0, 0, 0, time.UTC)

// MakeTestNodeRunner prepares a node on memory storage whose contract is
// owned by a random keypair. The caller closes the storage.
func MakeTestNodeRunner(debug bool) (*NodeRunner, *keypair.Full) {
	owner := keypair.Random()
	c, st := contract.NewTestContract(owner.Address(), TestTime)

	endpoint, err := common.ParseEndpoint("http://localhost:12345")
	if err != nil {
		panic(err)
	}
	config, err := network.NewHTTPServerConfigFromEndpoint(endpoint)
	if err != nil {
		panic(err)
	}

	nr := NewNodeRunner(network.NewHTTPServer(config), c, st, common.NewFixedClock(TestTime))
	nr.Debug = debug
	nr.Ready()

	return nr, owner
}
