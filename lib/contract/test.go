package contract

import (
	"time"

	"boscoin.io/announcer/lib/common"
	"boscoin.io/announcer/lib/storage"
)

// NewTestContract instantiates a contract on memory storage with `owner`
// as the only member.
func NewTestContract(owner string, now time.Time) (*Contract, storage.Backend) {
	st := storage.NewTestStorage()

	c, err := New(st, common.NewTestConfig())
	if err != nil {
		panic(err)
	}
	if _, err := c.Instantiate(Env{Time: now}, Info{Sender: owner}); err != nil {
		panic(err)
	}

	return c, st
}
