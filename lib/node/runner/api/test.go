package api

import (
	"time"

	"github.com/gorilla/mux"

	"boscoin.io/announcer/lib/common"
	"boscoin.io/announcer/lib/common/keypair"
	"boscoin.io/announcer/lib/contract"
	"boscoin.io/announcer/lib/storage"
)

const TestURLPrefix = "/api"

var TestTime = time.Date(2021, 3, 1, 12, 0, 0, 0, time.UTC)

// PrepareAPI builds the handlers on an instantiated contract owned by a
// random keypair, with a clock fixed at TestTime.
func PrepareAPI() (*NetworkHandlerAPI, *mux.Router, *keypair.Full, *common.FixedClock, storage.Backend) {
	owner := keypair.Random()
	c, st := contract.NewTestContract(owner.Address(), TestTime)
	clock := common.NewFixedClock(TestTime)

	api := NewNetworkHandlerAPI(c, clock, TestURLPrefix)

	router := mux.NewRouter()
	for _, route := range api.Routes() {
		router.HandleFunc(route.Pattern, route.Handler).Methods(route.Methods...)
	}

	return api, router, owner, clock, st
}
