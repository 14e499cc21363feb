package api

import (
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"

	"github.com/gorilla/mux"

	"boscoin.io/announcer/lib/errors"
	"boscoin.io/announcer/lib/network/httputils"
	"boscoin.io/announcer/lib/node/runner/api/resource"
	"boscoin.io/announcer/lib/transaction"
)

// PostTransactionHandler executes a signed transaction and answers with its
// receipt.
func (api NetworkHandlerAPI) PostTransactionHandler(w http.ResponseWriter, r *http.Request) {
	body, err := ioutil.ReadAll(io.LimitReader(r.Body, MaxTransactionSize+1))
	if err != nil {
		httputils.WriteJSONError(w, errors.Wrap(errors.InvalidMessage, err))
		return
	}
	if int64(len(body)) > MaxTransactionSize {
		httputils.WriteJSONError(w, errors.InvalidMessage.Clone().SetData("reason", "transaction too large"))
		return
	}

	var tx transaction.Transaction
	if err := json.Unmarshal(body, &tx); err != nil {
		if e, ok := err.(*errors.Error); ok {
			httputils.WriteJSONError(w, e)
		} else {
			httputils.WriteJSONError(w, errors.Wrap(errors.InvalidMessage, err))
		}
		return
	}

	if _, err := api.contract.ExecuteTransaction(api.clock.Now(), tx); err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	receipt, err := api.contract.Receipt(tx.GetHash())
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, http.StatusOK, resource.NewReceipt(receipt))
}

func (api NetworkHandlerAPI) GetTransactionByHashHandler(w http.ResponseWriter, r *http.Request) {
	hash := mux.Vars(r)["id"]

	receipt, err := api.contract.Receipt(hash)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, http.StatusOK, resource.NewReceipt(receipt))
}
