package api

import (
	"net/http"

	"boscoin.io/announcer/lib/network/httputils"
	"boscoin.io/announcer/lib/node/runner/api/resource"
)

func (api NetworkHandlerAPI) GetWhitelistHandler(w http.ResponseWriter, r *http.Request) {
	whitelist, err := api.contract.Whitelist()
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, http.StatusOK, resource.NewWhitelist(whitelist))
}

// GetPendingHandler lists the proposals that are not expired yet.
func (api NetworkHandlerAPI) GetPendingHandler(w http.ResponseWriter, r *http.Request) {
	var rs []resource.Resource
	for _, p := range api.contract.Pending(api.clock.Now()) {
		rs = append(rs, resource.NewProposal(p))
	}

	httputils.MustWriteJSON(w, http.StatusOK, resource.NewResourceList(rs, resource.URLPending))
}
