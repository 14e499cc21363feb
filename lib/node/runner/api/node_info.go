package api

import (
	"net/http"

	"boscoin.io/announcer/lib/network/httputils"
)

func (api NetworkHandlerAPI) GetNodeInfoHandler(w http.ResponseWriter, r *http.Request) {
	if api.GetNodeInfo == nil {
		httputils.MustWriteJSON(w, http.StatusServiceUnavailable, httputils.NewStatusProblem(http.StatusServiceUnavailable))
		return
	}

	httputils.MustWriteJSON(w, http.StatusOK, api.GetNodeInfo())
}
