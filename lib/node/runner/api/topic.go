package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"boscoin.io/announcer/lib/network/httputils"
	"boscoin.io/announcer/lib/node/runner/api/resource"
)

func (api NetworkHandlerAPI) GetTopicsHandler(w http.ResponseWriter, r *http.Request) {
	var rs []resource.Resource
	for _, t := range api.contract.Topics() {
		rs = append(rs, resource.NewTopic(t))
	}

	httputils.MustWriteJSON(w, http.StatusOK, resource.NewResourceList(rs, resource.URLTopics))
}

func (api NetworkHandlerAPI) GetTopicHandler(w http.ResponseWriter, r *http.Request) {
	t, err := api.contract.Topic(mux.Vars(r)["id"])
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, http.StatusOK, resource.NewTopic(t))
}
