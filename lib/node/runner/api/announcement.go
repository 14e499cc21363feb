package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"boscoin.io/announcer/lib/announcement"
	"boscoin.io/announcer/lib/common"
	"boscoin.io/announcer/lib/contract"
	"boscoin.io/announcer/lib/errors"
	"boscoin.io/announcer/lib/network/httputils"
	"boscoin.io/announcer/lib/node/runner/api/resource"
)

// NewAnnouncementQuery reads `author`, `topic`, `since` and `since_id`
// from the request. `since_id` needs `since`.
func NewAnnouncementQuery(r *http.Request) (q contract.AnnouncementQuery, err error) {
	query := r.URL.Query()

	q.Author = query.Get("author")
	q.Topic = query.Get("topic")

	since := query.Get("since")
	sinceID := query.Get("since_id")

	if len(since) < 1 {
		if len(sinceID) > 0 {
			err = errors.BadRequestParameter.Clone().SetData("since_id", "needs `since`")
		}
		return
	}

	cursor := &announcement.Cursor{}
	if cursor.Time, err = common.ParseTimeParam(since); err != nil {
		err = errors.BadRequestParameter.Clone().SetData("since", since)
		return
	}
	if len(sinceID) > 0 {
		if cursor.ID, err = strconv.ParseUint(sinceID, 10, 64); err != nil {
			err = errors.BadRequestParameter.Clone().SetData("since_id", sinceID)
			return
		}
	}
	q.Since = cursor

	return
}

func (api NetworkHandlerAPI) GetAnnouncementsHandler(w http.ResponseWriter, r *http.Request) {
	q, err := NewAnnouncementQuery(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var rs []resource.Resource
	for _, a := range api.contract.Announcements(q) {
		rs = append(rs, resource.NewAnnouncement(a))
	}

	httputils.MustWriteJSON(w, http.StatusOK, resource.NewResourceList(rs, r.URL.RequestURI()))
}

func (api NetworkHandlerAPI) GetAnnouncementHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		httputils.WriteJSONError(w, errors.BadRequestParameter.Clone().SetData("id", mux.Vars(r)["id"]))
		return
	}

	a, err := api.contract.Announcement(id)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, http.StatusOK, resource.NewAnnouncement(a))
}
