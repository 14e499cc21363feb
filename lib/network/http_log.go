package network

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	logging "github.com/inconshreveable/log15"

	"boscoin.io/announcer/lib/common"
	"boscoin.io/announcer/lib/metrics"
)

const HeaderRequestID = "X-Request-Id"

type HTTPErrorLog15Writer struct {
	l logging.Logger
}

func (w HTTPErrorLog15Writer) Write(b []byte) (int, error) {
	w.l.Error("error", "error", string(b))
	return len(b), nil
}

type HTTPResponseLog15Writer struct {
	w      http.ResponseWriter
	status int
	size   int
}

func (l *HTTPResponseLog15Writer) Header() http.Header {
	return l.w.Header()
}

func (l *HTTPResponseLog15Writer) Write(b []byte) (int, error) {
	if l.status == 0 {
		l.status = http.StatusOK
	}
	size, err := l.w.Write(b)
	l.size += size
	return size, err
}

func (l *HTTPResponseLog15Writer) WriteHeader(s int) {
	l.w.WriteHeader(s)
	l.status = s
}

func (l *HTTPResponseLog15Writer) Status() int {
	if l.status == 0 {
		return http.StatusOK
	}
	return l.status
}

func (l *HTTPResponseLog15Writer) Size() int {
	return l.size
}

func (l *HTTPResponseLog15Writer) Flush() {
	f, ok := l.w.(http.Flusher)
	if ok {
		f.Flush()
	}
}

// HTTPLog15Handler logs every request and its response under one request
// id, which is also returned in the `X-Request-Id` header, and records the
// API metrics.
type HTTPLog15Handler struct {
	log     logging.Logger
	router  *mux.Router
	handler http.Handler
}

var HeaderKeyFiltered []string = []string{
	"Content-Length",
	"Content-Type",
	"Accept",
	"Accept-Encoding",
	"User-Agent",
}

func (l HTTPLog15Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	begin := time.Now()
	uid := common.GenerateUUID()

	uri := r.RequestURI
	if r.ProtoMajor == 2 && r.Method == "CONNECT" {
		uri = r.Host
	}
	if uri == "" {
		uri = r.URL.RequestURI()
	}

	header := http.Header{}
	for key, value := range r.Header {
		if _, found := common.InStringArray(HeaderKeyFiltered, key); found {
			continue
		}
		header[key] = value
	}

	l.log.Debug(
		"request",
		"content-length", r.ContentLength,
		"content-type", r.Header.Get("Content-Type"),
		"headers", header,
		"host", r.Host,
		"id", uid,
		"method", r.Method,
		"proto", r.Proto,
		"remote", r.RemoteAddr,
		"uri", uri,
		"user-agent", r.UserAgent(),
	)

	writer := &HTTPResponseLog15Writer{w: w}
	writer.Header().Set(HeaderRequestID, uid)
	l.handler.ServeHTTP(writer, r)

	metrics.API.ObserveRequest(begin, l.endpoint(r), r.Method, writer.Status())

	l.log.Debug(
		"response",
		"id", uid,
		"status", writer.Status(),
		"size", writer.Size(),
		"elapsed", time.Since(begin),
	)
}

// endpoint names the matched route by its template so metric labels stay
// bounded.
func (l HTTPLog15Handler) endpoint(r *http.Request) string {
	if l.router == nil {
		return "unknown"
	}

	var match mux.RouteMatch
	if !l.router.Match(r, &match) || match.Route == nil {
		return "unknown"
	}

	template, err := match.Route.GetPathTemplate()
	if err != nil {
		return "unknown"
	}

	return template
}
