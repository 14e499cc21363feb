package network

import (
	goLog "log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	logging "github.com/inconshreveable/log15"
	"golang.org/x/net/http2"

	"boscoin.io/announcer/lib/common"
	"boscoin.io/announcer/lib/errors"
)

const (
	RouterNameAPI    = "api"
	RouterNameMetric = "metrics"
	RouterNameDebug  = "debug"
)

var (
	UrlPathPrefixAPI    = "/" + RouterNameAPI
	UrlPathPrefixMetric = "/" + RouterNameMetric
	UrlPathPrefixDebug  = "/" + RouterNameDebug
)

// HTTPServer serves the node API. Handlers are grouped into sub routers by
// their path prefix so middlewares can be applied per group.
type HTTPServer struct {
	server    *http.Server
	router    *mux.Router
	rootRoute *mux.Route

	ready bool

	routers map[string]*mux.Router

	config HTTPServerConfig
	log    logging.Logger
}

func NewHTTPServer(config HTTPServerConfig) (s *HTTPServer) {
	httpLog := log.New(logging.Ctx{"endpoint": config.Endpoint.String()})
	errorLog := goLog.New(HTTPErrorLog15Writer{httpLog}, "", 0)

	server := &http.Server{
		Addr:              config.Addr,
		ReadTimeout:       config.ReadTimeout,
		ReadHeaderTimeout: config.ReadHeaderTimeout,
		WriteTimeout:      config.WriteTimeout,
		ErrorLog:          errorLog,
	}
	server.SetKeepAlivesEnabled(true)

	http2.ConfigureServer(
		server,
		&http2.Server{
			IdleTimeout: config.IdleTimeout,
		},
	)

	baseRouter := mux.NewRouter()

	s = &HTTPServer{
		server: server,
		router: baseRouter,
		config: config,
		log:    httpLog,
	}
	s.routers = map[string]*mux.Router{
		RouterNameAPI:    baseRouter.PathPrefix(UrlPathPrefixAPI).Subrouter(),
		RouterNameMetric: baseRouter.PathPrefix(UrlPathPrefixMetric).Subrouter(),
		RouterNameDebug:  baseRouter.PathPrefix(UrlPathPrefixDebug).Subrouter(),
	}

	s.setNotReadyHandler()

	return
}

func (s *HTTPServer) Endpoint() *common.Endpoint {
	return s.config.Endpoint
}

func (s *HTTPServer) Log() logging.Logger {
	return s.log
}

func (s *HTTPServer) setNotReadyHandler() {
	s.rootRoute = s.router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if !s.ready {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}
	})

	s.server.Handler = s.Handler()
}

// AddMiddleware applies `mws` to the named sub router; an empty name means
// every route.
func (s *HTTPServer) AddMiddleware(routerName string, mws ...mux.MiddlewareFunc) error {
	var r *mux.Router
	if len(routerName) < 1 {
		r = s.router
	} else {
		var ok bool
		if r, ok = s.routers[routerName]; !ok {
			return errors.InvalidInput.Clone().SetData("router", routerName)
		}
	}
	for _, mw := range mws {
		r.Use(mw)
	}
	return nil
}

func (s *HTTPServer) AddHandler(pattern string, handler http.HandlerFunc) *mux.Route {
	var routerName string
	var prefix string
	switch {
	case strings.HasPrefix(pattern, UrlPathPrefixAPI):
		routerName = RouterNameAPI
		prefix = pattern[len(UrlPathPrefixAPI):]
	case strings.HasPrefix(pattern, UrlPathPrefixMetric):
		routerName = RouterNameMetric
		prefix = pattern[len(UrlPathPrefixMetric):]
	case strings.HasPrefix(pattern, UrlPathPrefixDebug):
		routerName = RouterNameDebug
		prefix = pattern[len(UrlPathPrefixDebug):]
	default:
		if pattern == "" || pattern == "/" {
			return s.rootRoute.Handler(handler)
		}
		return s.router.HandleFunc(pattern, handler)
	}

	r := s.routers[routerName]

	// a trailing `*` registers a path prefix
	if strings.HasSuffix(prefix, "*") {
		return r.PathPrefix(strings.TrimSuffix(prefix, "*")).Handler(handler)
	}
	return r.HandleFunc(prefix, handler)
}

// Handler is the full handler chain, usable without a listener.
func (s *HTTPServer) Handler() http.Handler {
	return HTTPLog15Handler{log: s.log, router: s.router, handler: s.router}
}

func (s *HTTPServer) Ready() {
	s.server.Handler = s.Handler()
	s.ready = true
}

func (s *HTTPServer) IsReady() bool {
	return s.ready
}

// Start blocks until the server is stopped.
func (s *HTTPServer) Start() (err error) {
	if strings.ToLower(s.config.Endpoint.Scheme) == "http" {
		err = s.server.ListenAndServe()
	} else {
		err = s.server.ListenAndServeTLS(s.config.TLSCertFile, s.config.TLSKeyFile)
	}

	if err == http.ErrServerClosed {
		err = nil
	}

	return
}

func (s *HTTPServer) Stop() {
	s.server.Close()
}
