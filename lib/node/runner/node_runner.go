package runner

import (
	"net/http/pprof"
	"time"

	ghandlers "github.com/gorilla/handlers"
	logging "github.com/inconshreveable/log15"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"boscoin.io/announcer/lib/common"
	"boscoin.io/announcer/lib/contract"
	"boscoin.io/announcer/lib/network"
	"boscoin.io/announcer/lib/node"
	"boscoin.io/announcer/lib/node/runner/api"
	"boscoin.io/announcer/lib/storage"
)

const JSONRPCPattern = "/jsonrpc"

// NodeRunner bridges together the HTTP server, the storage and the
// contract. In this regard it can be seen as a single announcer node, and
// is used as such in unit tests.
type NodeRunner struct {
	network  *network.HTTPServer
	contract *contract.Contract
	storage  storage.Backend
	clock    common.Clock
	started  time.Time

	log logging.Logger

	Conf common.Config

	// Debug mounts the storage inspector and pprof under `/debug`.
	Debug bool
}

func NewNodeRunner(
	n *network.HTTPServer,
	c *contract.Contract,
	st storage.Backend,
	clock common.Clock,
) *NodeRunner {
	return &NodeRunner{
		network:  n,
		contract: c,
		storage:  st,
		clock:    clock,
		started:  clock.Now(),
		log:      log.New(logging.Ctx{"endpoint": n.Endpoint().String()}),
		Conf:     c.Config(),
	}
}

func (nr *NodeRunner) Ready() {
	rateLimitMiddlewareAPI := network.RateLimitMiddleware(nr.log, nr.Conf.RateLimitRuleAPI)
	for _, name := range []string{network.RouterNameAPI, network.RouterNameMetric, network.RouterNameDebug} {
		if err := nr.network.AddMiddleware(name, rateLimitMiddlewareAPI); err != nil {
			nr.log.Error("`network.RateLimitMiddleware` has an error", "router", name, "err", err)
			return
		}
	}

	// BaseRouter's middlewares impact all sub routers.
	if err := nr.network.AddMiddleware("", network.RecoverMiddleware(nr.log)); err != nil {
		nr.log.Error("Middleware has an error", "err", err)
		return
	}

	{ //CORS
		allowedOrigins := ghandlers.AllowedOrigins([]string{"*"})
		allowedMethods := ghandlers.AllowedMethods([]string{"GET", "POST"})
		allowedHeaders := ghandlers.AllowedHeaders([]string{"Content-Type", "X-Requested-With", "Cache-Control", "Access-Control"})

		cors := ghandlers.CORS(allowedOrigins, allowedMethods, allowedHeaders)
		if err := nr.network.AddMiddleware(network.RouterNameAPI, cors); err != nil {
			nr.log.Error("Middleware has an error", "err", err)
			return
		}
	}

	nr.network.AddHandler(network.UrlPathPrefixMetric, promhttp.Handler().ServeHTTP)

	apiHandler := api.NewNetworkHandlerAPI(nr.contract, nr.clock, network.UrlPathPrefixAPI)
	apiHandler.GetNodeInfo = nr.NodeInfo

	for _, route := range apiHandler.Routes() {
		nr.network.AddHandler(route.Pattern, route.Handler).Methods(route.Methods...)
	}

	if nr.Debug {
		nr.network.AddHandler(network.UrlPathPrefixDebug+JSONRPCPattern, NewJSONRPCHandler(nr.storage).ServeHTTP).
			Methods("POST", "OPTIONS")

		nr.network.AddHandler(network.UrlPathPrefixDebug+"/pprof/cmdline", pprof.Cmdline)
		nr.network.AddHandler(network.UrlPathPrefixDebug+"/pprof/profile", pprof.Profile)
		nr.network.AddHandler(network.UrlPathPrefixDebug+"/pprof/symbol", pprof.Symbol)
		nr.network.AddHandler(network.UrlPathPrefixDebug+"/pprof/trace", pprof.Trace)
		nr.network.AddHandler(network.UrlPathPrefixDebug+"/pprof/*", pprof.Index)
	}

	nr.network.AddHandler(api.GetNodeInfoPattern, apiHandler.GetNodeInfoHandler).Methods("GET")

	nr.network.Ready()
}

// Start blocks until the HTTP server stops.
func (nr *NodeRunner) Start() error {
	nr.log.Debug("NodeRunner started")
	nr.Ready()

	return nr.network.Start()
}

func (nr *NodeRunner) Stop() {
	nr.network.Stop()
}

func (nr *NodeRunner) Network() *network.HTTPServer {
	return nr.network
}

func (nr *NodeRunner) Contract() *contract.Contract {
	return nr.contract
}

func (nr *NodeRunner) Storage() storage.Backend {
	return nr.storage
}

func (nr *NodeRunner) NodeInfo() node.NodeInfo {
	info := node.NodeInfo{
		Node: node.NodeInfoNode{
			Version:  node.NewNodeVersion(),
			Started:  common.FormatISO8601(nr.started),
			Endpoint: nr.network.Endpoint(),
		},
		Policy: node.NewNodePolicy(nr.Conf),
	}

	if stored, err := nr.contract.ContractInfo(); err == nil {
		info.Contract.Contract = stored.Contract
		info.Contract.Version = stored.Version
	}
	if whitelist, err := nr.contract.Whitelist(); err == nil {
		info.Contract.WhitelistSize = len(whitelist)
	}

	return info
}
