package metrics

// InitPrometheusMetrics replaces the discarding defaults with collectors
// registered on the default prometheus registry. It must be called once,
// before the node starts serving.
func InitPrometheusMetrics() {
	Version = PromVersion()
	Contract = PromContractMetrics()
	API = PromAPIMetrics()
}
