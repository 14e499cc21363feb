package metrics

var (
	Contract = NopContractMetrics()
	API      = NopAPIMetrics()
)
