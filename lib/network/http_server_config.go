package network

import (
	"errors"
	"strings"
	"time"

	"boscoin.io/announcer/lib/common"
)

type HTTPServerConfig struct {
	Endpoint *common.Endpoint
	Addr     string

	ReadTimeout,
	ReadHeaderTimeout,
	WriteTimeout,
	IdleTimeout time.Duration

	TLSCertFile,
	TLSKeyFile string
}

func parseTimeout(query map[string][]string, key string) (d time.Duration, err error) {
	value := "0s"
	if v, found := query[key]; found && len(v) > 0 && len(v[0]) > 0 {
		value = v[0]
	}

	if d, err = time.ParseDuration(value); err != nil {
		return
	}
	if d < 0 {
		err = errors.New("invalid '" + key + "'")
	}

	return
}

// NewHTTPServerConfigFromEndpoint reads the server settings from the
// query of the bind endpoint, e.g.
// `https://0.0.0.0:12345?TLSCertFile=cert.pem&TLSKeyFile=key.pem&IdleTimeout=5s`.
func NewHTTPServerConfigFromEndpoint(endpoint *common.Endpoint) (config HTTPServerConfig, err error) {
	query := endpoint.Query()

	config.Endpoint = endpoint
	config.Addr = endpoint.Host

	if config.ReadTimeout, err = parseTimeout(query, "ReadTimeout"); err != nil {
		return
	}
	if config.ReadHeaderTimeout, err = parseTimeout(query, "ReadHeaderTimeout"); err != nil {
		return
	}
	if config.WriteTimeout, err = parseTimeout(query, "WriteTimeout"); err != nil {
		return
	}
	if config.IdleTimeout, err = parseTimeout(query, "IdleTimeout"); err != nil {
		return
	}

	config.TLSCertFile = query.Get("TLSCertFile")
	config.TLSKeyFile = query.Get("TLSKeyFile")

	if strings.ToLower(endpoint.Scheme) == "https" && (len(config.TLSCertFile) < 1 || len(config.TLSKeyFile) < 1) {
		err = errors.New("HTTPS needs `TLSCertFile` and `TLSKeyFile`")
		return
	}

	return
}
