package common

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

var DefaultPort int = 12345

func CheckBindString(b string) error {
	_, port, err := net.SplitHostPort(b)
	if err != nil {
		return err
	}

	var portInt int64
	if portInt, err = strconv.ParseInt(port, 10, 64); err != nil {
		return err
	} else if portInt < 1 {
		return errors.New("invalid port")
	}

	return nil
}

type Endpoint url.URL

func (e *Endpoint) String() string {
	return (&url.URL{
		Scheme: e.Scheme,
		Host:   e.Host,
		Path:   e.Path,
	}).String()
}

func (e *Endpoint) Query() url.Values {
	return (*url.URL)(e).Query()
}

// ParseEndpoint parses a node endpoint, filling in the default port.
func ParseEndpoint(endpoint string) (u *Endpoint, err error) {
	var parsed *url.URL
	if parsed, err = url.Parse(endpoint); err != nil {
		return
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		err = fmt.Errorf("unsupported scheme: %q", parsed.Scheme)
		return
	}

	if len(parsed.Port()) < 1 {
		parsed.Host = fmt.Sprintf("%s:%d", parsed.Hostname(), DefaultPort)
	}

	var portInt int64
	if portInt, err = strconv.ParseInt(parsed.Port(), 10, 64); err != nil {
		return
	} else if portInt < 1 {
		err = errors.New("invalid port")
		return
	}

	if len(parsed.Hostname()) < 1 {
		parsed.Host = fmt.Sprintf("localhost:%s", parsed.Port())
	}

	parsed.Host = strings.ToLower(parsed.Host)
	u = (*Endpoint)(parsed)

	return
}
