// Package test holds helpers shared by the test suites of the node.
package test

import (
	"os"

	logging "github.com/inconshreveable/log15"
)

// LogHandler picks the handler tests log through. Tests are quiet unless
// `ANNOUNCER_TEST_LOG_HANDLER=stdout` is set.
func LogHandler() logging.Handler {
	handlers := map[string]func() logging.Handler{
		"null": func() logging.Handler {
			return logging.DiscardHandler()
		},
		"stdout": func() logging.Handler {
			return logging.CallerStackHandler("%+v", logging.StdoutHandler)
		},
	}

	handler := handlers["null"]
	if h, ok := handlers[os.Getenv("ANNOUNCER_TEST_LOG_HANDLER")]; ok {
		handler = h
	}

	return handler()
}
