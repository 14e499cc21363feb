package contract

import (
	"os"
	"testing"

	logging "github.com/inconshreveable/log15"

	"boscoin.io/announcer/lib/common/test"
)

func TestMain(m *testing.M) {
	SetLogging(logging.LvlDebug, test.LogHandler())

	os.Exit(m.Run())
}
