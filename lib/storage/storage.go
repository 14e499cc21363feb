package storage

import (
	logging "github.com/inconshreveable/log15"

	"boscoin.io/announcer/lib/common"
)

var log logging.Logger = logging.New("module", "storage")

func init() {
	SetLogging(common.DefaultLogLevel, common.DefaultLogHandler)
}

func SetLogging(level logging.Lvl, handler logging.Handler) {
	log.SetHandler(logging.LvlFilterHandler(level, handler))
}

// Backend is an ordered key/value store with json encoded values and
// single-writer transactions. Reads inside a transaction see its own
// writes.
type Backend interface {
	Has(string) (bool, error)
	GetRaw(string) ([]byte, error)
	Get(string, interface{}) error

	// New fails when the key exists, Set when it is missing. Put writes
	// unconditionally.
	New(string, interface{}) error
	Set(string, interface{}) error
	Put(string, interface{}) error

	// Remove fails when the key is missing; Delete does not.
	Remove(string) error
	Delete(string) error

	GetIterator(prefix string, option ListOptions) (func() (IterItem, bool), func())

	OpenTransaction() (Backend, error)
	IsTransaction() bool
	Commit() error
	Discard() error

	Close() error
}

type IterItem struct {
	N     uint64
	Key   []byte
	Value []byte
}

func (i IterItem) Clone() IterItem {
	return IterItem{
		N:     i.N,
		Key:   append([]byte(nil), i.Key...),
		Value: append([]byte(nil), i.Value...),
	}
}

// Collect drains an iterator.
func Collect(st Backend, prefix string, option ListOptions) []IterItem {
	it, closeFunc := st.GetIterator(prefix, option)
	defer closeFunc()

	var items []IterItem
	for {
		v, hasNext := it()
		if !hasNext {
			break
		}
		items = append(items, v)
	}

	return items
}

func encodeValue(v interface{}) ([]byte, error) {
	return common.EncodeJSONValue(v)
}
