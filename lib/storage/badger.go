package storage

import (
	"encoding/json"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"

	"boscoin.io/announcer/lib/errors"
)

// BadgerBackend keeps the same contract as LevelDBBackend on top of badger.
// Outside of a transaction every call runs in its own badger transaction.
type BadgerBackend struct {
	DB *badger.DB

	txn *badger.Txn
}

type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...interface{}) {
	log.Error(fmt.Sprintf(format, args...), "engine", "badger")
}

func (badgerLogger) Warningf(format string, args ...interface{}) {
	log.Warn(fmt.Sprintf(format, args...), "engine", "badger")
}

func (badgerLogger) Infof(format string, args ...interface{}) {
	log.Info(fmt.Sprintf(format, args...), "engine", "badger")
}

func (badgerLogger) Debugf(format string, args ...interface{}) {
	log.Debug(fmt.Sprintf(format, args...), "engine", "badger")
}

func setBadgerCoreError(err error) error {
	if err == nil {
		return nil
	}

	if _, ok := err.(*errors.Error); ok {
		return err
	}

	return errors.Wrap(errors.StorageCoreError, err)
}

func (st *BadgerBackend) Init(config *Config) (err error) {
	var opts badger.Options
	switch config.Scheme {
	case SchemeBadgerMemory:
		opts = badger.DefaultOptions("").WithInMemory(true)
	case SchemeBadgerFile:
		opts = badger.DefaultOptions(config.Path)
	default:
		return errors.StorageUnknownScheme.Clone().SetData("scheme", config.Scheme)
	}

	opts = opts.WithLogger(badgerLogger{}).WithLoggingLevel(badger.WARNING)

	if st.DB, err = badger.Open(opts); err != nil {
		return setBadgerCoreError(err)
	}

	log.Debug("badger opened", "scheme", config.Scheme, "path", config.Path)

	return nil
}

func (st *BadgerBackend) Close() error {
	return st.DB.Close()
}

func (st *BadgerBackend) IsTransaction() bool {
	return st.txn != nil
}

func (st *BadgerBackend) OpenTransaction() (Backend, error) {
	if st.IsTransaction() {
		return nil, errors.StorageAlreadyInTransaction
	}

	return &BadgerBackend{DB: st.DB, txn: st.DB.NewTransaction(true)}, nil
}

func (st *BadgerBackend) Discard() error {
	if !st.IsTransaction() {
		return errors.StorageNotInTransaction
	}

	st.txn.Discard()
	return nil
}

func (st *BadgerBackend) Commit() error {
	if !st.IsTransaction() {
		return errors.StorageNotInTransaction
	}

	return setBadgerCoreError(st.txn.Commit())
}

func (st *BadgerBackend) view(f func(*badger.Txn) error) error {
	if st.txn != nil {
		return f(st.txn)
	}

	return st.DB.View(f)
}

func (st *BadgerBackend) update(f func(*badger.Txn) error) error {
	if st.txn != nil {
		return f(st.txn)
	}

	return st.DB.Update(f)
}

func (st *BadgerBackend) Has(k string) (exists bool, err error) {
	err = st.view(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(k))
		if err == badger.ErrKeyNotFound {
			return nil
		} else if err != nil {
			return err
		}
		exists = true
		return nil
	})

	return exists, setBadgerCoreError(err)
}

func (st *BadgerBackend) GetRaw(k string) (b []byte, err error) {
	err = st.view(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(k))
		if err == badger.ErrKeyNotFound {
			return errors.StorageRecordDoesNotExist
		} else if err != nil {
			return err
		}

		b, err = item.ValueCopy(nil)
		return err
	})

	return b, setBadgerCoreError(err)
}

func (st *BadgerBackend) Get(k string, i interface{}) (err error) {
	var b []byte
	if b, err = st.GetRaw(k); err != nil {
		return
	}

	if err = json.Unmarshal(b, i); err != nil {
		return setBadgerCoreError(fmt.Errorf("failed to decode %q: %v", k, err))
	}

	return
}

func (st *BadgerBackend) New(k string, v interface{}) error {
	encoded, err := encodeValue(v)
	if err != nil {
		return setBadgerCoreError(err)
	}

	return setBadgerCoreError(st.update(func(txn *badger.Txn) error {
		if _, err := txn.Get([]byte(k)); err == nil {
			return errors.StorageRecordAlreadyExists.Clone().SetData("key", k)
		} else if err != badger.ErrKeyNotFound {
			return err
		}

		return txn.Set([]byte(k), encoded)
	}))
}

func (st *BadgerBackend) Set(k string, v interface{}) error {
	encoded, err := encodeValue(v)
	if err != nil {
		return setBadgerCoreError(err)
	}

	return setBadgerCoreError(st.update(func(txn *badger.Txn) error {
		if _, err := txn.Get([]byte(k)); err == badger.ErrKeyNotFound {
			return errors.StorageRecordDoesNotExist.Clone().SetData("key", k)
		} else if err != nil {
			return err
		}

		return txn.Set([]byte(k), encoded)
	}))
}

func (st *BadgerBackend) Put(k string, v interface{}) error {
	encoded, err := encodeValue(v)
	if err != nil {
		return setBadgerCoreError(err)
	}

	return setBadgerCoreError(st.update(func(txn *badger.Txn) error {
		return txn.Set([]byte(k), encoded)
	}))
}

func (st *BadgerBackend) Remove(k string) error {
	return setBadgerCoreError(st.update(func(txn *badger.Txn) error {
		if _, err := txn.Get([]byte(k)); err == badger.ErrKeyNotFound {
			return errors.StorageRecordDoesNotExist.Clone().SetData("key", k)
		} else if err != nil {
			return err
		}

		return txn.Delete([]byte(k))
	}))
}

func (st *BadgerBackend) Delete(k string) error {
	return setBadgerCoreError(st.update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(k))
	}))
}

// GetIterator reads the whole matching range before returning: a badger
// read-write transaction allows one open iterator at a time, and callers
// nest point reads and writes inside their loops.
func (st *BadgerBackend) GetIterator(prefix string, option ListOptions) (func() (IterItem, bool), func()) {
	reverse, cursor, limit := parseListOptions(option)
	start, _ := prefixRange([]byte(prefix), cursor)

	var items []IterItem
	err := st.view(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(start); it.ValidForPrefix([]byte(prefix)); it.Next() {
			item := it.Item()
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			items = append(items, IterItem{Key: item.KeyCopy(nil), Value: value})

			if !reverse && limit != 0 && uint64(len(items)) >= limit {
				break
			}
		}

		return nil
	})
	if err != nil {
		log.Error("failed to iterate", "prefix", prefix, "error", err)
		items = nil
	}

	if reverse {
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
		if limit != 0 && uint64(len(items)) > limit {
			items = items[:limit]
		}
	}

	var n uint64
	return func() (IterItem, bool) {
			if n >= uint64(len(items)) {
				return IterItem{}, false
			}
			item := items[n]
			n++
			item.N = n
			return item, true
		},
		func() {}
}
