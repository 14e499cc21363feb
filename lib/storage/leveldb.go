package storage

import (
	"encoding/json"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	leveldbIterator "github.com/syndtr/goleveldb/leveldb/iterator"
	leveldbOpt "github.com/syndtr/goleveldb/leveldb/opt"
	leveldbStorage "github.com/syndtr/goleveldb/leveldb/storage"
	leveldbUtil "github.com/syndtr/goleveldb/leveldb/util"

	"boscoin.io/announcer/lib/errors"
)

type LevelDBCore interface {
	Has([]byte, *leveldbOpt.ReadOptions) (bool, error)
	Get([]byte, *leveldbOpt.ReadOptions) ([]byte, error)
	NewIterator(*leveldbUtil.Range, *leveldbOpt.ReadOptions) leveldbIterator.Iterator
	Put([]byte, []byte, *leveldbOpt.WriteOptions) error
	Write(*leveldb.Batch, *leveldbOpt.WriteOptions) error
	Delete([]byte, *leveldbOpt.WriteOptions) error
}

type LevelDBBackend struct {
	DB *leveldb.DB

	Core LevelDBCore
}

func setLevelDBCoreError(err error) error {
	if err == nil {
		return nil
	}

	if _, ok := err.(*errors.Error); ok {
		return err
	}

	return errors.Wrap(errors.StorageCoreError, err)
}

func (st *LevelDBBackend) Init(config *Config) (err error) {
	var db *leveldb.DB

	switch config.Scheme {
	case SchemeLevelDBFile:
		if db, err = leveldb.OpenFile(config.Path, nil); err != nil {
			return setLevelDBCoreError(err)
		}
	case SchemeLevelDBMemory:
		sto := leveldbStorage.NewMemStorage()
		if db, err = leveldb.Open(sto, nil); err != nil {
			return setLevelDBCoreError(err)
		}
	default:
		return errors.StorageUnknownScheme.Clone().SetData("scheme", config.Scheme)
	}

	st.DB = db
	st.Core = db

	log.Debug("leveldb opened", "scheme", config.Scheme, "path", config.Path)

	return
}

func (st *LevelDBBackend) Close() error {
	return st.DB.Close()
}

func (st *LevelDBBackend) IsTransaction() bool {
	_, ok := st.Core.(*leveldb.Transaction)
	return ok
}

func (st *LevelDBBackend) OpenTransaction() (Backend, error) {
	if st.IsTransaction() {
		return nil, errors.StorageAlreadyInTransaction
	}

	transaction, err := st.DB.OpenTransaction()
	if err != nil {
		return nil, setLevelDBCoreError(err)
	}

	return &LevelDBBackend{
		DB:   st.DB,
		Core: transaction,
	}, nil
}

func (st *LevelDBBackend) Discard() error {
	ts, ok := st.Core.(*leveldb.Transaction)
	if !ok {
		return errors.StorageNotInTransaction
	}

	ts.Discard()
	return nil
}

func (st *LevelDBBackend) Commit() error {
	ts, ok := st.Core.(*leveldb.Transaction)
	if !ok {
		return errors.StorageNotInTransaction
	}

	return setLevelDBCoreError(ts.Commit())
}

func (st *LevelDBBackend) makeKey(key string) []byte {
	return []byte(key)
}

func (st *LevelDBBackend) Has(k string) (bool, error) {
	ok, err := st.Core.Has(st.makeKey(k), nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return false, nil
		}
		return false, setLevelDBCoreError(err)
	}

	return ok, nil
}

func (st *LevelDBBackend) GetRaw(k string) (b []byte, err error) {
	b, err = st.Core.Get(st.makeKey(k), nil)
	if err == leveldb.ErrNotFound {
		return nil, errors.StorageRecordDoesNotExist
	}

	return b, setLevelDBCoreError(err)
}

func (st *LevelDBBackend) Get(k string, i interface{}) (err error) {
	var b []byte
	if b, err = st.GetRaw(k); err != nil {
		return
	}

	if err = json.Unmarshal(b, i); err != nil {
		return setLevelDBCoreError(fmt.Errorf("failed to decode %q: %v", k, err))
	}

	return
}

func (st *LevelDBBackend) New(k string, v interface{}) (err error) {
	var exists bool
	if exists, err = st.Has(k); err != nil {
		return
	} else if exists {
		return errors.StorageRecordAlreadyExists.Clone().SetData("key", k)
	}

	return st.Put(k, v)
}

func (st *LevelDBBackend) Set(k string, v interface{}) (err error) {
	var exists bool
	if exists, err = st.Has(k); err != nil {
		return
	} else if !exists {
		return errors.StorageRecordDoesNotExist.Clone().SetData("key", k)
	}

	return st.Put(k, v)
}

func (st *LevelDBBackend) Put(k string, v interface{}) (err error) {
	var encoded []byte
	if encoded, err = encodeValue(v); err != nil {
		return setLevelDBCoreError(err)
	}

	return setLevelDBCoreError(st.Core.Put(st.makeKey(k), encoded, nil))
}

func (st *LevelDBBackend) Remove(k string) (err error) {
	var exists bool
	if exists, err = st.Has(k); err != nil {
		return
	} else if !exists {
		return errors.StorageRecordDoesNotExist.Clone().SetData("key", k)
	}

	return st.Delete(k)
}

func (st *LevelDBBackend) Delete(k string) error {
	return setLevelDBCoreError(st.Core.Delete(st.makeKey(k), nil))
}

func (st *LevelDBBackend) GetIterator(prefix string, option ListOptions) (func() (IterItem, bool), func()) {
	reverse, cursor, limit := parseListOptions(option)

	start, end := prefixRange(st.makeKey(prefix), cursor)
	iter := st.Core.NewIterator(&leveldbUtil.Range{Start: start, Limit: end}, nil)

	var started bool
	var n uint64
	return func() (IterItem, bool) {
			if limit != 0 && n >= limit {
				iter.Release()
				return IterItem{}, false
			}

			var ok bool
			switch {
			case !started && reverse:
				ok = iter.Last()
			case !started:
				ok = iter.First()
			case reverse:
				ok = iter.Prev()
			default:
				ok = iter.Next()
			}
			started = true

			if !ok {
				if err := iter.Error(); err != nil {
					log.Error("failed to iterate", "prefix", prefix, "error", err)
				}
				iter.Release()
				return IterItem{}, false
			}

			n++
			return IterItem{
				N:     n,
				Key:   append([]byte(nil), iter.Key()...),
				Value: append([]byte(nil), iter.Value()...),
			}, true
		},
		func() {
			iter.Release()
		}
}
