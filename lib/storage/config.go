package storage

import (
	"net/url"
	"path/filepath"

	"boscoin.io/announcer/lib/errors"
)

const (
	SchemeLevelDBMemory = "memory"
	SchemeLevelDBFile   = "file"
	SchemeBadgerMemory  = "badger-memory"
	SchemeBadgerFile    = "badger"
)

// Config selects the storage engine and its location.
//
//	memory://              leveldb on memory
//	file:///var/db         leveldb on disk
//	badger-memory://       badger on memory
//	badger:///var/db       badger on disk
type Config struct {
	Scheme string
	Path   string
	Raw    string
}

func NewConfigFromString(s string) (*Config, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, errors.StorageUnknownScheme.Clone().SetData("storage", s)
	}

	config := &Config{Scheme: u.Scheme, Raw: s}

	switch u.Scheme {
	case SchemeLevelDBMemory, SchemeBadgerMemory:
	case SchemeLevelDBFile, SchemeBadgerFile:
		path := u.Path
		if len(u.Host) > 0 {
			// `file://./db` is parsed with "." as host
			path = u.Host + u.Path
		}
		if len(path) < 1 {
			return nil, errors.StorageUnknownScheme.Clone().SetData("storage", s)
		}
		if path, err = filepath.Abs(path); err != nil {
			return nil, err
		}
		config.Path = path
	default:
		return nil, errors.StorageUnknownScheme.Clone().SetData("storage", s)
	}

	return config, nil
}

// NewStorage opens the backend named by `config`.
func NewStorage(config *Config) (Backend, error) {
	switch config.Scheme {
	case SchemeLevelDBMemory, SchemeLevelDBFile:
		st := &LevelDBBackend{}
		if err := st.Init(config); err != nil {
			return nil, err
		}
		return st, nil
	case SchemeBadgerMemory, SchemeBadgerFile:
		st := &BadgerBackend{}
		if err := st.Init(config); err != nil {
			return nil, err
		}
		return st, nil
	}

	return nil, errors.StorageUnknownScheme.Clone().SetData("storage", config.Raw)
}
