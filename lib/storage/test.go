package storage

import (
	"os"
)

func CleanDB(path string) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return
	}

	os.RemoveAll(path)
}

// NewTestStorage returns a memory backed leveldb for unit tests.
func NewTestStorage() *LevelDBBackend {
	st := &LevelDBBackend{}
	config, _ := NewConfigFromString("memory://")
	if err := st.Init(config); err != nil {
		panic(err)
	}

	return st
}

// NewTestBadgerStorage returns a memory backed badger for unit tests.
func NewTestBadgerStorage() *BadgerBackend {
	st := &BadgerBackend{}
	config, _ := NewConfigFromString("badger-memory://")
	if err := st.Init(config); err != nil {
		panic(err)
	}

	return st
}

// BackendsForTest lists the engines every storage backed test should cover.
func BackendsForTest() map[string]func() Backend {
	return map[string]func() Backend{
		"leveldb": func() Backend { return NewTestStorage() },
		"badger":  func() Backend { return NewTestBadgerStorage() },
	}
}
