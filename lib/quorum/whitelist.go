package quorum

import (
	"boscoin.io/announcer/lib/common"
	"boscoin.io/announcer/lib/errors"
	"boscoin.io/announcer/lib/storage"
)

const WhitelistKey = "whitelist"

// Whitelist is the ordered set of accounts allowed to write. It is stored
// as a single value.
type Whitelist []string

func (w Whitelist) Contains(account string) bool {
	_, found := common.InStringArray(w, account)
	return found
}

// Add appends `account` unless it is already listed.
func (w Whitelist) Add(account string) Whitelist {
	if w.Contains(account) {
		return w
	}

	return append(w, account)
}

// Remove drops `account` by moving the last entry into its slot, so the
// order of the remaining members is not kept.
func (w Whitelist) Remove(account string) Whitelist {
	index, found := common.InStringArray(w, account)
	if !found {
		return w
	}

	last := len(w) - 1
	w[index] = w[last]

	return w[:last]
}

func GetWhitelist(st storage.Backend) (w Whitelist, err error) {
	if err = st.Get(WhitelistKey, &w); err != nil {
		if errors.StorageRecordDoesNotExist.Is(err) {
			err = errors.ContractNotInstantiated
		}
		return
	}

	if w == nil {
		w = Whitelist{}
	}

	return
}

func SaveWhitelist(st storage.Backend, w Whitelist) error {
	if w == nil {
		w = Whitelist{}
	}

	return st.Put(WhitelistKey, w)
}
