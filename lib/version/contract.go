package version

import (
	goversion "github.com/hashicorp/go-version"

	"boscoin.io/announcer/lib/errors"
	"boscoin.io/announcer/lib/storage"
)

const ContractInfoKey = "contract-info"

// ContractInfo records which code last wrote the contract state.
type ContractInfo struct {
	Contract string `json:"contract"`
	Version  string `json:"version"`
}

func NewContractInfo() ContractInfo {
	return ContractInfo{Contract: ContractName, Version: Version}
}

func GetContractInfo(st storage.Backend) (info ContractInfo, err error) {
	if err = st.Get(ContractInfoKey, &info); err != nil {
		if errors.StorageRecordDoesNotExist.Is(err) {
			err = errors.ContractNotInstantiated
		}
		return
	}

	return
}

func SetContractInfo(st storage.Backend, info ContractInfo) error {
	if _, err := goversion.NewVersion(info.Version); err != nil {
		return errors.InvalidVersion.Clone().SetData("version", info.Version)
	}

	return st.Put(ContractInfoKey, info)
}

// EnsureFromOlderVersion checks that the stored state was written by this
// contract at the same or an older version, and records `running` as the
// new version. It returns the previously stored info.
func EnsureFromOlderVersion(st storage.Backend, running ContractInfo) (stored ContractInfo, err error) {
	if stored, err = GetContractInfo(st); err != nil {
		return
	}

	if stored.Contract != running.Contract {
		err = errors.ContractNameMismatch.Clone().
			SetData("stored", stored.Contract).
			SetData("running", running.Contract)
		return
	}

	var storedVersion, runningVersion *goversion.Version
	if storedVersion, err = goversion.NewVersion(stored.Version); err != nil {
		err = errors.InvalidVersion.Clone().SetData("version", stored.Version)
		return
	}
	if runningVersion, err = goversion.NewVersion(running.Version); err != nil {
		err = errors.InvalidVersion.Clone().SetData("version", running.Version)
		return
	}

	if storedVersion.GreaterThan(runningVersion) {
		err = errors.ContractVersionTooNew.Clone().
			SetData("stored", stored.Version).
			SetData("running", running.Version)
		return
	}

	if storedVersion.LessThan(runningVersion) {
		err = SetContractInfo(st, running)
	}

	return
}
