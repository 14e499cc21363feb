package voting

import (
	"boscoin.io/announcer/lib/common"
	"boscoin.io/announcer/lib/errors"
	"boscoin.io/announcer/lib/storage"
)

const ProposalPrefixKey = "vote-"

func GetProposalKey(target string) string {
	return ProposalPrefixKey + target
}

func ExistsProposal(st storage.Backend, target string) (bool, error) {
	return st.Has(GetProposalKey(target))
}

// GetProposal returns errors.NotFound when there is no proposal for
// `target`.
func GetProposal(st storage.Backend, target string) (p Proposal, err error) {
	if err = st.Get(GetProposalKey(target), &p); err != nil {
		if errors.StorageRecordDoesNotExist.Is(err) {
			err = errors.NotFound.Clone().SetData("proposal", target)
		}
		return
	}

	return
}

func SaveProposal(st storage.Backend, p Proposal) error {
	return st.Put(GetProposalKey(p.Target), p)
}

// RemoveProposal does nothing when no proposal exists for `target`.
func RemoveProposal(st storage.Backend, target string) error {
	return st.Delete(GetProposalKey(target))
}

// GetProposals iterates every stored proposal, expired or not, in
// ascending target order.
func GetProposals(st storage.Backend, options storage.ListOptions) (func() (Proposal, bool, []byte), func()) {
	iterFunc, closeFunc := st.GetIterator(ProposalPrefixKey, options)

	return (func() (Proposal, bool, []byte) {
			item, hasNext := iterFunc()
			if !hasNext {
				return Proposal{}, false, item.Key
			}

			var p Proposal
			common.MustUnmarshalJSON(item.Value, &p)
			return p, hasNext, item.Key
		}), (func() {
			closeFunc()
		})
}

// LoadProposals drains GetProposals.
func LoadProposals(st storage.Backend, options storage.ListOptions) []Proposal {
	iterFunc, closeFunc := GetProposals(st, options)
	defer closeFunc()

	ps := []Proposal{}
	for {
		p, hasNext, _ := iterFunc()
		if !hasNext {
			break
		}
		ps = append(ps, p)
	}

	return ps
}
