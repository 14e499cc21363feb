package operation

import (
	"boscoin.io/announcer/lib/errors"
)

// AddToWhitelist votes for adding every listed account.
type AddToWhitelist struct {
	Authors []string `json:"authors"`
}

func NewAddToWhitelist(authors ...string) AddToWhitelist {
	return AddToWhitelist{Authors: authors}
}

func (o AddToWhitelist) IsWellFormed() error {
	return checkAuthors(o.Authors)
}

func (o AddToWhitelist) TargetAddresses() []string {
	return o.Authors
}

// RemoveFromWhitelist votes for removing every listed account.
type RemoveFromWhitelist struct {
	Authors []string `json:"authors"`
}

func NewRemoveFromWhitelist(authors ...string) RemoveFromWhitelist {
	return RemoveFromWhitelist{Authors: authors}
}

func (o RemoveFromWhitelist) IsWellFormed() error {
	return checkAuthors(o.Authors)
}

func (o RemoveFromWhitelist) TargetAddresses() []string {
	return o.Authors
}

func checkAuthors(authors []string) error {
	if len(authors) < 1 {
		return errors.InvalidInput.Clone().SetData("reason", "empty author list")
	}

	for _, a := range authors {
		if len(a) < 1 {
			return errors.InvalidInput.Clone().SetData("reason", "empty author")
		}
	}

	return nil
}
