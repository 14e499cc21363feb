package topic

import (
	"strings"

	"boscoin.io/announcer/lib/common"
	"boscoin.io/announcer/lib/errors"
	"boscoin.io/announcer/lib/storage"
)

const TopicPrefixKey = "topic-"

// Topic is a named category announcements can be tagged with. Topics are
// never modified after registration.
type Topic struct {
	Identifier  string `json:"identifier"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// ReferenceChecker tells whether any record still points at a topic.
type ReferenceChecker interface {
	HasTopicReferences(st storage.Backend, identifier string) (bool, error)
}

func GetTopicKey(identifier string) string {
	return TopicPrefixKey + identifier
}

func (t Topic) IsWellFormed() error {
	if len(strings.TrimSpace(t.Identifier)) < 1 {
		return errors.InvalidInput.Clone().SetData("reason", "empty topic identifier")
	}

	return nil
}

func Exists(st storage.Backend, identifier string) (bool, error) {
	return st.Has(GetTopicKey(identifier))
}

func Get(st storage.Backend, identifier string) (t Topic, err error) {
	if err = st.Get(GetTopicKey(identifier), &t); err != nil {
		if errors.StorageRecordDoesNotExist.Is(err) {
			err = errors.NotFound.Clone().SetData("topic", identifier)
		}
		return
	}

	return
}

func Register(st storage.Backend, t Topic) error {
	if err := t.IsWellFormed(); err != nil {
		return err
	}

	if err := st.New(GetTopicKey(t.Identifier), t); err != nil {
		if errors.StorageRecordAlreadyExists.Is(err) {
			return errors.AlreadyExists.Clone().SetData("topic", t.Identifier)
		}
		return err
	}

	return nil
}

// Remove deletes the topic unless `refs` reports it is still referenced.
// Removing an unknown identifier is not an error.
func Remove(st storage.Backend, identifier string, refs ReferenceChecker) error {
	inUse, err := refs.HasTopicReferences(st, identifier)
	if err != nil {
		return err
	} else if inUse {
		return errors.InUse.Clone().SetData("topic", identifier)
	}

	return st.Delete(GetTopicKey(identifier))
}

// List returns every registered topic ordered by identifier.
func List(st storage.Backend) []Topic {
	iterFunc, closeFunc := st.GetIterator(TopicPrefixKey, nil)
	defer closeFunc()

	topics := []Topic{}
	for {
		item, hasNext := iterFunc()
		if !hasNext {
			break
		}

		var t Topic
		common.MustUnmarshalJSON(item.Value, &t)
		topics = append(topics, t)
	}

	return topics
}
