package announcement

import (
	"strings"
	"time"

	"boscoin.io/announcer/lib/storage"
	"boscoin.io/announcer/lib/topic"
)

type Announcement struct {
	ID      uint64       `json:"id"`
	Title   string       `json:"title"`
	Content string       `json:"content"`
	Author  string       `json:"author"`
	Topic   *topic.Topic `json:"topic,omitempty"`
	Time    time.Time    `json:"time"`
}

// TopicIdentifier is "" for untagged announcements.
func (a Announcement) TopicIdentifier() string {
	if a.Topic == nil {
		return ""
	}

	return a.Topic.Identifier
}

// Cursor is an inclusive (time, id) lower bound for queries. An id of 0
// admits every announcement at Time.
type Cursor struct {
	Time time.Time `json:"time"`
	ID   uint64    `json:"id"`
}

func Since(t time.Time) *Cursor {
	return &Cursor{Time: t}
}

const (
	RecordPrefixKey      = "ann-record-"
	AuthorIndexPrefixKey = "ann-author-"
	TopicIndexPrefixKey  = "ann-topic-"
	TimeIndexPrefixKey   = "ann-time-"
	CounterKey           = "ann-counter"
)

func GetRecordKey(id uint64) string {
	return storage.NewIndex(RecordPrefixKey).WriteUint64(id).String()
}

func GetAuthorIndexPrefix(author string) string {
	return storage.NewIndex(AuthorIndexPrefixKey).WriteString(author).String()
}

func GetTopicIndexPrefix(identifier string) string {
	return storage.NewIndex(TopicIndexPrefixKey).WriteString(identifier).String()
}

func GetTimeIndexPrefix() string {
	return TimeIndexPrefixKey
}

func orderKey(prefix string, t time.Time, id uint64) string {
	return storage.NewIndex(prefix).WriteTime(t).WriteUint64(id).String()
}

const (
	KeyKindCounter     = "announcement-counter"
	KeyKindRecord      = "announcement"
	KeyKindAuthorIndex = "author-index"
	KeyKindTopicIndex  = "topic-index"
	KeyKindTimeIndex   = "time-index"
)

// Key is what an announcement storage key carries. Scope is the author or
// topic of an index entry.
type Key struct {
	Kind  string
	Scope string
	Time  time.Time
	ID    uint64
}

// ParseKey decodes keys written by this package.
func ParseKey(key []byte) (k Key, ok bool) {
	s := string(key)

	var r *storage.IndexReader
	switch {
	case s == CounterKey:
		return Key{Kind: KeyKindCounter}, true
	case strings.HasPrefix(s, RecordPrefixKey):
		r = storage.NewIndexReader(key[len(RecordPrefixKey):])
		k.Kind = KeyKindRecord
		if k.ID, ok = r.ReadUint64(); !ok {
			return
		}
		return k, r.Len() == 0
	case strings.HasPrefix(s, AuthorIndexPrefixKey):
		r = storage.NewIndexReader(key[len(AuthorIndexPrefixKey):])
		k.Kind = KeyKindAuthorIndex
		if k.Scope, ok = r.ReadString(); !ok {
			return
		}
	case strings.HasPrefix(s, TopicIndexPrefixKey):
		r = storage.NewIndexReader(key[len(TopicIndexPrefixKey):])
		k.Kind = KeyKindTopicIndex
		if k.Scope, ok = r.ReadString(); !ok {
			return
		}
	case strings.HasPrefix(s, TimeIndexPrefixKey):
		r = storage.NewIndexReader(key[len(TimeIndexPrefixKey):])
		k.Kind = KeyKindTimeIndex
	default:
		return
	}

	if k.Time, ok = r.ReadTime(); !ok {
		return
	}
	if k.ID, ok = r.ReadUint64(); !ok {
		return
	}

	return k, r.Len() == 0
}

func (a Announcement) NewAuthorIndexKey() string {
	return orderKey(GetAuthorIndexPrefix(a.Author), a.Time, a.ID)
}

func (a Announcement) NewTopicIndexKey() string {
	return orderKey(GetTopicIndexPrefix(a.TopicIdentifier()), a.Time, a.ID)
}

func (a Announcement) NewTimeIndexKey() string {
	return orderKey(GetTimeIndexPrefix(), a.Time, a.ID)
}

func (a Announcement) indexKeys() []string {
	return []string{a.NewAuthorIndexKey(), a.NewTopicIndexKey(), a.NewTimeIndexKey()}
}

// descending walks a scope from the newest entry down to `since`.
func descending(prefix string, since *Cursor) storage.ListOptions {
	options := storage.NewDefaultListOptions(true, nil, 0)
	if since != nil {
		options.SetCursor([]byte(orderKey(prefix, since.Time, since.ID)))
	}

	return options
}
