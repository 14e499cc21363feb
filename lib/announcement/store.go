package announcement

import (
	"encoding/json"
	"time"

	lru "github.com/hashicorp/golang-lru"
	logging "github.com/inconshreveable/log15"

	"boscoin.io/announcer/lib/common"
	"boscoin.io/announcer/lib/errors"
	"boscoin.io/announcer/lib/storage"
	"boscoin.io/announcer/lib/topic"
)

var log logging.Logger = logging.New("module", "announcement")

func init() {
	SetLogging(common.DefaultLogLevel, common.DefaultLogHandler)
}

func SetLogging(level logging.Lvl, handler logging.Handler) {
	log.SetHandler(logging.LvlFilterHandler(level, handler))
}

// Store owns the announcement records and their author, topic and time
// orderings. Decoded records read outside of a transaction are kept in an
// LRU cache keyed by id.
type Store struct {
	cache *lru.Cache
}

func NewStore(cacheSize int) (*Store, error) {
	if cacheSize < 1 {
		cacheSize = common.DefaultRecordCacheSize
	}

	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, err
	}

	return &Store{cache: cache}, nil
}

func getCounter(st storage.Backend) (counter uint64, err error) {
	if err = st.Get(CounterKey, &counter); err != nil {
		if errors.StorageRecordDoesNotExist.Is(err) {
			return 0, nil
		}
		return
	}

	return
}

// Create stores a new announcement under the next id. `topicID` may be
// empty; otherwise the topic must be registered.
func (s *Store) Create(
	st storage.Backend,
	author, title, content, topicID string,
	now time.Time,
) (a Announcement, err error) {
	if len(author) < 1 {
		err = errors.InvalidInput.Clone().SetData("reason", "empty author")
		return
	}

	var t *topic.Topic
	if len(topicID) > 0 {
		var found topic.Topic
		if found, err = topic.Get(st, topicID); err != nil {
			return
		}
		t = &found
	}

	var counter uint64
	if counter, err = getCounter(st); err != nil {
		return
	}

	a = Announcement{
		ID:      counter + 1,
		Title:   title,
		Content: content,
		Author:  author,
		Topic:   t,
		Time:    now,
	}

	if err = st.Put(CounterKey, a.ID); err != nil {
		return
	}
	if err = st.New(GetRecordKey(a.ID), a); err != nil {
		return
	}
	for _, key := range a.indexKeys() {
		if err = st.New(key, a.ID); err != nil {
			return
		}
	}

	log.Debug("announcement created", "id", a.ID, "author", author, "topic", topicID)

	return
}

// Get returns errors.NotFound for an unknown id.
func (s *Store) Get(st storage.Backend, id uint64) (a Announcement, err error) {
	if cached, ok := s.cache.Get(id); ok && !st.IsTransaction() {
		return cached.(Announcement), nil
	}

	if err = st.Get(GetRecordKey(id), &a); err != nil {
		if errors.StorageRecordDoesNotExist.Is(err) {
			err = errors.NotFound.Clone().SetData("announcement", id)
		}
		return
	}

	if !st.IsTransaction() {
		s.cache.Add(id, a)
	}

	return
}

// Delete removes the record and its index entries. It reports whether
// the announcement existed; an unknown id is not an error.
func (s *Store) Delete(st storage.Backend, id uint64) (bool, error) {
	s.cache.Remove(id)

	a, err := s.Get(st, id)
	if errors.NotFound.Is(err) {
		return false, nil
	} else if err != nil {
		return false, err
	}

	for _, key := range append(a.indexKeys(), GetRecordKey(id)) {
		if err := st.Delete(key); err != nil {
			return false, err
		}
	}

	s.cache.Remove(id)

	log.Debug("announcement deleted", "id", id)

	return true, nil
}

// LoadAnnouncementsInsideIterator resolves index entries to records.
func (s *Store) LoadAnnouncementsInsideIterator(
	st storage.Backend,
	iterFunc func() (storage.IterItem, bool),
	closeFunc func(),
) (
	func() (Announcement, bool, []byte),
	func(),
) {
	return (func() (Announcement, bool, []byte) {
			for {
				item, hasNext := iterFunc()
				if !hasNext {
					return Announcement{}, false, item.Key
				}

				var id uint64
				if err := json.Unmarshal(item.Value, &id); err != nil {
					log.Error("broken index entry", "key", item.Key, "error", err)
					continue
				}

				a, err := s.Get(st, id)
				if err != nil {
					log.Error("index entry without record", "id", id, "error", err)
					continue
				}

				return a, true, item.Key
			}
		}), (func() {
			closeFunc()
		})
}

func (s *Store) GetAnnouncementsByAuthor(st storage.Backend, author string, since *Cursor) (
	func() (Announcement, bool, []byte),
	func(),
) {
	prefix := GetAuthorIndexPrefix(author)
	iterFunc, closeFunc := st.GetIterator(prefix, descending(prefix, since))

	return s.LoadAnnouncementsInsideIterator(st, iterFunc, closeFunc)
}

func (s *Store) GetAnnouncementsByTopic(st storage.Backend, identifier string, since *Cursor) (
	func() (Announcement, bool, []byte),
	func(),
) {
	prefix := GetTopicIndexPrefix(identifier)
	iterFunc, closeFunc := st.GetIterator(prefix, descending(prefix, since))

	return s.LoadAnnouncementsInsideIterator(st, iterFunc, closeFunc)
}

func (s *Store) GetAnnouncementsByTime(st storage.Backend, since *Cursor) (
	func() (Announcement, bool, []byte),
	func(),
) {
	prefix := GetTimeIndexPrefix()
	iterFunc, closeFunc := st.GetIterator(prefix, descending(prefix, since))

	return s.LoadAnnouncementsInsideIterator(st, iterFunc, closeFunc)
}

func collect(iterFunc func() (Announcement, bool, []byte), closeFunc func()) []Announcement {
	defer closeFunc()

	as := []Announcement{}
	for {
		a, hasNext, _ := iterFunc()
		if !hasNext {
			break
		}
		as = append(as, a)
	}

	return as
}

// QueryByAuthor lists the announcements of `author`, newest first, down to
// and including `since`.
func (s *Store) QueryByAuthor(st storage.Backend, author string, since *Cursor) []Announcement {
	return collect(s.GetAnnouncementsByAuthor(st, author, since))
}

// QueryByTopic is QueryByAuthor scoped by topic; "" selects untagged
// announcements.
func (s *Store) QueryByTopic(st storage.Backend, identifier string, since *Cursor) []Announcement {
	return collect(s.GetAnnouncementsByTopic(st, identifier, since))
}

func (s *Store) QueryByTime(st storage.Backend, since *Cursor) []Announcement {
	return collect(s.GetAnnouncementsByTime(st, since))
}

// HasTopicReferences scans the topic ordering for any entry of
// `identifier`.
func (s *Store) HasTopicReferences(st storage.Backend, identifier string) (bool, error) {
	iterFunc, closeFunc := st.GetIterator(
		GetTopicIndexPrefix(identifier),
		storage.NewDefaultListOptions(false, nil, 1),
	)
	defer closeFunc()

	_, found := iterFunc()

	return found, nil
}
