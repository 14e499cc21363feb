package topic

import (
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/announcer/lib/errors"
	"boscoin.io/announcer/lib/storage"
)

type fixedReferences map[string]bool

func (f fixedReferences) HasTopicReferences(_ storage.Backend, identifier string) (bool, error) {
	return f[identifier], nil
}

func TestRegisterAndGet(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	news := Topic{Identifier: "news", Name: "News", Description: "general news", Color: "#ff0000"}
	require.NoError(t, Register(st, news))

	fetched, err := Get(st, "news")
	require.NoError(t, err)
	require.Equal(t, news, fetched)

	err = Register(st, Topic{Identifier: "news", Name: "Other"})
	require.ErrorIs(t, err, errors.AlreadyExists)

	fetched, err = Get(st, "news")
	require.NoError(t, err)
	require.Equal(t, "News", fetched.Name)

	_, err = Get(st, "sports")
	require.ErrorIs(t, err, errors.NotFound)

	require.ErrorIs(t, Register(st, Topic{Identifier: " "}), errors.InvalidInput)
}

func TestRemove(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	require.NoError(t, Register(st, Topic{Identifier: "a"}))
	require.NoError(t, Register(st, Topic{Identifier: "a-b"}))

	refs := fixedReferences{"a-b": true}

	require.ErrorIs(t, Remove(st, "a-b", refs), errors.InUse)
	require.NoError(t, Remove(st, "missing", refs))
	require.NoError(t, Remove(st, "a", refs))

	exists, err := Exists(st, "a")
	require.NoError(t, err)
	require.False(t, exists)

	exists, err = Exists(st, "a-b")
	require.NoError(t, err)
	require.True(t, exists)
}

func TestList(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	require.Equal(t, []Topic{}, List(st))

	for _, id := range []string{"weather", "alerts", "news"} {
		require.NoError(t, Register(st, Topic{Identifier: id}))
	}

	topics := List(st)
	require.Equal(t, 3, len(topics))
	require.Equal(t, "alerts", topics[0].Identifier)
	require.Equal(t, "news", topics[1].Identifier)
	require.Equal(t, "weather", topics[2].Identifier)
}
