package storage

import (
	"encoding/json"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/announcer/lib/errors"
)

func forEachBackend(t *testing.T, f func(*testing.T, Backend)) {
	for name, newBackend := range BackendsForTest() {
		t.Run(name, func(t *testing.T) {
			st := newBackend()
			defer st.Close()

			f(t, st)
		})
	}
}

func TestBackendNew(t *testing.T) {
	forEachBackend(t, func(t *testing.T, st Backend) {
		key := "showme"
		input := map[int]string{
			90: "99",
			91: "91",
			92: "92",
		}
		require.NoError(t, st.New(key, input))

		fetched := map[int]string{}
		require.NoError(t, st.Get(key, &fetched))
		require.True(t, reflect.DeepEqual(input, fetched))

		err := st.New(key, input)
		require.ErrorIs(t, err, errors.StorageRecordAlreadyExists)
	})
}

func TestBackendSetPutRemove(t *testing.T) {
	forEachBackend(t, func(t *testing.T, st Backend) {
		err := st.Set("missing", 1)
		require.ErrorIs(t, err, errors.StorageRecordDoesNotExist)

		require.NoError(t, st.Put("counter", 1))
		require.NoError(t, st.Set("counter", 2))
		require.NoError(t, st.Put("counter", 3))

		var c int
		require.NoError(t, st.Get("counter", &c))
		require.Equal(t, 3, c)

		require.NoError(t, st.Remove("counter"))
		exists, err := st.Has("counter")
		require.NoError(t, err)
		require.False(t, exists)

		require.ErrorIs(t, st.Remove("counter"), errors.StorageRecordDoesNotExist)
		require.NoError(t, st.Delete("counter"))

		_, err = st.GetRaw("counter")
		require.ErrorIs(t, err, errors.StorageRecordDoesNotExist)
	})
}

func TestBackendTransaction(t *testing.T) {
	forEachBackend(t, func(t *testing.T, st Backend) {
		require.False(t, st.IsTransaction())
		require.ErrorIs(t, st.Commit(), errors.StorageNotInTransaction)

		{ // discarded writes are not visible
			ts, err := st.OpenTransaction()
			require.NoError(t, err)
			require.True(t, ts.IsTransaction())

			_, err = ts.OpenTransaction()
			require.ErrorIs(t, err, errors.StorageAlreadyInTransaction)

			require.NoError(t, ts.Put("a", "1"))
			exists, err := ts.Has("a")
			require.NoError(t, err)
			require.True(t, exists)

			require.NoError(t, ts.Discard())

			exists, err = st.Has("a")
			require.NoError(t, err)
			require.False(t, exists)
		}

		{ // committed writes are
			ts, err := st.OpenTransaction()
			require.NoError(t, err)
			require.NoError(t, ts.Put("a", "1"))
			require.NoError(t, ts.Put("b", "2"))
			require.NoError(t, ts.Delete("b"))

			// the transaction sees its own writes while iterating
			items := Collect(ts, "", nil)
			require.Equal(t, 1, len(items))
			require.Equal(t, []byte("a"), items[0].Key)

			require.NoError(t, ts.Commit())

			var v string
			require.NoError(t, st.Get("a", &v))
			require.Equal(t, "1", v)
		}
	})
}

func TestBackendIterator(t *testing.T) {
	forEachBackend(t, func(t *testing.T, st Backend) {
		for i := 0; i < 10; i++ {
			require.NoError(t, st.Put(fmt.Sprintf("item-%02d", i), i))
		}
		require.NoError(t, st.Put("itemz", 99))
		require.NoError(t, st.Put("other-00", -1))

		keys := func(items []IterItem) (ks []string) {
			for _, i := range items {
				ks = append(ks, string(i.Key))
			}
			return
		}

		{ // forward over the prefix
			items := Collect(st, "item-", nil)
			require.Equal(t, 10, len(items))
			require.Equal(t, "item-00", string(items[0].Key))
			require.Equal(t, uint64(1), items[0].N)
			require.Equal(t, "item-09", string(items[9].Key))
		}

		{ // reverse with inclusive lower bound
			options := NewDefaultListOptions(true, []byte("item-07"), 0)
			require.Equal(t, []string{"item-09", "item-08", "item-07"}, keys(Collect(st, "item-", options)))
		}

		{ // forward with cursor and limit
			options := NewDefaultListOptions(false, []byte("item-03"), 2)
			require.Equal(t, []string{"item-03", "item-04"}, keys(Collect(st, "item-", options)))
		}

		{ // reverse with limit
			options := NewDefaultListOptions(true, nil, 2)
			require.Equal(t, []string{"item-09", "item-08"}, keys(Collect(st, "item-", options)))
		}

		{ // a cursor below the prefix does not widen the scan
			options := NewDefaultListOptions(false, []byte("a"), 0)
			require.Equal(t, 10, len(Collect(st, "item-", options)))
		}

		{ // a cursor past the prefix yields nothing
			options := NewDefaultListOptions(true, []byte("j"), 0)
			require.Equal(t, 0, len(Collect(st, "item-", options)))
		}

		{
			var v int
			items := Collect(st, "other-", nil)
			require.Equal(t, 1, len(items))
			require.NoError(t, json.Unmarshal(items[0].Value, &v))
			require.Equal(t, -1, v)
		}
	})
}
