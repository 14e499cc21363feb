package storage

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIndexScopeIsNotPrefixOfLongerScope(t *testing.T) {
	a := NewIndex("t").WriteString("a").Bytes()
	ab := NewIndex("t").WriteString("a-b").WriteUint64(1).Bytes()

	require.False(t, bytes.HasPrefix(ab, a))
	require.False(t, strings.HasPrefix(string(ab), string(a)))
}

func TestIndexOrder(t *testing.T) {
	t0 := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	keys := [][]byte{
		NewIndex("x").WriteTime(time.Unix(-10, 0)).WriteUint64(9).Bytes(),
		NewIndex("x").WriteTime(t0).WriteUint64(1).Bytes(),
		NewIndex("x").WriteTime(t0).WriteUint64(2).Bytes(),
		NewIndex("x").WriteTime(t0).WriteUint64(256).Bytes(),
		NewIndex("x").WriteTime(t0.Add(time.Nanosecond)).WriteUint64(0).Bytes(),
	}

	for i := 1; i < len(keys); i++ {
		require.True(t, bytes.Compare(keys[i-1], keys[i]) < 0, "key %d", i)
	}

	id, ok := ReadUint64Suffix(keys[3])
	require.True(t, ok)
	require.Equal(t, uint64(256), id)

	_, ok = ReadUint64Suffix([]byte("x"))
	require.False(t, ok)
}

func TestIndexReader(t *testing.T) {
	t0 := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	key := NewIndex("x").WriteString("news").WriteTime(t0).WriteUint64(7).Bytes()

	r := NewIndexReader(key[1:])

	scope, ok := r.ReadString()
	require.True(t, ok)
	require.Equal(t, "news", scope)

	at, ok := r.ReadTime()
	require.True(t, ok)
	require.True(t, t0.Equal(at))

	id, ok := r.ReadUint64()
	require.True(t, ok)
	require.Equal(t, uint64(7), id)
	require.Equal(t, 0, r.Len())

	_, ok = r.ReadUint64()
	require.False(t, ok)

	// length larger than the rest of the key
	_, ok = NewIndexReader([]byte{0, 0, 0, 9, 'a'}).ReadString()
	require.False(t, ok)
}
