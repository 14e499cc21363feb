package storage

import (
	"bytes"
)

// ListOptions narrows an iteration.
//
// Cursor is an inclusive lower bound on the full key in both directions,
// so a reverse scan walks from the end of the prefix down to the cursor.
type ListOptions interface {
	Reverse() bool
	SetReverse(bool) ListOptions
	Cursor() []byte
	SetCursor([]byte) ListOptions
	Limit() uint64
	SetLimit(uint64) ListOptions
}

type DefaultListOptions struct {
	reverse bool
	cursor  []byte
	limit   uint64
}

func NewDefaultListOptions(reverse bool, cursor []byte, limit uint64) *DefaultListOptions {
	return &DefaultListOptions{
		reverse: reverse,
		cursor:  cursor,
		limit:   limit,
	}
}

func (o DefaultListOptions) Reverse() bool {
	return o.reverse
}

func (o *DefaultListOptions) SetReverse(r bool) ListOptions {
	o.reverse = r
	return o
}

func (o DefaultListOptions) Cursor() []byte {
	return o.cursor
}

func (o *DefaultListOptions) SetCursor(c []byte) ListOptions {
	o.cursor = c
	return o
}

func (o DefaultListOptions) Limit() uint64 {
	return o.limit
}

func (o *DefaultListOptions) SetLimit(l uint64) ListOptions {
	o.limit = l
	return o
}

func parseListOptions(option ListOptions) (reverse bool, cursor []byte, limit uint64) {
	if option == nil {
		return
	}

	return option.Reverse(), option.Cursor(), option.Limit()
}

// prefixRange returns the [start, limit) key range of `prefix`, raised to
// `cursor` when the cursor falls inside it. A nil limit means "to the end".
func prefixRange(prefix, cursor []byte) (start, limit []byte) {
	start = prefix
	for i := len(prefix) - 1; i >= 0; i-- {
		c := prefix[i]
		if c < 0xff {
			limit = make([]byte, i+1)
			copy(limit, prefix)
			limit[i] = c + 1
			break
		}
	}

	if cursor != nil && bytes.Compare(cursor, start) > 0 {
		start = cursor
	}

	return
}
