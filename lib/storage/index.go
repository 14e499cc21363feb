package storage

import (
	"encoding/binary"
	"time"
)

// Index builds binary keys whose byte order follows the order of the
// written elements. Strings are length prefixed, so a scope element never
// matches as the prefix of a longer one; numbers are fixed width big
// endian.
type Index struct {
	b []byte
}

func NewIndex(prefix string) *Index {
	return &Index{b: []byte(prefix)}
}

func (idx Index) Bytes() []byte {
	return append([]byte(nil), idx.b...)
}

func (idx Index) String() string {
	return string(idx.b)
}

func (idx *Index) WriteString(ss ...string) *Index {
	for _, s := range ss {
		var l [4]byte
		binary.BigEndian.PutUint32(l[:], uint32(len(s)))
		idx.b = append(idx.b, l[:]...)
		idx.b = append(idx.b, s...)
	}
	return idx
}

func (idx *Index) WriteUint64(vs ...uint64) *Index {
	for _, v := range vs {
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], v)
		idx.b = append(idx.b, b[:]...)
	}
	return idx
}

// WriteTime orders by nanoseconds since the epoch; the sign bit is flipped
// so times before 1970 still sort first.
func (idx *Index) WriteTime(t time.Time) *Index {
	return idx.WriteUint64(uint64(t.UnixNano()) ^ (1 << 63))
}

// ReadUint64Suffix decodes the trailing 8 bytes of a key built with
// WriteUint64.
func ReadUint64Suffix(key []byte) (uint64, bool) {
	if len(key) < 8 {
		return 0, false
	}

	return binary.BigEndian.Uint64(key[len(key)-8:]), true
}

// IndexReader reads back, in order, the elements written by an Index.
type IndexReader struct {
	b []byte
}

func NewIndexReader(b []byte) *IndexReader {
	return &IndexReader{b: b}
}

// Len is the number of bytes not read yet.
func (r *IndexReader) Len() int {
	return len(r.b)
}

func (r *IndexReader) ReadString() (string, bool) {
	if len(r.b) < 4 {
		return "", false
	}

	l := uint64(binary.BigEndian.Uint32(r.b[:4]))
	if uint64(len(r.b)-4) < l {
		return "", false
	}

	s := string(r.b[4 : 4+l])
	r.b = r.b[4+l:]

	return s, true
}

func (r *IndexReader) ReadUint64() (uint64, bool) {
	if len(r.b) < 8 {
		return 0, false
	}

	v := binary.BigEndian.Uint64(r.b[:8])
	r.b = r.b[8:]

	return v, true
}

func (r *IndexReader) ReadTime() (time.Time, bool) {
	v, ok := r.ReadUint64()
	if !ok {
		return time.Time{}, false
	}

	return time.Unix(0, int64(v^(1<<63))).UTC(), true
}
