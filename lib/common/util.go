package common

import (
	"encoding/binary"
	"encoding/json"
	"net/url"
	"os"
	"strings"

	"github.com/google/uuid"
)

const MaxUintEncodeByte = 8

type Serializable interface {
	Serialize() ([]byte, error)
}

func GenerateUUID() string {
	return uuid.New().String()
}

func GetENVValue(key, defaultValue string) (v string) {
	var found bool
	if v, found = os.LookupEnv(key); !found {
		return defaultValue
	}

	return
}

func GetUrlQuery(query url.Values, key, defaultValue string) string {
	v := query.Get(key)
	if len(v) > 0 {
		return v
	}

	return defaultValue
}

func InStringArray(a []string, s string) (index int, found bool) {
	var h string
	for index, h = range a {
		found = h == s
		if found {
			return
		}
	}

	index = -1
	return
}

// CommaJoin renders a list of accounts the way result attributes carry
// them.
func CommaJoin(a []string) string {
	return strings.Join(a, ",")
}

func EncodeJSONValue(v interface{}) ([]byte, error) {
	if s, ok := v.(Serializable); ok {
		return s.Serialize()
	}

	return json.Marshal(v)
}

// MustUnmarshalJSON wraps `json.Unmarshal` for data that cannot be
// malformed, like records the node itself wrote to the storage.
func MustUnmarshalJSON(data []byte, v interface{}) {
	if err := json.Unmarshal(data, v); err != nil {
		panic(err)
	}
}

func MustMarshalJSON(o interface{}) []byte {
	b, _ := json.Marshal(o)
	return b
}

func JSONMarshalIndent(o interface{}) ([]byte, error) {
	return json.MarshalIndent(o, "", "  ")
}

func IsStringArrayEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i, v := range a {
		if v != b[i] {
			return false
		}
	}

	return true
}

func EncodeUint64ToByteSlice(i uint64) [MaxUintEncodeByte]byte {
	var b [MaxUintEncodeByte]byte
	binary.BigEndian.PutUint64(b[:], i)
	return b
}

func DecodeByteSliceToUint64(b []byte) uint64 {
	if len(b) < MaxUintEncodeByte {
		return 0
	}

	return binary.BigEndian.Uint64(b[:MaxUintEncodeByte])
}
