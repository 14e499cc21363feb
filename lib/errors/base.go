package errors

import (
	"encoding/json"
	"io"
	"sort"

	"github.com/ethereum/go-ethereum/rlp"
)

// Error is the coded error shared by every layer of the node. The same
// value is returned by the contract, rendered by the API and decoded back
// by the client, so two errors are the same kind when their codes match.
type Error struct {
	Code    uint                   `json:"code"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data,omitempty" rlp:"-"`
}

func (o *Error) Serialize() (b []byte, err error) {
	b, err = json.Marshal(o)
	return
}

func (o *Error) Error() string {
	b, _ := o.Serialize()
	return string(b)
}

// Is lets `errors.Is` match cloned errors against the package values.
func (o *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || o == nil || t == nil {
		return false
	}

	return o.Code == t.Code
}

func (o *Error) SetData(k string, v interface{}) *Error {
	if o.Data == nil {
		o.Data = map[string]interface{}{}
	}
	o.Data[k] = v

	return o
}

func (o *Error) Clone() *Error {
	var n Error
	n = *o

	n.Data = map[string]interface{}{}
	for k, v := range o.Data {
		n.Data[k] = v
	}

	return &n
}

func (o *Error) EncodeRLP(w io.Writer) (err error) {
	if o == nil {
		return rlp.Encode(w, []uint{})
	}

	var d [][2]string
	if len(o.Data) > 0 {
		var keys []string
		for k := range o.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b, _ := json.Marshal(o.Data[k])
			d = append(d, [2]string{k, string(b)})
		}
	}

	return rlp.Encode(w, struct {
		Code    uint
		Message string
		Data    [][2]string
	}{
		Code:    o.Code,
		Message: o.Message,
		Data:    d,
	})
}

func NewError(code uint, message string) *Error {
	return &Error{Code: code, Message: message, Data: map[string]interface{}{}}
}

// Wrap keeps the code of `e` and appends the cause to the message.
func Wrap(e *Error, cause error) *Error {
	if cause == nil {
		return nil
	}

	n := e.Clone()
	n.Message = e.Message + ": " + cause.Error()

	return n
}
