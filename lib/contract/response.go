package contract

import (
	"strconv"
	"time"

	"boscoin.io/announcer/lib/errors"
	"boscoin.io/announcer/lib/storage"
)

const (
	AttributeAction     = "action"
	AttributeAuthor     = "author"
	AttributeProcessed  = "processed"
	AttributeConfirmed  = "confirmed"
	AttributePending    = "pending"
	AttributeID         = "id"
	AttributeIdentifier = "identifier"
)

type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Response carries the attributes of an executed command in the order
// they were added.
type Response struct {
	Attributes []Attribute `json:"attributes"`
}

func (r *Response) Add(key, value string) {
	r.Attributes = append(r.Attributes, Attribute{Key: key, Value: value})
}

func (r *Response) AddInt(key string, value int) {
	r.Add(key, strconv.Itoa(value))
}

func (r *Response) AddUint64(key string, value uint64) {
	r.Add(key, strconv.FormatUint(value, 10))
}

// Attribute returns the first value stored under `key`.
func (r Response) Attribute(key string) (string, bool) {
	for _, a := range r.Attributes {
		if a.Key == key {
			return a.Value, true
		}
	}

	return "", false
}

const ReceiptPrefixKey = "tx-"

// Receipt is stored for every executed transaction, in the same write as
// the changes it made.
type Receipt struct {
	Hash       string      `json:"hash"`
	Source     string      `json:"source"`
	Operation  string      `json:"operation"`
	Attributes []Attribute `json:"attributes"`
	Time       time.Time   `json:"time"`
}

func GetReceiptKey(hash string) string {
	return ReceiptPrefixKey + hash
}

func ExistsReceipt(st storage.Backend, hash string) (bool, error) {
	return st.Has(GetReceiptKey(hash))
}

func GetReceipt(st storage.Backend, hash string) (r Receipt, err error) {
	if err = st.Get(GetReceiptKey(hash), &r); err != nil {
		if errors.StorageRecordDoesNotExist.Is(err) {
			err = errors.TransactionNotFound.Clone().SetData("hash", hash)
		}
		return
	}

	return
}

func SaveReceipt(st storage.Backend, r Receipt) error {
	if err := st.New(GetReceiptKey(r.Hash), r); err != nil {
		if errors.StorageRecordAlreadyExists.Is(err) {
			return errors.TransactionAlreadyExists.Clone().SetData("hash", r.Hash)
		}
		return err
	}

	return nil
}
