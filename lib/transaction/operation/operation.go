package operation

import (
	"encoding/json"
	"reflect"

	"github.com/btcsuite/btcutil/base58"

	"boscoin.io/announcer/lib/common"
	"boscoin.io/announcer/lib/errors"
)

type OperationType string

const (
	TypeAddToWhitelist      OperationType = "add-to-whitelist"
	TypeRemoveFromWhitelist OperationType = "remove-from-whitelist"
	TypeAnnouncement        OperationType = "announcement"
	TypeDeleteAnnouncement  OperationType = "delete-announcement"
	TypeAddTopic            OperationType = "add-topic"
	TypeRemoveTopic         OperationType = "remove-topic"
)

func IsValidOperationType(oType string) bool {
	_, b := common.InStringArray([]string{
		string(TypeAddToWhitelist),
		string(TypeRemoveFromWhitelist),
		string(TypeAnnouncement),
		string(TypeDeleteAnnouncement),
		string(TypeAddTopic),
		string(TypeRemoveTopic),
	}, oType)
	return b
}

// Operation is one command for the contract.
type Operation struct {
	H Header
	B Body
}

func NewOperation(opb Body) (op Operation, err error) {
	var t OperationType
	switch opb.(type) {
	case AddToWhitelist:
		t = TypeAddToWhitelist
	case RemoveFromWhitelist:
		t = TypeRemoveFromWhitelist
	case Announcement:
		t = TypeAnnouncement
	case DeleteAnnouncement:
		t = TypeDeleteAnnouncement
	case AddTopic:
		t = TypeAddTopic
	case RemoveTopic:
		t = TypeRemoveTopic
	default:
		err = errors.UnknownOperationType
		return
	}

	op = Operation{
		H: Header{Type: t},
		B: opb,
	}

	return
}

type Header struct {
	Type OperationType `json:"type"`
}

type Body interface {
	// IsWellFormed checks the body on its own, without looking at the
	// contract state.
	IsWellFormed() error
}

// Targetable bodies name the accounts they act on.
type Targetable interface {
	TargetAddresses() []string
}

func (o Operation) IsWellFormed() (err error) {
	if o.B == nil {
		return errors.InvalidOperation
	}

	return o.B.IsWellFormed()
}

func (o Operation) MakeHash() []byte {
	return common.MustMakeObjectHash(o)
}

func (o Operation) MakeHashString() string {
	return base58.Encode(o.MakeHash())
}

func (o Operation) Serialize() (encoded []byte, err error) {
	return json.Marshal(o)
}

func (o Operation) String() string {
	encoded, _ := json.MarshalIndent(o, "", "  ")

	return string(encoded)
}

type envelop struct {
	H Header
	B interface{}
}

func (o *Operation) UnmarshalJSON(b []byte) (err error) {
	var raw json.RawMessage
	oj := envelop{
		B: &raw,
	}
	if err = json.Unmarshal(b, &oj); err != nil {
		return
	}

	o.H = oj.H

	var body Body
	if body, err = UnmarshalBodyJSON(oj.H.Type, raw); err != nil {
		return
	}
	o.B = body
	return nil
}

func UnmarshalBodyJSON(t OperationType, b []byte) (Body, error) {
	if bi, err := newBodyFromType(t); err != nil {
		return nil, err
	} else if err = json.Unmarshal(b, bi); err != nil {
		return nil, errors.Wrap(errors.InvalidMessage, err)
	} else {
		// No other way to go from interface-to-pointer to interface-to-value
		// because values within interfaces are not addressable
		return reflect.ValueOf(bi).Elem().Interface().(Body), nil
	}
}

// Returns: A pointer to a body with a type matching `ty`
func newBodyFromType(ty OperationType) (interface{}, error) {
	switch ty {
	case TypeAddToWhitelist:
		return &AddToWhitelist{}, nil
	case TypeRemoveFromWhitelist:
		return &RemoveFromWhitelist{}, nil
	case TypeAnnouncement:
		return &Announcement{}, nil
	case TypeDeleteAnnouncement:
		return &DeleteAnnouncement{}, nil
	case TypeAddTopic:
		return &AddTopic{}, nil
	case TypeRemoveTopic:
		return &RemoveTopic{}, nil
	default:
		return nil, errors.UnknownOperationType.Clone().SetData("type", string(ty))
	}
}
