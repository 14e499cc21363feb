package operation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/announcer/lib/common/keypair"
	"boscoin.io/announcer/lib/errors"
)

func TestNewOperation(t *testing.T) {
	cases := map[OperationType]Body{
		TypeAddToWhitelist:      NewAddToWhitelist("GA"),
		TypeRemoveFromWhitelist: NewRemoveFromWhitelist("GA"),
		TypeAnnouncement:        NewAnnouncement("t", "c", ""),
		TypeDeleteAnnouncement:  NewDeleteAnnouncement(1),
		TypeAddTopic:            NewAddTopic("news", "News", "", ""),
		TypeRemoveTopic:         NewRemoveTopic("news"),
	}

	for expected, body := range cases {
		op, err := NewOperation(body)
		require.NoError(t, err)
		require.Equal(t, expected, op.H.Type)
		require.True(t, IsValidOperationType(string(expected)))
	}

	require.False(t, IsValidOperationType("payment"))
}

func TestMakeHashOfOperation(t *testing.T) {
	kp := keypair.Master("find me")

	a := MakeTestAddToWhitelist(kp.Address())
	b := MakeTestAddToWhitelist(kp.Address())
	require.Equal(t, a.MakeHashString(), b.MakeHashString())

	c := MakeTestRemoveFromWhitelist(kp.Address())
	require.NotEqual(t, a.MakeHashString(), c.MakeHashString())
}

func TestIsWellFormedOperation(t *testing.T) {
	require.NoError(t, MakeTestAddToWhitelist().IsWellFormed())
	require.NoError(t, MakeTestAnnouncement("hello", "").IsWellFormed())
	require.NoError(t, MakeTestAddTopic("news").IsWellFormed())

	require.ErrorIs(t, MakeTestRemoveFromWhitelist().IsWellFormed(), errors.InvalidInput)
	require.ErrorIs(t, MakeTestRemoveFromWhitelist("").IsWellFormed(), errors.InvalidInput)
	require.ErrorIs(t, MakeTestAddTopic("").IsWellFormed(), errors.InvalidInput)
	require.ErrorIs(t, MakeTestRemoveTopic("  ").IsWellFormed(), errors.InvalidInput)
	require.ErrorIs(t, Operation{H: Header{Type: TypeAddTopic}}.IsWellFormed(), errors.InvalidOperation)
}

func TestOperationJSON(t *testing.T) {
	for _, op := range []Operation{
		MakeTestAddToWhitelist("GA", "GB"),
		MakeTestRemoveFromWhitelist("GA"),
		MakeTestAnnouncement("title", "news"),
		MakeTestDeleteAnnouncement(7),
		MakeTestAddTopic("news"),
		MakeTestRemoveTopic("news"),
	} {
		b, err := op.Serialize()
		require.NoError(t, err)

		var decoded Operation
		require.NoError(t, json.Unmarshal(b, &decoded))
		require.Equal(t, op, decoded)
		require.Equal(t, op.MakeHashString(), decoded.MakeHashString())
	}
}

func TestOperationJSONUnknownType(t *testing.T) {
	var op Operation
	err := json.Unmarshal([]byte(`{"H":{"type":"payment"},"B":{"target":"GA"}}`), &op)
	require.ErrorIs(t, err, errors.UnknownOperationType)

	err = json.Unmarshal([]byte(`{"H":{"type":"delete-announcement"},"B":{"id":"one"}}`), &op)
	require.ErrorIs(t, err, errors.InvalidMessage)
}
