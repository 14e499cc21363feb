package transaction

import (
	"encoding/json"
	"time"

	"github.com/btcsuite/btcutil/base58"

	"boscoin.io/announcer/lib/common"
	"boscoin.io/announcer/lib/common/keypair"
	"boscoin.io/announcer/lib/transaction/operation"
	"boscoin.io/announcer/lib/version"
)

const TransactionType = "transaction"

// Transaction is the signed envelope a client submits one command in.
// The hash covers the body only; the signature covers the network id and
// the hash.
type Transaction struct {
	T string
	H Header
	B Body
}

type Header struct {
	Version   string `json:"version"`
	Created   string `json:"created"`
	Hash      string `json:"hash"`
	Signature string `json:"signature"`
}

type Body struct {
	Source    string              `json:"source"`
	Nonce     uint64              `json:"nonce"`
	Operation operation.Operation `json:"operation"`
}

func (tb Body) MakeHash() []byte {
	return common.MustMakeObjectHash(tb)
}

func (tb Body) MakeHashString() string {
	return base58.Encode(tb.MakeHash())
}

// NewTransaction wraps `op` for `source`. The nonce tells apart otherwise
// identical commands, so the same command can be sent again on purpose.
func NewTransaction(source string, op operation.Operation) Transaction {
	now := time.Now()

	body := Body{
		Source:    source,
		Nonce:     uint64(now.UnixNano()),
		Operation: op,
	}

	return Transaction{
		T: TransactionType,
		H: Header{
			Version: version.Version,
			Created: common.FormatISO8601(now),
			Hash:    body.MakeHashString(),
		},
		B: body,
	}
}

var WellFormedCheckerFuncs = []common.CheckerFunc{
	CheckType,
	CheckSource,
	CheckOperation,
	CheckOperationTargets,
	CheckHash,
	CheckVerifySignature,
}

func (tx Transaction) IsWellFormed(networkID []byte) error {
	checker := &Checker{
		DefaultChecker: common.DefaultChecker{Funcs: WellFormedCheckerFuncs},
		NetworkID:      networkID,
		Transaction:    tx,
	}

	return common.RunChecker(checker, common.DefaultDeferFunc)
}

func (tx Transaction) GetType() string {
	return tx.T
}

func (tx Transaction) GetHash() string {
	return tx.H.Hash
}

func (tx Transaction) Source() string {
	return tx.B.Source
}

func (tx Transaction) Serialize() (encoded []byte, err error) {
	encoded, err = json.Marshal(tx)
	return
}

func (tx Transaction) String() string {
	encoded, _ := json.MarshalIndent(tx, "", "  ")
	return string(encoded)
}

func (tx *Transaction) Sign(kp keypair.KP, networkID []byte) {
	tx.H.Hash = tx.B.MakeHashString()
	signature, _ := keypair.MakeSignature(kp, networkID, tx.H.Hash)

	tx.H.Signature = base58.Encode(signature)
}
