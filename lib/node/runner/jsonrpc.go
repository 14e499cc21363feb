package runner

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	ghandlers "github.com/gorilla/handlers"
	"github.com/gorilla/rpc"
	jsonrpc "github.com/gorilla/rpc/json"

	"boscoin.io/announcer/lib/announcement"
	"boscoin.io/announcer/lib/contract"
	"boscoin.io/announcer/lib/quorum"
	"boscoin.io/announcer/lib/storage"
	"boscoin.io/announcer/lib/topic"
	"boscoin.io/announcer/lib/version"
	"boscoin.io/announcer/lib/voting"
)

const MaxLimitListOptions uint64 = 10000

var recordKinds = []struct {
	prefix string
	kind   string
}{
	{quorum.WhitelistKey, "whitelist"},
	{version.ContractInfoKey, "contract-info"},
	{voting.ProposalPrefixKey, "proposal"},
	{topic.TopicPrefixKey, "topic"},
	{contract.ReceiptPrefixKey, "receipt"},
}

type DBKeyArgs string
type DBHasResult bool

// DBEntry is a stored record next to what its key says about it. Scope is
// the proposal target, topic identifier or transaction hash, or the
// author or topic of an announcement index entry.
type DBEntry struct {
	Key   []byte          `json:"key"`
	Kind  string          `json:"kind"`
	Scope string          `json:"scope,omitempty"`
	Time  *time.Time      `json:"time,omitempty"`
	ID    uint64          `json:"id,omitempty"`
	Value json.RawMessage `json:"value"`
}

type DBListArgs struct {
	Prefix  string `json:"prefix"`
	Reverse bool   `json:"reverse"`
	Cursor  []byte `json:"cursor"`
	Limit   uint64 `json:"limit"`
}

type DBListResult struct {
	Limit   uint64    `json:"limit"`
	Entries []DBEntry `json:"entries"`
}

func NewDBEntry(key, value []byte) DBEntry {
	e := DBEntry{Key: key}
	if json.Valid(value) {
		e.Value = json.RawMessage(value)
	}

	if k, ok := announcement.ParseKey(key); ok {
		e.Kind, e.Scope, e.ID = k.Kind, k.Scope, k.ID
		if !k.Time.IsZero() {
			e.Time = &k.Time
		}
		return e
	}

	for _, r := range recordKinds {
		if strings.HasPrefix(string(key), r.prefix) {
			e.Kind = r.kind
			e.Scope = string(key[len(r.prefix):])
			break
		}
	}

	return e
}

// jsonrpcDBApp gives read only access to the stored records, index
// entries included.
type jsonrpcDBApp struct {
	st storage.Backend
}

func (j *jsonrpcDBApp) Has(r *http.Request, args *DBKeyArgs, result *DBHasResult) error {
	o, err := j.st.Has(string(*args))
	if err != nil {
		return err
	}

	*result = DBHasResult(o)
	return nil
}

func (j *jsonrpcDBApp) Get(r *http.Request, args *DBKeyArgs, result *DBEntry) error {
	o, err := j.st.GetRaw(string(*args))
	if err != nil {
		return err
	}

	*result = NewDBEntry([]byte(*args), o)
	return nil
}

func (j *jsonrpcDBApp) List(r *http.Request, args *DBListArgs, result *DBListResult) error {
	limit := args.Limit
	if limit < 1 || limit > MaxLimitListOptions {
		limit = MaxLimitListOptions
	}

	items := storage.Collect(j.st, args.Prefix, storage.NewDefaultListOptions(args.Reverse, args.Cursor, limit))

	result.Limit = limit
	result.Entries = []DBEntry{}
	for _, item := range items {
		result.Entries = append(result.Entries, NewDBEntry(item.Key, item.Value))
	}

	return nil
}

// NewJSONRPCHandler serves the `DB` service over JSON-RPC.
func NewJSONRPCHandler(st storage.Backend) http.Handler {
	s := rpc.NewServer()
	s.RegisterCodec(jsonrpc.NewCodec(), "application/json")
	s.RegisterCodec(jsonrpc.NewCodec(), "application/json;charset=UTF-8")
	s.RegisterService(&jsonrpcDBApp{st: st}, "DB")

	return ghandlers.CORS(
		ghandlers.AllowedOrigins([]string{"*"}),
		ghandlers.AllowedMethods([]string{"POST", "OPTIONS"}),
		ghandlers.AllowedHeaders([]string{"Content-Type", "Accept", "Authorization"}),
	)(s)
}
