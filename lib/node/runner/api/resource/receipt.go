package resource

import (
	"strings"

	"github.com/nvellon/hal"

	"boscoin.io/announcer/lib/common"
	"boscoin.io/announcer/lib/contract"
)

type Receipt struct {
	r contract.Receipt
}

func NewReceipt(r contract.Receipt) *Receipt {
	return &Receipt{r: r}
}

func (r Receipt) GetMap() hal.Entry {
	attributes := map[string]string{}
	for _, a := range r.r.Attributes {
		attributes[a.Key] = a.Value
	}

	return hal.Entry{
		"hash":       r.r.Hash,
		"source":     r.r.Source,
		"operation":  r.r.Operation,
		"attributes": attributes,
		"time":       common.FormatISO8601(r.r.Time),
	}
}

func (r Receipt) Resource() *hal.Resource {
	return hal.NewResource(r, r.LinkSelf())
}

func (r Receipt) LinkSelf() string {
	return strings.Replace(URLTransactionByHash, "{id}", r.r.Hash, -1)
}
