package httputils

import (
	"encoding/json"
	"net/http"

	"boscoin.io/announcer/lib/errors"
)

const ProblemTypeError = "https://boscoin.io/announcer/problems/error"

// Problem is a RFC 7807 problem document. Errors of the node are rendered
// with their code and data as extension members.
type Problem struct {
	Type     string                 `json:"type"`
	Title    string                 `json:"title"`
	Status   int                    `json:"status,omitempty"`
	Detail   string                 `json:"detail,omitempty"`
	Instance string                 `json:"instance,omitempty"`
	Code     uint                   `json:"code,omitempty"`
	Data     map[string]interface{} `json:"data,omitempty"`
}

func NewStatusProblem(status int) Problem {
	return Problem{Type: "about:blank", Title: http.StatusText(status), Status: status}
}

func NewDetailedStatusProblem(status int, detail string) Problem {
	p := NewStatusProblem(status)
	p.Detail = detail
	return p
}

func NewErrorProblem(err error, status int) Problem {
	e, ok := err.(*errors.Error)
	if !ok {
		return Problem{Type: "about:blank", Title: err.Error(), Status: status}
	}

	return Problem{
		Type:   ProblemTypeError,
		Title:  e.Message,
		Status: status,
		Code:   e.Code,
		Data:   e.Data,
	}
}

func (p Problem) SetInstance(instance string) Problem {
	p.Instance = instance
	return p
}

func (p Problem) SetDetail(detail string) Problem {
	p.Detail = detail
	return p
}

// AsError returns the node error carried by the problem, if any.
func (p Problem) AsError() *errors.Error {
	if p.Code == 0 {
		return nil
	}

	e := errors.NewError(p.Code, p.Title)
	for k, v := range p.Data {
		e.SetData(k, v)
	}

	return e
}

func (p Problem) Serialize() ([]byte, error) {
	return json.Marshal(p)
}
