package httputils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"quadvote.io/quadvote/lib/errors"
)

// Problem is a RFC7807 "problem detail" response body.
type Problem struct {
	// A URI reference that identifies the problem type. "about:blank" when
	// the status text says it all.
	Type string `json:"type"`

	// A short, human-readable summary of the problem type.
	Title string `json:"title"`

	// The HTTP status code generated for this occurrence.
	Status int `json:"status,omitempty"`

	// A human-readable explanation specific to this occurrence.
	Detail string `json:"detail,omitempty"`

	// A URI reference that identifies the specific occurrence.
	Instance string `json:"instance,omitempty"`
}

func NewStatusProblem(status int) Problem {
	return Problem{Type: "about:blank", Status: status, Title: http.StatusText(status)}
}

func NewDetailedStatusProblem(status int, detail string) Problem {
	p := NewStatusProblem(status)
	p.Detail = detail
	return p
}

func NewErrorProblem(err error, status int) Problem {
	p := NewStatusProblem(status)

	if e, ok := err.(*errors.Error); ok {
		p.Type = fmt.Sprintf("https://quadvote.io/problems/%d", e.Code)
		p.Title = e.Message
	} else {
		p.Detail = err.Error()
	}

	return p
}

func (p Problem) SetInstance(instance string) Problem {
	p.Instance = instance
	return p
}

func (p Problem) SetDetail(detail string) Problem {
	p.Detail = detail
	return p
}

func (p Problem) Serialize() ([]byte, error) {
	return json.Marshal(p)
}
