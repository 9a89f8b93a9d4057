package summarizer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ResponseKind tags a decoded inference response
type ResponseKind int

const (
	ResponseSuccess ResponseKind = iota + 1
	ResponseError
)

// Response is the decoded body: either a summary or an error message
type Response struct {
	Kind         ResponseKind
	SummaryText  string
	ErrorMessage string
}

// APIError is an error reported by the endpoint in its {"error": ...} body
type APIError struct {
	Message    string
	StatusCode int
}

func (e *APIError) Error() string {
	return e.Message
}

// DecodeError means the body matched neither the success nor the error shape
type DecodeError struct {
	StatusCode int
	Err        error
}

func (e *DecodeError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("unexpected summarization response (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("unexpected summarization response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

var (
	errEmptyBody     = errors.New("empty body")
	errEmptyArray    = errors.New("empty result array")
	errMissingField  = errors.New(`missing "summary_text"`)
	errUnknownObject = errors.New(`object without "error"`)
	errUnknownShape  = errors.New("body is neither an object nor an array")
)

type errorBody struct {
	Error *string `json:"error"`
}

type summaryItem struct {
	SummaryText *string `json:"summary_text"`
}

// DecodeResponse classifies a raw response body.
//
//	{"error": "..."}              -> ResponseError
//	[{"summary_text": "..."}, ...] -> ResponseSuccess (first element)
//
// Everything else is a *DecodeError.
func DecodeResponse(raw []byte) (Response, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Response{}, &DecodeError{Err: errEmptyBody}
	}

	switch trimmed[0] {
	case '{':
		var body errorBody
		if err := json.Unmarshal(trimmed, &body); err != nil {
			return Response{}, &DecodeError{Err: err}
		}
		if body.Error == nil {
			return Response{}, &DecodeError{Err: errUnknownObject}
		}
		return Response{Kind: ResponseError, ErrorMessage: *body.Error}, nil
	case '[':
		var items []summaryItem
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return Response{}, &DecodeError{Err: err}
		}
		if len(items) == 0 {
			return Response{}, &DecodeError{Err: errEmptyArray}
		}
		if items[0].SummaryText == nil {
			return Response{}, &DecodeError{Err: errMissingField}
		}
		return Response{Kind: ResponseSuccess, SummaryText: *items[0].SummaryText}, nil
	default:
		return Response{}, &DecodeError{Err: errUnknownShape}
	}
}
