package domain

// DefaultInputLimit is the number of characters of extracted text sent for summarization
const DefaultInputLimit = 3000

// GenerationParameters are passed verbatim to the summarization model
type GenerationParameters struct {
	MaxLength int  `json:"max_length"`
	MinLength int  `json:"min_length"`
	DoSample  bool `json:"do_sample"`
}

// SummaryRequest is the JSON body sent to the inference endpoint
type SummaryRequest struct {
	Inputs     string               `json:"inputs"`
	Parameters GenerationParameters `json:"parameters"`
}

// FailureKind classifies a failed summarization
type FailureKind string

const (
	FailureRemote     FailureKind = "remote_error"
	FailureUnexpected FailureKind = "unexpected"
)

// SummaryResult is either a summary or a failure message, never both
type SummaryResult struct {
	Summary string
	Kind    FailureKind
	Message string
	// InputChars is the number of characters actually sent.
	InputChars int
}

// NewSummarySuccess builds a successful result
func NewSummarySuccess(summary string, inputChars int) SummaryResult {
	return SummaryResult{Summary: summary, InputChars: inputChars}
}

// NewSummaryFailure builds a failed result
func NewSummaryFailure(kind FailureKind, message string, inputChars int) SummaryResult {
	return SummaryResult{Kind: kind, Message: message, InputChars: inputChars}
}

// OK reports whether the result carries a summary
func (r SummaryResult) OK() bool {
	return r.Kind == ""
}
