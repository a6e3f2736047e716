package agent

// FailureKind classifies why a generation produced no text.
type FailureKind int

const (
	KindNone FailureKind = iota
	KindEmptyResponse
	KindTransport
)

func (k FailureKind) String() string {
	switch k {
	case KindNone:
		return "success"
	case KindEmptyResponse:
		return "empty_response"
	case KindTransport:
		return "transport_error"
	}
	return "unknown"
}

// Result is the outcome of one Generate call.
type Result struct {
	Text     string
	Kind     FailureKind
	Err      error
	Language string
	Attempts int
}

func (r Result) OK() bool {
	return r.Kind == KindNone
}

// String renders the result for display: the reply, the fixed fallback, or the error.
func (r Result) String() string {
	switch r.Kind {
	case KindNone:
		return r.Text
	case KindEmptyResponse:
		return FallbackMessage
	default:
		msg := "unknown error"
		if r.Err != nil {
			msg = r.Err.Error()
		}
		return ErrorPrefix + msg
	}
}

func transportFailure(err error) Result {
	return Result{Kind: KindTransport, Err: err}
}
