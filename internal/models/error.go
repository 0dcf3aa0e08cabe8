package models

import (
	"errors"
	"fmt"
)

// FailureKind classifies why a single fetch produced no rate record.
// Classification is diagnostic only: the scan loop logs the kind and
// skips the pair, it never branches on it.
type FailureKind int

const (
	// FailureNetwork covers timeouts, connection errors and non-2xx
	// statuses.
	FailureNetwork FailureKind = iota
	// FailureAPIError is an explicit error message in the response body.
	FailureAPIError
	// FailureRateLimit is the upstream's soft slow-down note, not a
	// hard error.
	FailureRateLimit
	// FailureMalformed is a body without the expected quote object.
	FailureMalformed
	// FailureParse is a quote object with missing or non-numeric fields.
	FailureParse
)

func (k FailureKind) String() string {
	switch k {
	case FailureNetwork:
		return "network"
	case FailureAPIError:
		return "api_error"
	case FailureRateLimit:
		return "rate_limit"
	case FailureMalformed:
		return "malformed_response"
	case FailureParse:
		return "parse"
	default:
		return "unknown"
	}
}

// FetchError is the per-item failure returned by the rate fetcher.
type FetchError struct {
	Kind    FailureKind
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *FetchError) Unwrap() error { return e.Err }

// NewFetchError builds a classified fetch failure; cause may be nil.
func NewFetchError(kind FailureKind, msg string, cause error) *FetchError {
	return &FetchError{Kind: kind, Message: msg, Err: cause}
}

// AsFetchError extracts a FetchError from err, if there is one in its
// chain.
func AsFetchError(err error) (*FetchError, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
