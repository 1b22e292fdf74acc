package catalog

import (
	"fmt"
	"strconv"
)

// Kind is the category of a failed request.
type Kind int

const (
	Timeout Kind = iota + 1
	ServerError
	NetworkError
)

func (k Kind) String() string {
	switch k {
	case Timeout:
		return "timeout"
	case ServerError:
		return "server error"
	case NetworkError:
		return "network error"
	default:
		return "unknown"
	}
}

// Failure is the error returned by every Client call.
type Failure struct {
	Kind Kind
	// Code is the HTTP status for ServerError.
	Code int
	// Detail describes a NetworkError.
	Detail string
	Err    error
}

// Sentinels for errors.Is. A ServerError sentinel matches any code.
var (
	ErrTimeout = &Failure{Kind: Timeout}
	ErrServer  = &Failure{Kind: ServerError}
	ErrNetwork = &Failure{Kind: NetworkError}
)

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s: %v", f.Kind, f.Reason(), f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Reason())
}

func (f *Failure) Unwrap() error {
	return f.Err
}

func (f *Failure) Is(target error) bool {
	t, ok := target.(*Failure)
	if !ok {
		return false
	}
	return t.Kind == f.Kind && (t.Code == 0 || t.Code == f.Code)
}

// Reason is the short user-facing cause.
func (f *Failure) Reason() string {
	switch f.Kind {
	case Timeout:
		return "Fetch Timeout"
	case ServerError:
		return strconv.Itoa(f.Code)
	default:
		return f.Detail
	}
}

// Message is the text shown on the status indicator for a failed catalog fetch.
func (f *Failure) Message() string {
	if f.Kind == ServerError {
		return "API FAILURE " + strconv.Itoa(f.Code)
	}
	return "API FAILURE: " + f.Reason()
}
