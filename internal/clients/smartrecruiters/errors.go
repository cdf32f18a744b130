package smartrecruiters

import (
	"context"
	"fmt"
	"github.com/pkg/errors"
	"net"
)

var ErrInvalidParameters = errors.New("invalid search parameters")

// ErrorKind is the closed set of reasons a fetch can fail with.
type ErrorKind string

const (
	KindNetwork  ErrorKind = "network"
	KindTimeout  ErrorKind = "timeout"
	KindStatus   ErrorKind = "status"
	KindDecode   ErrorKind = "decode"
	KindCanceled ErrorKind = "canceled"
)

// FetchError is returned for every failed upstream fetch. No partial results accompany it.
type FetchError struct {
	Kind       ErrorKind
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream fetch failed (%s, status %d): %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("upstream fetch failed (%s): %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a FetchError anywhere in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Kind, true
	}
	return "", false
}

func newTransportError(ctx context.Context, err error) *FetchError {
	if ctxErr := ctx.Err(); ctxErr != nil {
		err = errors.Wrap(ctxErr, err.Error())
	}

	switch {
	case errors.Is(err, context.Canceled):
		return &FetchError{Kind: KindCanceled, Err: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &FetchError{Kind: KindTimeout, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &FetchError{Kind: KindTimeout, Err: err}
	}
	return &FetchError{Kind: KindNetwork, Err: err}
}
