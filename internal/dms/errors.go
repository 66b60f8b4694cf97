package dms

import (
	"errors"
	"fmt"
)

var (
	// ErrLoginFailed means the DMS rejected the supplied credentials.
	ErrLoginFailed = errors.New("dms: login failed")

	// ErrDocumentNotFound means no object matched the search criteria.
	// This is a normal outcome for lookups, not a protocol failure.
	ErrDocumentNotFound = errors.New("dms: document not found")
)

// CallError reports a non-zero result code from a DMS operation. The
// server does not distinguish failure classes beyond the code itself.
type CallError struct {
	Op   string
	Code int
}

func (e *CallError) Error() string {
	return fmt.Sprintf("dms: %s returned result code %d", e.Op, e.Code)
}
