package adapter

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownSite matches every *UnknownSiteError.
	ErrUnknownSite = errors.New("unknown site")
	// ErrMalformedData matches every *MalformedDataError.
	ErrMalformedData = errors.New("malformed site data")
)

// UnknownSiteError means no adapter is registered for the key.
// Callers skip the file and keep going.
type UnknownSiteError struct {
	Site string
}

func (e *UnknownSiteError) Error() string {
	return fmt.Sprintf("no adapter registered for site %q", e.Site)
}

func (e *UnknownSiteError) Is(target error) bool { return target == ErrUnknownSite }

// MalformedDataError means the raw document lacks a field the adapter needs
// or holds a value of the wrong shape.
type MalformedDataError struct {
	Site  string
	Field string
	Err   error
}

func (e *MalformedDataError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("malformed %s data at %s", e.Site, e.Field)
	}
	return fmt.Sprintf("malformed %s data at %s: %v", e.Site, e.Field, e.Err)
}

func (e *MalformedDataError) Unwrap() error { return e.Err }

func (e *MalformedDataError) Is(target error) bool { return target == ErrMalformedData }

func malformed(site, field string, err error) error {
	return &MalformedDataError{Site: site, Field: field, Err: err}
}
