package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// ErrorKind classifies a filesystem failure
type ErrorKind int

const (
	OtherIOFailure ErrorKind = iota
	AccessDenied
	NotFound
	NotADirectory
)

// String returns the kind's name
func (k ErrorKind) String() string {
	switch k {
	case AccessDenied:
		return "AccessDenied"
	case NotFound:
		return "NotFound"
	case NotADirectory:
		return "NotADirectory"
	default:
		return "OtherIOFailure"
	}
}

// Classify maps an error from the os package to an ErrorKind
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return OtherIOFailure
	case errors.Is(err, fs.ErrPermission):
		return AccessDenied
	case errors.Is(err, fs.ErrNotExist):
		return NotFound
	case errors.Is(err, syscall.ENOTDIR):
		return NotADirectory
	default:
		return OtherIOFailure
	}
}

// describe formats err for a node's Err field
func describe(err error) string {
	return fmt.Sprintf("%s: %v", Classify(err), err)
}
