package ledger

import (
	"errors"

	"github.com/nspcc-dev/millionaires-contract/contracts/millionaires/millionairesconst"
)

var (
	// ErrInvalidArgument is returned for requests which can never succeed:
	// malformed payloads, invalid addresses and net worth out of bounds.
	ErrInvalidArgument = errors.New(millionairesconst.KindInvalidArgument)

	// ErrNotFound is returned when requested record has not been stored yet.
	ErrNotFound = errors.New(millionairesconst.KindNotFound)

	// ErrSerialization is returned when a record or a response can't be
	// encoded or decoded. It signals a bug or a corrupted storage rather than
	// bad input.
	ErrSerialization = errors.New(millionairesconst.KindSerializationError)

	// ErrStorageUnavailable is returned when the underlying storage fails.
	ErrStorageUnavailable = errors.New(millionairesconst.KindStorageUnavailable)
)

var kinds = []error{
	ErrInvalidArgument,
	ErrNotFound,
	ErrSerialization,
	ErrStorageUnavailable,
}

// KindOf returns machine-readable kind of the ledger error or empty string if
// err is nil or was not produced by the Ledger.
func KindOf(err error) string {
	if err == nil {
		return ""
	}

	for i := range kinds {
		if errors.Is(err, kinds[i]) {
			return kinds[i].Error()
		}
	}

	return ""
}
