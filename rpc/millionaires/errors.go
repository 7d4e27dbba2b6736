package millionaires

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nspcc-dev/millionaires-contract/contracts/millionaires/millionairesconst"
)

var (
	// ErrInvalidArgument is matched by errors of the contract invocations
	// rejected because of invalid address or net worth.
	ErrInvalidArgument = errors.New(millionairesconst.KindInvalidArgument)

	// ErrNotFound is matched by errors of the contract invocations requesting
	// missing records, e.g. richest participant of the empty ledger.
	ErrNotFound = errors.New(millionairesconst.KindNotFound)
)

// ClassifyError makes errors of the contract invocations faulted with one of
// the known exceptions match ErrInvalidArgument or ErrNotFound. Other errors
// are returned as is.
//
//	addr, err := reader.ComputeRichest()
//	if errors.Is(millionaires.ClassifyError(err), millionaires.ErrNotFound) {
//		// nobody is registered yet
//	}
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}

	msg := err.Error()

	switch {
	case strings.Contains(msg, millionairesconst.KindInvalidArgument+":"):
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	case strings.Contains(msg, millionairesconst.KindNotFound+":"):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	return err
}
