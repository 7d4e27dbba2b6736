package ledger

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/nspcc-dev/millionaires-contract/contracts/millionaires/millionairesconst"
	"github.com/nspcc-dev/neo-go/pkg/core/storage"
	"github.com/nspcc-dev/neo-go/pkg/encoding/bigint"
)

// reader is the read part of storage.Store implemented by both the backing
// store and the per-transition overlay.
type reader interface {
	Get(key []byte) ([]byte, error)
}

// get returns value stored by the key. Missing value is reported with false
// and nil error, all other failures are classified as ErrStorageUnavailable.
func get(r reader, key string) ([]byte, bool, error) {
	val, err := r.Get([]byte(key))
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("%w: read %q: %w", ErrStorageUnavailable, key, err)
	}

	return val, true, nil
}

func participantKey(address string) string {
	return millionairesconst.ParticipantPrefix + address
}

func getParticipant(r reader, key string) (Participant, bool, error) {
	data, ok, err := get(r, key)
	if err != nil || !ok {
		return Participant{}, ok, err
	}

	p, err := decodeParticipant(data)
	if err != nil {
		return p, false, err
	}

	return p, true, nil
}

func putParticipant(tx *storage.MemCachedStore, key string, p Participant) error {
	data, err := encodeParticipant(p)
	if err != nil {
		return err
	}

	tx.Put([]byte(key), data)

	return nil
}

// getNetWorthBits reads net worth width fixed at initialization. The value is
// stored as a VM integer like the contract does.
func getNetWorthBits(r reader) (uint8, bool, error) {
	data, ok, err := get(r, millionairesconst.NetWorthBitsKey)
	if err != nil || !ok {
		return 0, ok, err
	}

	bits := bigint.FromBytes(data)
	if !bits.IsUint64() || bits.Uint64() > millionairesconst.MaxNetWorthBits {
		return 0, false, fmt.Errorf("%w: stored net worth width %s is out of range", ErrSerialization, bits)
	}

	return uint8(bits.Uint64()), true, nil
}

func putNetWorthBits(tx *storage.MemCachedStore, bits uint8) {
	tx.Put([]byte(millionairesconst.NetWorthBitsKey), bigint.ToBytes(big.NewInt(int64(bits))))
}

// commit flushes buffered changes of the transition to the backing store.
func commit(tx *storage.MemCachedStore) error {
	_, err := tx.PersistSync()
	if err != nil {
		return fmt.Errorf("%w: persist changes: %w", ErrStorageUnavailable, err)
	}

	return nil
}
