package ledger

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/google/uuid"
	"github.com/nspcc-dev/millionaires-contract/contracts/millionaires/millionairesconst"
	"github.com/nspcc-dev/neo-go/pkg/core/storage"
	"go.uber.org/zap"
)

// Config groups Ledger parameters.
type Config struct {
	// Width of the net worth values in bits, [1, 64]. Fixed when the ledger is
	// initialized, zero means the stored width or 64 bits for a new ledger.
	NetWorthBits uint8 `yaml:"NetWorthBits"`
}

// Env describes the caller of a particular request. It is used to correlate
// log entries only and is never persisted.
type Env struct {
	Caller    string
	RequestID uuid.UUID
}

// NewEnv returns Env of the given caller with random request ID.
func NewEnv(caller string) Env {
	return Env{
		Caller:    caller,
		RequestID: uuid.New(),
	}
}

func (e Env) fields() []zap.Field {
	return []zap.Field{
		zap.String("caller", e.Caller),
		zap.Stringer("request", e.RequestID),
	}
}

// ComputeRichestResponse is a response to ComputeRichest request.
type ComputeRichestResponse struct {
	Address string `json:"address"`
}

// Ledger tracks the richest of the registered participants.
//
// Ledger must be constructed using New. Requests are processed one at a time.
type Ledger struct {
	log *zap.Logger

	// serializes transitions, store itself is not locked
	mtx   sync.Mutex
	store storage.Store
	bits  uint8
}

// New opens the ledger kept in the given store. Empty store is initialized
// with net worth width from cfg (64 bits by default). For already initialized
// store the stored width is used, explicitly configured width must match it.
//
// Nil logger disables logging.
func New(store storage.Store, cfg Config, log *zap.Logger) (*Ledger, error) {
	if log == nil {
		log = zap.NewNop()
	}

	bits, ok, err := getNetWorthBits(store)
	if err != nil {
		return nil, fmt.Errorf("read ledger configuration: %w", err)
	}

	if ok {
		if cfg.NetWorthBits != 0 && cfg.NetWorthBits != bits {
			return nil, fmt.Errorf("%w: ledger is initialized with %d-bit net worth, configured %d",
				ErrInvalidArgument, bits, cfg.NetWorthBits)
		}

		log.Debug("ledger opened", zap.Uint8("net worth bits", bits))
	} else {
		bits = cfg.NetWorthBits
		if bits == 0 {
			bits = millionairesconst.DefaultNetWorthBits
		}

		if err = checkNetWorthBits(bits); err != nil {
			return nil, err
		}

		tx := storage.NewMemCachedStore(store)
		putNetWorthBits(tx, bits)

		if err = commit(tx); err != nil {
			return nil, fmt.Errorf("initialize ledger: %w", err)
		}

		log.Info("ledger initialized", zap.Uint8("net worth bits", bits))
	}

	return &Ledger{
		log:   log,
		store: store,
		bits:  bits,
	}, nil
}

// NetWorthBits returns net worth width of the ledger.
func (l *Ledger) NetWorthBits() uint8 {
	return l.bits
}

// AddParticipant registers participant with the given net worth or overwrites
// net worth of the already registered one. The participant becomes the
// richest one if its net worth is strictly greater than the current maximum,
// so the earliest participant wins ties.
//
// Returns the stored participant which always echoes the arguments.
func (l *Ledger) AddParticipant(env Env, address string, netWorth *big.Int) (Participant, error) {
	if err := checkAddress(address); err != nil {
		return Participant{}, err
	}

	nw, err := checkNetWorth(netWorth, l.bits)
	if err != nil {
		return Participant{}, err
	}

	l.mtx.Lock()
	defer l.mtx.Unlock()

	p := Participant{
		Address:  address,
		NetWorth: nw,
	}

	tx := storage.NewMemCachedStore(l.store)

	if err = putParticipant(tx, participantKey(address), p); err != nil {
		return Participant{}, err
	}

	richest, ok, err := getParticipant(tx, millionairesconst.RichestKey)
	if err != nil {
		return Participant{}, fmt.Errorf("read richest participant: %w", err)
	}

	changed := !ok || p.NetWorth > richest.NetWorth
	if changed {
		if err = putParticipant(tx, millionairesconst.RichestKey, p); err != nil {
			return Participant{}, err
		}
	}

	if err = commit(tx); err != nil {
		return Participant{}, err
	}

	l.log.Debug("participant registered", append(env.fields(),
		zap.String("address", address), zap.Uint64("net worth", nw))...)

	if changed {
		l.log.Info("richest participant changed", append(env.fields(),
			zap.String("address", address), zap.Uint64("net worth", nw))...)
	}

	return p, nil
}

// ComputeRichest returns address of the participant with maximum net worth.
// Returns ErrNotFound if no participants have been registered yet.
func (l *Ledger) ComputeRichest(env Env) (ComputeRichestResponse, error) {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	richest, ok, err := getParticipant(l.store, millionairesconst.RichestKey)
	if err != nil {
		return ComputeRichestResponse{}, fmt.Errorf("read richest participant: %w", err)
	}

	if !ok {
		return ComputeRichestResponse{}, fmt.Errorf("%w: no participants registered yet", ErrNotFound)
	}

	l.log.Debug("richest participant requested", append(env.fields(),
		zap.String("address", richest.Address))...)

	return ComputeRichestResponse{Address: richest.Address}, nil
}

// Participant returns the last registration of the participant with the
// given address. Returns ErrNotFound if there is no such participant.
func (l *Ledger) Participant(address string) (Participant, error) {
	if err := checkAddress(address); err != nil {
		return Participant{}, err
	}

	l.mtx.Lock()
	defer l.mtx.Unlock()

	p, ok, err := getParticipant(l.store, participantKey(address))
	if err != nil {
		return Participant{}, fmt.Errorf("read participant %q: %w", address, err)
	}

	if !ok {
		return Participant{}, fmt.Errorf("%w: participant %q is not registered", ErrNotFound, address)
	}

	return p, nil
}

// Participants returns all registered participants ordered by address.
func (l *Ledger) Participants() ([]Participant, error) {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	var (
		res []Participant
		err error
	)

	l.store.Seek(storage.SeekRange{Prefix: []byte(millionairesconst.ParticipantPrefix)}, func(_, v []byte) bool {
		var p Participant

		p, err = decodeParticipant(v)
		if err != nil {
			return false
		}

		res = append(res, p)

		return true
	})

	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}

	return res, nil
}

// Close closes the underlying store.
func (l *Ledger) Close() error {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	if err := l.store.Close(); err != nil {
		return fmt.Errorf("%w: close store: %w", ErrStorageUnavailable, err)
	}

	return nil
}
