// Package millionaires contains RPC wrappers for Millionaires contract.
package millionaires

import (
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"math/big"
	"unicode/utf8"
)

// MillionairesParticipant is a contract-specific millionaires.Participant type used by its methods.
type MillionairesParticipant struct {
	Address string
	NetWorth *big.Int
}

// ParticipantAddedEvent represents "ParticipantAdded" event emitted by the contract.
type ParticipantAddedEvent struct {
	Address string
	NetWorth *big.Int
}

// RichestChangedEvent represents "RichestChanged" event emitted by the contract.
type RichestChangedEvent struct {
	Address string
	NetWorth *big.Int
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
	CallAndExpandIterator(contract util.Uint160, method string, maxItems int, params ...any) (*result.Invoke, error)
	TerminateSession(sessionID uuid.UUID) error
	TraverseIterator(sessionID uuid.UUID, iterator *result.Iterator, num int) ([]stackitem.Item, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// ComputeRichest invokes `computeRichest` method of contract.
func (c *ContractReader) ComputeRichest() (string, error) {
	return unwrap.UTF8String(c.invoker.Call(c.hash, "computeRichest"))
}

// GetParticipant invokes `getParticipant` method of contract.
func (c *ContractReader) GetParticipant(address string) (*MillionairesParticipant, error) {
	return itemToMillionairesParticipant(unwrap.Item(c.invoker.Call(c.hash, "getParticipant", address)))
}

// ListParticipants invokes `listParticipants` method of contract.
func (c *ContractReader) ListParticipants() (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "listParticipants"))
}

// ListParticipantsExpanded is similar to ListParticipants (uses the same contract
// method), but can be useful if the server used doesn't support sessions and
// doesn't expand iterators. It creates a script that will get the specified
// number of result items from the iterator right in the VM and return them to
// you. It's only limited by VM stack and GAS available for RPC invocations.
func (c *ContractReader) ListParticipantsExpanded(_numOfIteratorItems int) ([]stackitem.Item, error) {
	return unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "listParticipants", _numOfIteratorItems))
}

// NetWorthBits invokes `netWorthBits` method of contract.
func (c *ContractReader) NetWorthBits() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "netWorthBits"))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// AddParticipant creates a transaction invoking `addParticipant` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) AddParticipant(address string, netWorth *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "addParticipant", address, netWorth)
}

// AddParticipantTransaction creates a transaction invoking `addParticipant` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) AddParticipantTransaction(address string, netWorth *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "addParticipant", address, netWorth)
}

// AddParticipantUnsigned creates a transaction invoking `addParticipant` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) AddParticipantUnsigned(address string, netWorth *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "addParticipant", nil, address, netWorth)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(script []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", script, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", script, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, script, manifest, data)
}

// itemToMillionairesParticipant converts stack item into *MillionairesParticipant.
func itemToMillionairesParticipant(item stackitem.Item, err error) (*MillionairesParticipant, error) {
	if err != nil {
		return nil, err
	}
	var res = new(MillionairesParticipant)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of MillionairesParticipant from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *MillionairesParticipant) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	res.Address, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Address: %w", err)
	}

	index++
	res.NetWorth, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field NetWorth: %w", err)
	}

	return nil
}

// ParticipantAddedEventsFromApplicationLog retrieves a set of all emitted events
// with "ParticipantAdded" name from the provided [result.ApplicationLog].
func ParticipantAddedEventsFromApplicationLog(log *result.ApplicationLog) ([]*ParticipantAddedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ParticipantAddedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "ParticipantAdded" {
				continue
			}
			event := new(ParticipantAddedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ParticipantAddedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ParticipantAddedEvent or
// returns an error if it's not possible to do to so.
func (e *ParticipantAddedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Address, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Address: %w", err)
	}

	index++
	e.NetWorth, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field NetWorth: %w", err)
	}

	return nil
}

// RichestChangedEventsFromApplicationLog retrieves a set of all emitted events
// with "RichestChanged" name from the provided [result.ApplicationLog].
func RichestChangedEventsFromApplicationLog(log *result.ApplicationLog) ([]*RichestChangedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*RichestChangedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "RichestChanged" {
				continue
			}
			event := new(RichestChangedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize RichestChangedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to RichestChangedEvent or
// returns an error if it's not possible to do to so.
func (e *RichestChangedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Address, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Address: %w", err)
	}

	index++
	e.NetWorth, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field NetWorth: %w", err)
	}

	return nil
}
