package ledger

import (
	"fmt"
	"math"
	"math/big"
	"unicode/utf8"

	"github.com/nspcc-dev/millionaires-contract/contracts/millionaires/millionairesconst"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// Participant is a registered ledger participant with its declared net worth.
type Participant struct {
	Address  string `json:"address"`
	NetWorth uint64 `json:"net_worth"`
}

// ToStackItem converts Participant to the structure stored by the contract.
func (p Participant) ToStackItem() stackitem.Item {
	return stackitem.NewStruct([]stackitem.Item{
		stackitem.NewByteArray([]byte(p.Address)),
		stackitem.NewBigInteger(new(big.Int).SetUint64(p.NetWorth)),
	})
}

// FromStackItem restores Participant from the structure stored by the
// contract.
func (p *Participant) FromStackItem(item stackitem.Item) error {
	fields, ok := item.Value().([]stackitem.Item)
	if !ok {
		return fmt.Errorf("not a struct: %s", item.Type())
	}

	if len(fields) != 2 {
		return fmt.Errorf("wrong number of struct fields: %d", len(fields))
	}

	addr, err := fields[0].TryBytes()
	if err != nil {
		return fmt.Errorf("address: %w", err)
	}

	nw, err := fields[1].TryInteger()
	if err != nil {
		return fmt.Errorf("net worth: %w", err)
	}

	if nw.Sign() < 0 || !nw.IsUint64() {
		return fmt.Errorf("net worth out of range: %s", nw)
	}

	p.Address = string(addr)
	p.NetWorth = nw.Uint64()

	return nil
}

func encodeParticipant(p Participant) ([]byte, error) {
	data, err := stackitem.Serialize(p.ToStackItem())
	if err != nil {
		return nil, fmt.Errorf("%w: encode participant %q: %w", ErrSerialization, p.Address, err)
	}

	return data, nil
}

func decodeParticipant(data []byte) (Participant, error) {
	var p Participant

	item, err := stackitem.Deserialize(data)
	if err == nil {
		err = p.FromStackItem(item)
	}

	if err != nil {
		return p, fmt.Errorf("%w: decode participant: %w", ErrSerialization, err)
	}

	return p, nil
}

func checkAddress(address string) error {
	switch {
	case len(address) == 0:
		return fmt.Errorf("%w: empty participant address", ErrInvalidArgument)
	case len(address) > millionairesconst.MaxAddressLength:
		return fmt.Errorf("%w: participant address is longer than %d bytes",
			ErrInvalidArgument, millionairesconst.MaxAddressLength)
	case !utf8.ValidString(address):
		return fmt.Errorf("%w: participant address is not valid UTF-8", ErrInvalidArgument)
	}

	return nil
}

func checkNetWorthBits(bits uint8) error {
	if bits < 1 || bits > millionairesconst.MaxNetWorthBits {
		return fmt.Errorf("%w: net worth width must be in [1, %d] bits, got %d",
			ErrInvalidArgument, millionairesconst.MaxNetWorthBits, bits)
	}

	return nil
}

// MaxNetWorth returns the largest net worth representable in the given number
// of bits.
func MaxNetWorth(bits uint8) uint64 {
	if bits >= 64 {
		return math.MaxUint64
	}

	return 1<<bits - 1
}

func checkNetWorth(v *big.Int, bits uint8) (uint64, error) {
	switch {
	case v == nil:
		return 0, fmt.Errorf("%w: missing net worth", ErrInvalidArgument)
	case v.Sign() < 0:
		return 0, fmt.Errorf("%w: negative net worth %s", ErrInvalidArgument, v)
	case !v.IsUint64() || v.Uint64() > MaxNetWorth(bits):
		return 0, fmt.Errorf("%w: net worth %s exceeds %d-bit bound %d",
			ErrInvalidArgument, v, bits, MaxNetWorth(bits))
	}

	return v.Uint64(), nil
}
