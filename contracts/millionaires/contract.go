package millionaires

import (
	"github.com/nspcc-dev/millionaires-contract/common"
	"github.com/nspcc-dev/millionaires-contract/contracts/millionaires/millionairesconst"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// Participant is a registered ledger participant with its declared net worth.
type Participant struct {
	Address  string
	NetWorth int
}

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	ctx := storage.GetContext()

	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	bits := millionairesconst.DefaultNetWorthBits
	if data != nil {
		args := data.([]any)
		if len(args) > 0 && args[0] != nil {
			bits = args[0].(int)
		}
	}

	if bits < 1 || bits > millionairesconst.MaxNetWorthBits {
		panic(millionairesconst.ErrInvalidNetWorthBits)
	}

	storage.Put(ctx, millionairesconst.NetWorthBitsKey, bits)

	runtime.Log("millionaires contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("millionaires contract updated")
}

// AddParticipant method registers participant with the given net worth or
// overwrites net worth of the already registered one. The participant becomes
// the richest one if its net worth is strictly greater than the current
// maximum, so the earliest participant wins ties.
//
// Address must be a non-empty UTF-8 string not longer than 52 bytes, so that
// the participant key fits into the storage key limit. Net worth must be
// non-negative and fit into the width configured on deployment.
//
// Produces ParticipantAdded notification and, if the richest participant has
// changed, RichestChanged notification.
func AddParticipant(address string, netWorth int) Participant {
	ctx := storage.GetContext()

	if len(address) == 0 || len(address) > millionairesconst.MaxAddressLength || !isValidUTF8(address) {
		panic(millionairesconst.ErrInvalidAddress)
	}

	if netWorth < 0 {
		panic(millionairesconst.ErrNegativeNetWorth)
	}

	if netWorth > maxNetWorth(ctx) {
		panic(millionairesconst.ErrNetWorthOverflow)
	}

	p := Participant{
		Address:  address,
		NetWorth: netWorth,
	}

	common.SetSerialized(ctx, participantKey(address), p)
	runtime.Notify("ParticipantAdded", address, netWorth)

	richest := common.GetSerialized(ctx, millionairesconst.RichestKey)
	if richest == nil || netWorth > richest.(Participant).NetWorth {
		common.SetSerialized(ctx, millionairesconst.RichestKey, p)
		runtime.Notify("RichestChanged", address, netWorth)
	}

	return p
}

// ComputeRichest method returns address of the participant with maximum net
// worth. It panics if no participants have been registered yet.
func ComputeRichest() string {
	ctx := storage.GetReadOnlyContext()

	richest := common.GetSerialized(ctx, millionairesconst.RichestKey)
	if richest == nil {
		panic(millionairesconst.ErrNoParticipants)
	}

	return richest.(Participant).Address
}

// GetParticipant method returns the last registration of the participant with
// the given address.
func GetParticipant(address string) Participant {
	ctx := storage.GetReadOnlyContext()

	p := common.GetSerialized(ctx, participantKey(address))
	if p == nil {
		panic(millionairesconst.ErrParticipantNotFound)
	}

	return p.(Participant)
}

// ListParticipants method returns iterator over all registered participants.
// Items are Participant structures ordered by address.
func ListParticipants() iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, []byte(millionairesconst.ParticipantPrefix),
		storage.ValuesOnly|storage.DeserializeValues)
}

// NetWorthBits method returns net worth width fixed on deployment.
func NetWorthBits() int {
	ctx := storage.GetReadOnlyContext()
	return netWorthBits(ctx)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func netWorthBits(ctx storage.Context) int {
	return storage.Get(ctx, millionairesconst.NetWorthBitsKey).(int)
}

func maxNetWorth(ctx storage.Context) int {
	return 1<<netWorthBits(ctx) - 1
}

func participantKey(address string) string {
	return millionairesconst.ParticipantPrefix + address
}

// isValidUTF8 reports whether s consists of well-formed UTF-8 sequences only:
// no overlong encodings, surrogates or code points above U+10FFFF.
func isValidUTF8(s string) bool {
	b := []byte(s)
	n := len(b)

	for i := 0; i < n; {
		c := int(b[i])
		if c < 0x80 {
			i++
			continue
		}

		var size int
		lo, hi := 0x80, 0xBF

		switch {
		case c >= 0xC2 && c <= 0xDF:
			size = 2
		case c == 0xE0:
			size, lo = 3, 0xA0
		case c == 0xED:
			size, hi = 3, 0x9F
		case c >= 0xE1 && c <= 0xEF:
			size = 3
		case c == 0xF0:
			size, lo = 4, 0x90
		case c >= 0xF1 && c <= 0xF3:
			size = 4
		case c == 0xF4:
			size, hi = 4, 0x8F
		default:
			return false
		}

		if i+size > n {
			return false
		}

		c = int(b[i+1])
		if c < lo || c > hi {
			return false
		}

		for j := i + 2; j < i+size; j++ {
			c = int(b[j])
			if c < 0x80 || c > 0xBF {
				return false
			}
		}

		i += size
	}

	return true
}
