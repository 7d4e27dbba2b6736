package millionaires

import (
	"errors"
	"math/big"
	"testing"

	"github.com/google/uuid"
	"github.com/nspcc-dev/millionaires-contract/contracts/millionaires/millionairesconst"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/stretchr/testify/require"
)

// testInvoker returns preset invocation result for each method.
type testInvoker struct {
	results map[string]*result.Invoke
	calls   []string
}

func (x *testInvoker) Call(_ util.Uint160, operation string, _ ...any) (*result.Invoke, error) {
	x.calls = append(x.calls, operation)
	return x.results[operation], nil
}

func (x *testInvoker) CallAndExpandIterator(contract util.Uint160, method string, _ int, params ...any) (*result.Invoke, error) {
	return x.Call(contract, method, params...)
}

func (x *testInvoker) TerminateSession(uuid.UUID) error {
	return errors.New("unexpected call")
}

func (x *testInvoker) TraverseIterator(uuid.UUID, *result.Iterator, int) ([]stackitem.Item, error) {
	return nil, errors.New("unexpected call")
}

func halt(items ...stackitem.Item) *result.Invoke {
	return &result.Invoke{
		State: vmstate.Halt.String(),
		Stack: items,
	}
}

func fault(exception string) *result.Invoke {
	return &result.Invoke{
		State:          vmstate.Fault.String(),
		FaultException: "at instruction 42 (THROW): unhandled exception: \"" + exception + "\"",
	}
}

func participantItem(address string, netWorth int64) stackitem.Item {
	return stackitem.NewStruct([]stackitem.Item{
		stackitem.NewByteArray([]byte(address)),
		stackitem.NewBigInteger(big.NewInt(netWorth)),
	})
}

func TestContractReader_ComputeRichest(t *testing.T) {
	inv := &testInvoker{results: map[string]*result.Invoke{
		"computeRichest": halt(stackitem.NewByteArray([]byte("fred"))),
	}}

	r := NewReader(inv, util.Uint160{1, 2, 3})

	addr, err := r.ComputeRichest()
	require.NoError(t, err)
	require.Equal(t, "fred", addr)
	require.Equal(t, []string{"computeRichest"}, inv.calls)

	inv.results["computeRichest"] = fault(millionairesconst.ErrNoParticipants)

	_, err = r.ComputeRichest()
	require.Error(t, err)
	require.ErrorIs(t, ClassifyError(err), ErrNotFound)
	require.NotErrorIs(t, ClassifyError(err), ErrInvalidArgument)
}

func TestContractReader_GetParticipant(t *testing.T) {
	inv := &testInvoker{results: map[string]*result.Invoke{
		"getParticipant": halt(participantItem("fred", 100)),
	}}

	r := NewReader(inv, util.Uint160{})

	p, err := r.GetParticipant("fred")
	require.NoError(t, err)
	require.Equal(t, "fred", p.Address)
	require.EqualValues(t, 100, p.NetWorth.Int64())

	inv.results["getParticipant"] = halt(stackitem.NewByteArray([]byte("fred")))
	_, err = r.GetParticipant("fred")
	require.Error(t, err)

	inv.results["getParticipant"] = fault(millionairesconst.ErrParticipantNotFound)
	_, err = r.GetParticipant("thief")
	require.ErrorIs(t, ClassifyError(err), ErrNotFound)
}

func TestContractReader_ListParticipantsExpanded(t *testing.T) {
	inv := &testInvoker{results: map[string]*result.Invoke{
		"listParticipants": halt(stackitem.NewArray([]stackitem.Item{
			participantItem("fred", 100),
			participantItem("thief", 1000),
		})),
	}}

	items, err := NewReader(inv, util.Uint160{}).ListParticipantsExpanded(10)
	require.NoError(t, err)
	require.Len(t, items, 2)

	var p MillionairesParticipant
	require.NoError(t, p.FromStackItem(items[1]))
	require.Equal(t, "thief", p.Address)
	require.EqualValues(t, 1000, p.NetWorth.Int64())
}

func TestClassifyError(t *testing.T) {
	require.NoError(t, ClassifyError(nil))

	plain := errors.New("connection refused")
	require.Equal(t, plain, ClassifyError(plain))

	err := ClassifyError(errors.New("invocation failed: " + millionairesconst.ErrNetWorthOverflow))
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestEventsFromApplicationLog(t *testing.T) {
	_, err := ParticipantAddedEventsFromApplicationLog(nil)
	require.Error(t, err)

	log := &result.ApplicationLog{
		Executions: []state.Execution{{
			Events: []state.NotificationEvent{
				{
					Name: "ParticipantAdded",
					Item: stackitem.NewArray([]stackitem.Item{
						stackitem.NewByteArray([]byte("fred")),
						stackitem.NewBigInteger(big.NewInt(100)),
					}),
				},
				{
					Name: "RichestChanged",
					Item: stackitem.NewArray([]stackitem.Item{
						stackitem.NewByteArray([]byte("fred")),
						stackitem.NewBigInteger(big.NewInt(100)),
					}),
				},
			},
		}},
	}

	added, err := ParticipantAddedEventsFromApplicationLog(log)
	require.NoError(t, err)
	require.Len(t, added, 1)
	require.Equal(t, "fred", added[0].Address)

	changed, err := RichestChangedEventsFromApplicationLog(log)
	require.NoError(t, err)
	require.Len(t, changed, 1)
	require.EqualValues(t, 100, changed[0].NetWorth.Int64())
}
