package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/nspcc-dev/millionaires-contract/internal/ledger"
	"github.com/stretchr/testify/require"
)

type cliRunner struct {
	t      *testing.T
	config string
}

func newCLIRunner(t *testing.T) *cliRunner {
	dir := t.TempDir()
	config := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(config, []byte(fmt.Sprintf(`
Storage:
  Type: boltdb
  BoltDBOptions:
    FilePath: %s
`, filepath.Join(dir, "ledger.bolt"))), 0o644))

	return &cliRunner{t: t, config: config}
}

func (r *cliRunner) run(args ...string) ([]byte, error) {
	app := newApp()
	buf := bytes.NewBuffer(nil)
	app.Writer = buf

	err := app.Run(append([]string{"millionaires", "--config", r.config}, args...))
	return buf.Bytes(), err
}

func (r *cliRunner) richest() string {
	out, err := r.run("richest")
	require.NoError(r.t, err)

	var res ledger.ComputeRichestResponse
	require.NoError(r.t, json.Unmarshal(out, &res))
	return res.Address
}

func TestCLI(t *testing.T) {
	r := newCLIRunner(t)

	_, err := r.run("richest")
	require.ErrorIs(t, err, ledger.ErrNotFound)

	out, err := r.run("add", "fred", "100")
	require.NoError(t, err)

	var p ledger.Participant
	require.NoError(t, json.Unmarshal(out, &p))
	require.Equal(t, ledger.Participant{Address: "fred", NetWorth: 100}, p)

	_, err = r.run("add", "thief", "200")
	require.NoError(t, err)
	require.Equal(t, "thief", r.richest())

	_, err = r.run("add", "bob", "200")
	require.NoError(t, err)
	require.Equal(t, "thief", r.richest())

	t.Run("invalid net worth", func(t *testing.T) {
		_, err := r.run("add", "bob", "lots")
		require.ErrorIs(t, err, ledger.ErrInvalidArgument)

		_, err = r.run("add", "bob", "18446744073709551616")
		require.ErrorIs(t, err, ledger.ErrInvalidArgument)

		_, err = r.run("add", "bob")
		require.Error(t, err)
	})

	t.Run("participant", func(t *testing.T) {
		out, err := r.run("participant", "bob")
		require.NoError(t, err)

		var p ledger.Participant
		require.NoError(t, json.Unmarshal(out, &p))
		require.Equal(t, ledger.Participant{Address: "bob", NetWorth: 200}, p)

		_, err = r.run("participant", "alice")
		require.ErrorIs(t, err, ledger.ErrNotFound)
	})

	t.Run("participants", func(t *testing.T) {
		out, err := r.run("participants")
		require.NoError(t, err)

		var ps []ledger.Participant
		require.NoError(t, json.Unmarshal(out, &ps))
		require.ElementsMatch(t, []ledger.Participant{
			{Address: "fred", NetWorth: 100},
			{Address: "thief", NetWorth: 200},
			{Address: "bob", NetWorth: 200},
		}, ps)
	})

	t.Run("exec", func(t *testing.T) {
		_, err := r.run("exec", `{"add_participant":{"address":"alice","net_worth":300}}`)
		require.NoError(t, err)

		out, err := r.run("exec", `{"compute_richest":{}}`)
		require.NoError(t, err)
		require.JSONEq(t, `{"address":"alice"}`, string(out))

		_, err = r.run("exec", `{"withdraw":{}}`)
		require.ErrorIs(t, err, ledger.ErrInvalidArgument)
	})
}

func TestCLI_Remote(t *testing.T) {
	r := newCLIRunner(t)

	_, err := r.run("remote", "richest")
	require.ErrorContains(t, err, "missing Neo RPC endpoint")

	_, err = r.run("remote", "richest", "--rpc-endpoint", "http://localhost:30333")
	require.ErrorContains(t, err, "missing Millionaires contract hash")

	_, err = r.run("remote", "richest", "--rpc-endpoint", "http://localhost:30333", "--contract", "not-a-hash")
	require.ErrorContains(t, err, "decode contract hash")
}
