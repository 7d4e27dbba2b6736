package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/nspcc-dev/millionaires-contract/internal/ledger"
	"github.com/nspcc-dev/millionaires-contract/rpc/millionaires"
	"github.com/nspcc-dev/neo-go/pkg/core/storage"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/urfave/cli"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	err := newApp().Run(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "millionaires"
	app.Usage = "Track the richest of the registered participants"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "path to the YAML configuration file",
		},
		cli.BoolFlag{
			Name:  "debug, d",
			Usage: "enable debug logging",
		},
	}

	remoteFlags := []cli.Flag{
		cli.StringFlag{
			Name:  "rpc-endpoint, r",
			Usage: "Neo RPC server address (overrides RPC.Endpoint)",
		},
		cli.StringFlag{
			Name:  "contract",
			Usage: "Millionaires contract hash in LE (overrides RPC.Contract)",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:      "add",
			Usage:     "register participant or update its net worth",
			ArgsUsage: "<address> <net-worth>",
			Action:    addParticipant,
		},
		{
			Name:   "richest",
			Usage:  "print address of the richest participant",
			Action: computeRichest,
		},
		{
			Name:      "participant",
			Usage:     "print the participant registered with the given address",
			ArgsUsage: "<address>",
			Action:    getParticipant,
		},
		{
			Name:   "participants",
			Usage:  "print all registered participants",
			Action: listParticipants,
		},
		{
			Name:      "exec",
			Usage:     "apply JSON request read from the argument or stdin",
			ArgsUsage: `['{"add_participant":{"address":"fred","net_worth":100}}' | '{"compute_richest":{}}']`,
			Action:    execRequest,
		},
		{
			Name:  "remote",
			Usage: "query the deployed contract",
			Subcommands: []cli.Command{
				{
					Name:   "richest",
					Usage:  "print address of the richest participant",
					Flags:  remoteFlags,
					Action: remoteRichest,
				},
				{
					Name:      "participant",
					Usage:     "print the participant registered with the given address",
					ArgsUsage: "<address>",
					Flags:     remoteFlags,
					Action:    remoteParticipant,
				},
			},
		},
	}

	return app
}

func newLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	return cfg.Build()
}

// withLedger opens the ledger according to the global flags, passes it to f
// and closes it afterwards.
func withLedger(c *cli.Context, f func(*ledger.Ledger) error) error {
	cfg, err := loadConfig(c.GlobalString("config"))
	if err != nil {
		return err
	}

	log, err := newLogger(c.GlobalBool("debug"))
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	store, err := storage.NewStore(cfg.Storage)
	if err != nil {
		return fmt.Errorf("open %s storage: %w", cfg.Storage.Type, err)
	}

	l, err := ledger.New(store, cfg.Ledger, log)
	if err != nil {
		_ = store.Close()
		return err
	}

	err = f(l)

	if closeErr := l.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	return err
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func callerEnv() ledger.Env {
	caller, err := os.Hostname()
	if err != nil {
		caller = "cli"
	}

	return ledger.NewEnv(caller)
}

func addParticipant(c *cli.Context) error {
	if c.NArg() != 2 {
		return errors.New("expected <address> <net-worth> arguments")
	}

	netWorth, ok := new(big.Int).SetString(c.Args().Get(1), 10)
	if !ok {
		return fmt.Errorf("%w: net worth is not a decimal integer: %q", ledger.ErrInvalidArgument, c.Args().Get(1))
	}

	return withLedger(c, func(l *ledger.Ledger) error {
		p, err := l.AddParticipant(callerEnv(), c.Args().Get(0), netWorth)
		if err != nil {
			return err
		}

		return printJSON(c.App.Writer, p)
	})
}

func computeRichest(c *cli.Context) error {
	return withLedger(c, func(l *ledger.Ledger) error {
		res, err := l.ComputeRichest(callerEnv())
		if err != nil {
			return err
		}

		return printJSON(c.App.Writer, res)
	})
}

func getParticipant(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("expected <address> argument")
	}

	return withLedger(c, func(l *ledger.Ledger) error {
		p, err := l.Participant(c.Args().First())
		if err != nil {
			return err
		}

		return printJSON(c.App.Writer, p)
	})
}

func listParticipants(c *cli.Context) error {
	return withLedger(c, func(l *ledger.Ledger) error {
		ps, err := l.Participants()
		if err != nil {
			return err
		}

		if ps == nil {
			ps = []ledger.Participant{}
		}

		return printJSON(c.App.Writer, ps)
	})
}

func execRequest(c *cli.Context) error {
	var (
		payload []byte
		err     error
	)

	if c.NArg() > 0 {
		payload = []byte(c.Args().First())
	} else {
		payload, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read request from stdin: %w", err)
		}
	}

	return withLedger(c, func(l *ledger.Ledger) error {
		res, err := l.Serve(callerEnv(), payload)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(c.App.Writer, string(res))
		return err
	})
}

// withRemoteReader dials the Neo RPC server and passes reader of the
// Millionaires contract to f.
func withRemoteReader(c *cli.Context, f func(*millionaires.ContractReader) error) error {
	cfg, err := loadConfig(c.GlobalString("config"))
	if err != nil {
		return err
	}

	endpoint := cfg.RPC.Endpoint
	if s := c.String("rpc-endpoint"); s != "" {
		endpoint = s
	}

	contract := cfg.RPC.Contract
	if s := c.String("contract"); s != "" {
		contract = s
	}

	switch {
	case endpoint == "":
		return errors.New("missing Neo RPC endpoint")
	case contract == "":
		return errors.New("missing Millionaires contract hash")
	}

	hash, err := util.Uint160DecodeStringLE(contract)
	if err != nil {
		return fmt.Errorf("decode contract hash: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RPC.Timeout)
	defer cancel()

	rpc, err := rpcclient.New(ctx, endpoint, rpcclient.Options{
		DialTimeout:    cfg.RPC.Timeout,
		RequestTimeout: cfg.RPC.Timeout,
	})
	if err != nil {
		return fmt.Errorf("RPC client dial: %w", err)
	}
	defer rpc.Close()

	err = rpc.Init()
	if err != nil {
		return fmt.Errorf("init RPC client: %w", err)
	}

	return millionaires.ClassifyError(f(millionaires.NewReader(invoker.New(rpc, nil), hash)))
}

func remoteRichest(c *cli.Context) error {
	return withRemoteReader(c, func(r *millionaires.ContractReader) error {
		addr, err := r.ComputeRichest()
		if err != nil {
			return err
		}

		return printJSON(c.App.Writer, ledger.ComputeRichestResponse{Address: addr})
	})
}

func remoteParticipant(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("expected <address> argument")
	}

	return withRemoteReader(c, func(r *millionaires.ContractReader) error {
		p, err := r.GetParticipant(c.Args().First())
		if err != nil {
			return err
		}

		return printJSON(c.App.Writer, struct {
			Address  string   `json:"address"`
			NetWorth *big.Int `json:"net_worth"`
		}{p.Address, p.NetWorth})
	})
}
