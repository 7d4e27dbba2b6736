package main

import (
	"fmt"
	"os"
	"time"

	"github.com/nspcc-dev/millionaires-contract/internal/ledger"
	"github.com/nspcc-dev/neo-go/pkg/core/storage/dbconfig"
	"gopkg.in/yaml.v3"
)

const (
	defaultBoltDBPath = "./millionaires.bolt"
	defaultRPCTimeout = 15 * time.Second
)

// Config is the configuration file structure.
type Config struct {
	Ledger  ledger.Config            `yaml:"Ledger"`
	Storage dbconfig.DBConfiguration `yaml:"Storage"`
	RPC     RPCConfig                `yaml:"RPC"`
}

// RPCConfig describes the deployed contract accessed by remote commands.
type RPCConfig struct {
	Endpoint string        `yaml:"Endpoint"`
	Contract string        `yaml:"Contract"`
	Timeout  time.Duration `yaml:"Timeout"`
}

func defaultConfig() Config {
	return Config{
		Storage: dbconfig.DBConfiguration{
			Type: "boltdb",
			BoltDBOptions: dbconfig.BoltDBOptions{
				FilePath: defaultBoltDBPath,
			},
		},
		RPC: RPCConfig{
			Timeout: defaultRPCTimeout,
		},
	}
}

// loadConfig reads YAML configuration from the given file over the defaults.
// Empty path means defaults only.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("decode config file %s: %w", path, err)
	}

	if cfg.RPC.Timeout <= 0 {
		cfg.RPC.Timeout = defaultRPCTimeout
	}

	return cfg, nil
}
