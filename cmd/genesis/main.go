// genesis builds (and optionally mines) a genesis block and prints the
// coinbase, header and hashes.
//
// Every setting can be given as a flag or a GENESIS_ environment variable:
//
//	genesis --block-bits=0x207fffff --block-time=1337 --mine-enabled
//	GENESIS_COINBASE_BALANCES=balances.csv genesis
package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/ardanlabs/conf/v3"
	"go.uber.org/zap"

	"github.com/suffix-labs/genblock/pkg/crypto"
	"github.com/suffix-labs/genblock/pkg/genesis"
	"github.com/suffix-labs/genblock/pkg/logger"
	"github.com/suffix-labs/genblock/pkg/pow"
)

// build is the git version of this program. It is set using build flags.
var build = "develop"

func main() {
	log, err := logger.New("GENESIS")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(log); err != nil {
		log.Errorw("startup", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

type config struct {
	conf.Version
	Block struct {
		Version   uint32 `conf:"default:1"`
		Time      uint32 `conf:"default:1337"`
		Nonce     uint32 `conf:"default:0"`
		Bits      string `conf:"default:0x207fffff"`
		Timestamp string `conf:"default:VeriBlock"`
		Hash      string `conf:"default:sha256t"`
	}
	Coinbase struct {
		PubKey   string `conf:"default:047c62bbf7f5aa4dd5c16bad99ac621b857fac4e93de86e45f5ada73404eeb44dedcf377b03c14a24e9d51605d9dd2d8ddaef58760d9c4bb82d9c8f06d96e79488"`
		Reward   uint64 `conf:"default:5000000000"`
		Balances string
	}
	Mine struct {
		Enabled     bool   `conf:"default:false"`
		MaxAttempts uint64 `conf:"default:0"`
	}
}

func run(log *zap.SugaredLogger) error {
	cfg := config{
		Version: conf.Version{
			Build: build,
			Desc:  "genesis block generator",
		},
	}

	const prefix = "GENESIS"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	log.Infow("starting service", "version", build)
	defer log.Infow("shutdown complete")

	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Infow("startup", "config", out)

	params, err := blockParams(cfg)
	if err != nil {
		return err
	}

	block, err := genesis.Build(params)
	if err != nil {
		return fmt.Errorf("building genesis block: %w", err)
	}

	if cfg.Mine.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		ev := func(v string, args ...any) {
			log.Infow(fmt.Sprintf(v, args...))
		}

		mined, res, err := block.Mine(ctx, pow.Options{
			StartNonce:  params.Nonce,
			MaxAttempts: cfg.Mine.MaxAttempts,
			OnEvent:     ev,
		})
		if err != nil {
			return err
		}
		log.Infow("mine", "status", "solved", "nonce", res.Nonce, "attempts", res.Attempts)
		block = mined
	}

	valid, err := block.Valid()
	if err != nil {
		return fmt.Errorf("checking proof of work: %w", err)
	}

	target, err := pow.TargetHex(params.Bits)
	if err != nil {
		return err
	}

	log.Infow("genesis",
		"hash", block.Hash().String(),
		"merkleRoot", block.MerkleRoot().String(),
		"hashFunc", block.HashFunc.String(),
		"target", target,
		"valid", valid,
		"outputs", len(block.Coinbase.Outputs),
	)
	log.Infow("genesis", "coinbase", hex.EncodeToString(block.Coinbase.Encode()))
	log.Infow("genesis", "header", hex.EncodeToString(block.Header))
	log.Infow("genesis", "block", hex.EncodeToString(block.Bytes()))

	if !valid {
		log.Infow("genesis", "status", "header does not meet its target; rerun with --mine-enabled")
	}

	return nil
}

// blockParams turns the parsed configuration into build parameters.
func blockParams(cfg config) (genesis.Params, error) {
	bits, err := strconv.ParseUint(cfg.Block.Bits, 0, 32)
	if err != nil {
		return genesis.Params{}, fmt.Errorf("parsing block bits %q: %w", cfg.Block.Bits, err)
	}

	hashFunc, err := crypto.ParseHashFunc(cfg.Block.Hash)
	if err != nil {
		return genesis.Params{}, err
	}

	var outputs []genesis.Output
	if cfg.Coinbase.PubKey != "" && cfg.Coinbase.Reward > 0 {
		pub, err := hex.DecodeString(cfg.Coinbase.PubKey)
		if err != nil {
			return genesis.Params{}, fmt.Errorf("decoding coinbase pubkey: %w", err)
		}

		out, err := genesis.PayToPubKeyOutput(pub, cfg.Coinbase.Reward)
		if err != nil {
			return genesis.Params{}, fmt.Errorf("coinbase reward output: %w", err)
		}
		outputs = append(outputs, out)
	}

	if cfg.Coinbase.Balances != "" {
		balances, err := genesis.LoadBalances(cfg.Coinbase.Balances)
		if err != nil {
			return genesis.Params{}, fmt.Errorf("loading balances: %w", err)
		}
		outputs = append(outputs, genesis.Outputs(balances)...)
	}

	return genesis.Params{
		Version:   cfg.Block.Version,
		Time:      cfg.Block.Time,
		Nonce:     cfg.Block.Nonce,
		Bits:      uint32(bits),
		Timestamp: cfg.Block.Timestamp,
		Outputs:   outputs,
		Hash:      hashFunc,
	}, nil
}
