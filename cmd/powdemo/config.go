package main

import (
	"encoding/hex"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/kelseyhightower/envconfig"

	"github.com/gravitywell/powcore/lib/arith"
	"github.com/gravitywell/powcore/lib/chain"
	"github.com/gravitywell/powcore/lib/retarget"
)

// Config is the demo's environment-sourced consensus and run configuration.
// Field names map to POWDEMO_* environment variables via envconfig's default
// convention.
type Config struct {
	PowLimitHex       string `envconfig:"POW_LIMIT" default:"00000000ffff0000000000000000000000000000000000000000000000000000"`
	PowTargetTimespan int64  `envconfig:"POW_TARGET_TIMESPAN" default:"600"`
	PowTargetSpacing  int64  `envconfig:"POW_TARGET_SPACING" default:"150"`
	AllowMinDifficultyBlocks bool `envconfig:"ALLOW_MIN_DIFFICULTY_BLOCKS" default:"false"`
	NoRetargeting     bool   `envconfig:"NO_RETARGETING" default:"false"`
	SubsidyHalvingInterval uint32 `envconfig:"SUBSIDY_HALVING_INTERVAL" default:"840000"`

	Retarget int  `envconfig:"RETARGET" default:"1"`
	Blocks   int  `envconfig:"BLOCKS" default:"500"`
	DataDir  string `envconfig:"DATA_DIR" default:""`
	Verbose  bool `envconfig:"VERBOSE" default:"false"`

	// CandidateHashHex is the little-endian block hash, hex-encoded, that
	// the demo validates against the computed bits. The all-zero default
	// always satisfies a positive target, demonstrating the accept path.
	CandidateHashHex string `envconfig:"CANDIDATE_HASH" default:"0000000000000000000000000000000000000000000000000000000000000000"`
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("powdemo", &cfg); err != nil {
		return Config{}, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func (c Config) params() (chain.Params, error) {
	raw, err := hex.DecodeString(c.PowLimitHex)
	if err != nil {
		return chain.Params{}, fmt.Errorf("parsing pow_limit: %w", err)
	}
	if len(raw) > 32 {
		return chain.Params{}, fmt.Errorf("pow_limit must be at most 32 bytes, got %d", len(raw))
	}
	var limit uint256.Int
	limit.SetBytes(raw)

	p := chain.Params{
		PowLimit:                 arith.FromUint256(limit),
		PowTargetTimespan:        c.PowTargetTimespan,
		PowTargetSpacing:         c.PowTargetSpacing,
		AllowMinDifficultyBlocks: c.AllowMinDifficultyBlocks,
		NoRetargeting:            c.NoRetargeting,
		SubsidyHalvingInterval:   c.SubsidyHalvingInterval,
	}
	if err := p.Validate(); err != nil {
		return chain.Params{}, err
	}
	return p, nil
}

func (c Config) selector() (retarget.Selector, error) {
	sel := retarget.Selector(c.Retarget)
	if !sel.Valid() {
		return 0, fmt.Errorf("retarget selector %d: %w", c.Retarget, retarget.ErrInvalidSelector)
	}
	return sel, nil
}

func (c Config) candidateHash() ([32]byte, error) {
	var hash [32]byte
	raw, err := hex.DecodeString(c.CandidateHashHex)
	if err != nil {
		return hash, fmt.Errorf("parsing candidate hash: %w", err)
	}
	if len(raw) != len(hash) {
		return hash, fmt.Errorf("candidate hash must be %d bytes, got %d", len(hash), len(raw))
	}
	copy(hash[:], raw)
	return hash, nil
}
