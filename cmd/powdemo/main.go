// Command powdemo drives the difficulty retargeting core over a synthetic
// chain and prints the bits it computes for the next block, and whether the
// configured candidate hash satisfies them (the engine's logger records the
// difficulty), the same way gocoin's own command-line tools exercise a
// library package end-to-end rather than through a unit test.
package main

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"github.com/gravitywell/powcore/lib/chain"
	"github.com/gravitywell/powcore/lib/retarget"
	"github.com/gravitywell/powcore/lib/validate"
)

func main() {
	if err := run(); err != nil {
		logrus.New().WithError(err).Fatal("powdemo failed")
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logrus.New()
	if cfg.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	params, err := cfg.params()
	if err != nil {
		return fmt.Errorf("building params: %w", err)
	}
	selector, err := cfg.selector()
	if err != nil {
		return err
	}

	if cfg.Verbose {
		log.Debug("consensus parameters:\n" + spew.Sdump(params))
	}

	tip, err := buildDemoChain(cfg, params)
	if err != nil {
		return fmt.Errorf("building demo chain: %w", err)
	}

	engine := retarget.NewEngine(log)
	cand := chain.Header{Time: tip.Time() + params.PowTargetSpacing}

	bits, err := engine.NextWorkRequired(tip, cand, params, selector)
	if err != nil {
		return fmt.Errorf("computing next work required: %w", err)
	}

	hash, err := cfg.candidateHash()
	if err != nil {
		return err
	}
	ok := validate.CheckProofOfWork(hash, bits, params)

	fmt.Printf("height=%d next_bits=%08x valid=%v\n", tip.Height()+1, bits, ok)
	return nil
}

// buildDemoChain constructs an in-memory chain of cfg.Blocks headers, each
// spaced pow_target_spacing seconds apart, or opens cfg.DataDir as a disk
// chain if one is configured. It exists only to give the engine something
// to walk; it is not a substitute for real block indexing.
func buildDemoChain(cfg Config, params chain.Params) (chain.HeaderView, error) {
	if cfg.DataDir != "" {
		return buildDiskChain(cfg, params)
	}

	tip := chain.NewGenesis(1231006505, params.PowLimitCompact())
	for i := 1; i < cfg.Blocks; i++ {
		tip = tip.Next(tip.Time()+params.PowTargetSpacing, tip.Bits())
	}
	return tip, nil
}

func buildDiskChain(cfg Config, params chain.Params) (chain.HeaderView, error) {
	// dv is deliberately left open: the returned HeaderView walks it lazily
	// on every Prev() call, so closing it before the caller finishes would
	// break every lookup. The process exit reclaims the handle.
	dv, err := chain.OpenDiskHeaderView(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	bits := params.PowLimitCompact()
	t := int64(1231006505)
	if err := dv.PutHeader(0, t, bits); err != nil {
		return nil, err
	}
	for h := uint32(1); h < uint32(cfg.Blocks); h++ {
		t += params.PowTargetSpacing
		if err := dv.PutHeader(h, t, bits); err != nil {
			return nil, err
		}
	}

	return dv.Tip()
}
