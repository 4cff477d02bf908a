// Package retarget implements the six difficulty retargeting algorithms
// and the dispatcher that picks one at runtime, playing the role
// lib/chain's GetNextWorkRequired plays for gocoin, generalized from a
// single hardcoded algorithm to a configurable family of six.
package retarget

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/gravitywell/powcore/lib/arith"
	"github.com/gravitywell/powcore/lib/chain"
)

// WarmupHeight is the number of blocks, counting genesis, during which
// every algorithm returns pow_limit regardless of selection.
const WarmupHeight = 100

// ErrInvalidSelector is returned when selector is not one of Classic
// through OrbitcoinSuperShield. The source's switch statement falls off
// the end with no default for this case; here it is a typed error instead
// of undefined behavior.
var ErrInvalidSelector = errors.New("retarget: selector must be in 1..6")

// Engine dispatches NextWorkRequired to one of the six algorithms and logs
// the selection once per Engine, on its first call past the warm-up window;
// this per-Engine flag stands in for the source's global haveAnnounced
// flag, so separate Engines each announce. Logger may be nil, in which case the package
// logger (logrus.StandardLogger()) is used; it is never opened or rotated
// by this package, only written to.
type Engine struct {
	Logger *logrus.Logger

	announced atomic.Bool
}

// NewEngine builds an Engine. Passing a nil logger defers to
// logrus.StandardLogger().
func NewEngine(logger *logrus.Logger) *Engine {
	return &Engine{Logger: logger}
}

func (e *Engine) logger() *logrus.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return logrus.StandardLogger()
}

// NextWorkRequired computes the compact target the block following last
// must satisfy, given its candidate header and the chain's consensus
// parameters. heightNext < WarmupHeight always returns pow_limit,
// regardless of selector.
func (e *Engine) NextWorkRequired(last chain.HeaderView, cand chain.Header, params chain.Params, selector Selector) (uint32, error) {
	heightNext := last.Height() + 1
	if heightNext < WarmupHeight {
		return params.PowLimitCompact(), nil
	}

	if !selector.Valid() {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidSelector, selector)
	}

	e.announce(selector)

	var bits uint32
	switch selector {
	case Classic:
		bits = classicRetarget(last, cand, params)
	case DarkGravityWaveV3:
		bits = darkGravityWaveV3(last, cand, params)
	case KimotoGravityWell:
		bits = kimotoGravityWell(last, params)
	case DigiShield:
		bits = digiShield(last, cand, params)
	case DualKGW3:
		bits = dualKGW3(last, cand, params)
	case OrbitcoinSuperShield:
		bits = orbitcoinSuperShield(last, params)
	default:
		return 0, fmt.Errorf("%w: got %d", ErrInvalidSelector, selector)
	}

	e.logger().WithFields(logrus.Fields{
		"bits":       fmt.Sprintf("%08x", bits),
		"difficulty": arith.Difficulty(bits),
		"height":     heightNext,
		"selector":   selector.String(),
	}).Info("next block difficulty")

	return bits, nil
}

func (e *Engine) announce(selector Selector) {
	if e.announced.CompareAndSwap(false, true) {
		e.logger().Infof("using %s algorithm", selector)
	}
}
