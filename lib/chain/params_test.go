package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gravitywell/powcore/lib/arith"
)

func testParams() Params {
	return Params{
		PowLimit:          arith.Max().Rsh(32),
		PowTargetTimespan: 14 * 24 * 60 * 60,
		PowTargetSpacing:  10 * 60,
	}
}

func TestParamsValidateAccepts(t *testing.T) {
	assert.NoError(t, testParams().Validate())
}

func TestParamsValidateRejectsSpacingZero(t *testing.T) {
	p := testParams()
	p.PowTargetSpacing = 0
	assert.ErrorIs(t, p.Validate(), ErrInvalidTimespan)
}

func TestParamsValidateRejectsTimespanBelowSpacing(t *testing.T) {
	p := testParams()
	p.PowTargetTimespan = p.PowTargetSpacing - 1
	assert.ErrorIs(t, p.Validate(), ErrInvalidTimespan)
}

func TestParamsValidateRejectsZeroPowLimit(t *testing.T) {
	p := testParams()
	p.PowLimit = arith.Zero()
	assert.ErrorIs(t, p.Validate(), ErrInvalidPowLimit)
}

func TestDifficultyAdjustmentInterval(t *testing.T) {
	p := testParams()
	assert.Equal(t, int64(2016), p.DifficultyAdjustmentInterval())
}
