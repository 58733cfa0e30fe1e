package royalty

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mirrors the joint-decision trace: with owners at 40/60 and a
// unanimous quorum, the ratio moves only when every quota holder's
// standing vote agrees.
func TestConsensus_UnanimousRatio(t *testing.T) {
	c, _ := newTestContract(t, testConfig())
	require.Equal(t, uint64(3), c.PriceEarningRatio())

	// 40% alone changes nothing.
	require.NoError(t, c.SetGovernedParameter(addrA, ParamPriceEarningRatio, 4))
	assert.Equal(t, uint64(3), c.PriceEarningRatio())

	// Re-voting the adopted value is a no-op observation.
	require.NoError(t, c.SetGovernedParameter(addrB, ParamPriceEarningRatio, 3))
	assert.Equal(t, uint64(3), c.PriceEarningRatio())

	// Second voter completes 100% support.
	require.NoError(t, c.SetGovernedParameter(addrB, ParamPriceEarningRatio, 4))
	assert.Equal(t, uint64(4), c.PriceEarningRatio())

	// 60% alone cannot move away from the adopted value.
	require.NoError(t, c.SetGovernedParameter(addrB, ParamPriceEarningRatio, 3))
	assert.Equal(t, uint64(4), c.PriceEarningRatio())
	require.NoError(t, c.SetGovernedParameter(addrB, ParamPriceEarningRatio, 2))
	assert.Equal(t, uint64(4), c.PriceEarningRatio())

	// The 40% holder joins the standing 60% vote.
	require.NoError(t, c.SetGovernedParameter(addrA, ParamPriceEarningRatio, 2))
	assert.Equal(t, uint64(2), c.PriceEarningRatio())
}

// The purchase price carries a majority quorum by default: a 60% vote
// takes effect directly, a 40% vote waits.
func TestConsensus_MajorityPurchasePrice(t *testing.T) {
	c, _ := newTestContract(t, testConfig())

	require.NoError(t, c.SetGovernedParameter(addrB, ParamPurchasePrice, 20000))
	assert.Equal(t, uint64(20000), c.PurchasePrice())

	require.NoError(t, c.SetGovernedParameter(addrA, ParamPurchasePrice, 30000))
	assert.Equal(t, uint64(20000), c.PurchasePrice())

	// The majority can still override.
	require.NoError(t, c.SetGovernedParameter(addrB, ParamPurchasePrice, 30000))
	assert.Equal(t, uint64(30000), c.PurchasePrice())
}

func TestConsensus_SupportQueries(t *testing.T) {
	c, _ := newTestContract(t, testConfig())

	// Everyone defaults to the adopted value.
	got, err := c.SupportFor(ParamPriceEarningRatio, 3)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), got)

	require.NoError(t, c.SetGovernedParameter(addrA, ParamPriceEarningRatio, 4))
	got, err = c.SupportFor(ParamPriceEarningRatio, 4)
	require.NoError(t, err)
	assert.Equal(t, uint64(40), got)
	got, err = c.SupportFor(ParamPriceEarningRatio, 3)
	require.NoError(t, err)
	assert.Equal(t, uint64(60), got)

	value, err := c.GovernedParameter(ParamPriceEarningRatio)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), value)

	_, err = c.SupportFor("unknown", 1)
	assert.ErrorIs(t, err, ErrUnknownParameter)
	_, err = c.GovernedParameter("unknown")
	assert.ErrorIs(t, err, ErrUnknownParameter)
}

func TestConsensus_NotOwner(t *testing.T) {
	c, _ := newTestContract(t, testConfig())

	err := c.SetGovernedParameter(addrD, ParamPriceEarningRatio, 5)
	assert.ErrorIs(t, err, ErrNotOwner)
	assert.Equal(t, uint64(3), c.PriceEarningRatio())
}

func TestConsensus_ParameterValidation(t *testing.T) {
	c, _ := newTestContract(t, testConfig())

	tests := []struct {
		name  string
		param string
		value uint64
		want  error
	}{
		{"unknown parameter", "share_of_voice", 1, ErrUnknownParameter},
		{"zero ratio", ParamPriceEarningRatio, 0, ErrInvalidParameterValue},
		{"zero price", ParamPurchasePrice, 0, ErrInvalidParameterValue},
		{"terminated out of domain", ParamTerminated, 2, ErrInvalidParameterValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.SetGovernedParameter(addrB, tt.param, tt.value)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

// A vote outlives the voter's quota: once the holder drops to zero it
// weighs nothing, and unanimity is counted over the remaining holders.
func TestConsensus_VotesAcrossOwnershipChange(t *testing.T) {
	c, _ := newTestContract(t, testConfig())

	require.NoError(t, c.SetGovernedParameter(addrA, ParamPriceEarningRatio, 5))
	assert.Equal(t, uint64(3), c.PriceEarningRatio())

	// A gives everything to B; A's standing vote for 5 now weighs 0 and
	// B holds all 100 points.
	require.NoError(t, c.GiftQuota(addrA, addrB, 40))
	require.NoError(t, c.SetGovernedParameter(addrB, ParamPriceEarningRatio, 7))
	assert.Equal(t, uint64(7), c.PriceEarningRatio())

	// The emptied holder lost governance standing entirely.
	err := c.SetGovernedParameter(addrA, ParamPriceEarningRatio, 9)
	assert.ErrorIs(t, err, ErrNotOwner)
}

// An investor who joins mid-stream defaults to the adopted value and
// must explicitly vote before a change can reach unanimity.
func TestConsensus_NewOwnerDefaultsToAdopted(t *testing.T) {
	cfg := testConfig()
	cfg.MinQuotaPrice = 1
	c, _ := newTestContract(t, cfg)

	require.NoError(t, c.ListForSale(addrB, 20))
	_, err := c.Invest(addrC, 20)
	require.NoError(t, err)
	require.Equal(t, uint64(20), c.QuotaOf(addrC))

	require.NoError(t, c.SetGovernedParameter(addrA, ParamPriceEarningRatio, 4))
	require.NoError(t, c.SetGovernedParameter(addrB, ParamPriceEarningRatio, 4))
	assert.Equal(t, uint64(3), c.PriceEarningRatio())

	require.NoError(t, c.SetGovernedParameter(addrC, ParamPriceEarningRatio, 4))
	assert.Equal(t, uint64(4), c.PriceEarningRatio())
}
