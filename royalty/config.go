package royalty

import "fmt"

// Quorum defaults, in quota percentage points.
const (
	QuorumUnanimous uint64 = 100
	QuorumMajority  uint64 = 51
)

// OwnerShare configures one owner's initial quota.
type OwnerShare struct {
	Address Address
	Quota   uint64
}

// Config carries the construction parameters of a royalty contract.
// Zero quorum fields take their defaults: unanimity for the
// price-earning ratio and termination, majority for the purchase price.
type Config struct {
	Owners            []OwnerShare
	Metadata          string // opaque tag, e.g. the work's catalog ID
	PriceEarningRatio uint64 // initial earnings multiplier, positive
	PurchasePrice     uint64 // initial price of one content purchase, positive
	MinQuotaPrice     uint64 // floor of the per-quota-point price, positive
	RatioQuorum       uint64
	PriceQuorum       uint64
	TerminationQuorum uint64
}

// Validate checks every construction parameter and returns the first
// violation wrapped in ErrInvalidConfiguration, or nil if the contract
// may be built.
func (c Config) Validate() error {
	if len(c.Owners) == 0 {
		return fmt.Errorf("%w: no owners", ErrInvalidConfiguration)
	}
	seen := make(map[Address]bool, len(c.Owners))
	var sum uint64
	for _, o := range c.Owners {
		if seen[o.Address] {
			return fmt.Errorf("%w: duplicate owner %s", ErrInvalidConfiguration, o.Address)
		}
		seen[o.Address] = true
		if o.Quota == 0 {
			return fmt.Errorf("%w: owner %s has zero quota", ErrInvalidConfiguration, o.Address)
		}
		sum += o.Quota
	}
	if sum != TotalQuota {
		return fmt.Errorf("%w: quotas sum to %d, want %d", ErrInvalidConfiguration, sum, TotalQuota)
	}
	if c.PriceEarningRatio == 0 {
		return fmt.Errorf("%w: price-earning ratio must be positive", ErrInvalidConfiguration)
	}
	if c.PurchasePrice == 0 {
		return fmt.Errorf("%w: purchase price must be positive", ErrInvalidConfiguration)
	}
	if c.MinQuotaPrice == 0 {
		return fmt.Errorf("%w: minimum quota price must be positive", ErrInvalidConfiguration)
	}
	for _, q := range []struct {
		name  string
		value uint64
	}{
		{"ratio quorum", c.RatioQuorum},
		{"price quorum", c.PriceQuorum},
		{"termination quorum", c.TerminationQuorum},
	} {
		if q.value > TotalQuota {
			return fmt.Errorf("%w: %s %d exceeds %d", ErrInvalidConfiguration, q.name, q.value, TotalQuota)
		}
	}
	return nil
}

// ratioQuorum returns the effective quorum for the price-earning ratio.
func (c Config) ratioQuorum() uint64 {
	if c.RatioQuorum == 0 {
		return QuorumUnanimous
	}
	return c.RatioQuorum
}

// priceQuorum returns the effective quorum for the purchase price.
func (c Config) priceQuorum() uint64 {
	if c.PriceQuorum == 0 {
		return QuorumMajority
	}
	return c.PriceQuorum
}

// terminationQuorum returns the effective quorum for termination.
func (c Config) terminationQuorum() uint64 {
	if c.TerminationQuorum == 0 {
		return QuorumUnanimous
	}
	return c.TerminationQuorum
}
