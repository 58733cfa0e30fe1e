package royalty

import "fmt"

// ParamState is the exported state of one governed parameter.
type ParamState struct {
	Name   string
	Value  uint64
	Quorum uint64
	Votes  map[Address]uint64
}

// Snapshot is the complete exported state of a contract, suitable for
// gob encoding and persistence. See the store package.
type Snapshot struct {
	Metadata       string
	MinQuotaPrice  uint64
	Owners         []Owner
	Balances       map[Address]uint64
	TotalReceived  uint64
	TotalWithdrawn uint64
	Offers         map[Address]uint64
	QuotaSold      uint64
	Params         []ParamState
	Purchases      []PurchaseRecord
}

// Snapshot captures the full contract state. The result shares nothing
// with the live contract.
func (c *Contract) Snapshot() *Snapshot {
	s := &Snapshot{
		Metadata:       c.metadata,
		MinQuotaPrice:  c.minQuotaPrice,
		Owners:         c.reg.owners(),
		Balances:       copyBalances(c.led.balances),
		TotalReceived:  c.led.totalReceived,
		TotalWithdrawn: c.led.totalWithdrawn,
		Offers:         copyBalances(c.mkt.offers),
		QuotaSold:      c.mkt.quotaSold,
		Purchases:      append([]PurchaseRecord(nil), c.purchases...),
	}
	for _, p := range []*param{c.ratio, c.price, c.terminated} {
		s.Params = append(s.Params, ParamState{
			Name:   p.name,
			Value:  p.value,
			Quorum: p.quorum,
			Votes:  copyBalances(p.votes),
		})
	}
	return s
}

// Restore rebuilds a contract from a snapshot, re-checking the
// construction invariants before accepting it.
func Restore(s *Snapshot, t Transferor) (*Contract, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil snapshot", ErrInvalidConfiguration)
	}
	if t == nil {
		return nil, fmt.Errorf("%w: nil transferor", ErrInvalidConfiguration)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}

	// Canonical order is part of the snapshot contract, but re-sort in
	// case the snapshot was assembled by hand.
	reg := newRegistry(toShares(s.Owners))

	led := &ledger{
		balances:       copyBalances(s.Balances),
		totalReceived:  s.TotalReceived,
		totalWithdrawn: s.TotalWithdrawn,
	}
	if led.balances == nil {
		led.balances = make(map[Address]uint64)
	}
	mkt := &market{offers: copyBalances(s.Offers), quotaSold: s.QuotaSold}
	if mkt.offers == nil {
		mkt.offers = make(map[Address]uint64)
	}

	c := &Contract{
		metadata:      s.Metadata,
		minQuotaPrice: s.MinQuotaPrice,
		reg:           reg,
		led:           led,
		mkt:           mkt,
		purchases:     append([]PurchaseRecord(nil), s.Purchases...),
		transferor:    t,
	}
	for _, ps := range s.Params {
		p := &param{name: ps.Name, value: ps.Value, quorum: ps.Quorum, votes: copyBalances(ps.Votes)}
		if p.votes == nil {
			p.votes = make(map[Address]uint64)
		}
		switch ps.Name {
		case ParamPriceEarningRatio:
			c.ratio = p
		case ParamPurchasePrice:
			c.price = p
		case ParamTerminated:
			c.terminated = p
		}
	}
	return c, nil
}

// validate re-checks every invariant a snapshot must satisfy before it
// may back a live contract.
func (s *Snapshot) validate() error {
	if len(s.Owners) == 0 {
		return fmt.Errorf("%w: snapshot has no owners", ErrInvalidConfiguration)
	}
	seen := make(map[Address]bool, len(s.Owners))
	var sum uint64
	for _, o := range s.Owners {
		if seen[o.Address] {
			return fmt.Errorf("%w: duplicate owner %s", ErrInvalidConfiguration, o.Address)
		}
		seen[o.Address] = true
		sum += o.Quota
	}
	if sum != TotalQuota {
		return fmt.Errorf("%w: quotas sum to %d, want %d", ErrInvalidConfiguration, sum, TotalQuota)
	}
	if s.MinQuotaPrice == 0 {
		return fmt.Errorf("%w: minimum quota price must be positive", ErrInvalidConfiguration)
	}

	quotaOf := make(map[Address]uint64, len(s.Owners))
	for _, o := range s.Owners {
		quotaOf[o.Address] = o.Quota
	}
	for addr, offer := range s.Offers {
		if offer > quotaOf[addr] {
			return fmt.Errorf("%w: %s offers %d, holds %d", ErrInvalidConfiguration, addr, offer, quotaOf[addr])
		}
	}

	want := map[string]bool{
		ParamPriceEarningRatio: false,
		ParamPurchasePrice:     false,
		ParamTerminated:        false,
	}
	for _, p := range s.Params {
		done, known := want[p.Name]
		if !known {
			return fmt.Errorf("%w: %q in snapshot", ErrUnknownParameter, p.Name)
		}
		if done {
			return fmt.Errorf("%w: duplicate parameter %q", ErrInvalidConfiguration, p.Name)
		}
		want[p.Name] = true
		if p.Quorum == 0 || p.Quorum > TotalQuota {
			return fmt.Errorf("%w: parameter %q quorum %d", ErrInvalidConfiguration, p.Name, p.Quorum)
		}
		switch p.Name {
		case ParamPriceEarningRatio, ParamPurchasePrice:
			if p.Value == 0 {
				return fmt.Errorf("%w: parameter %q must be positive", ErrInvalidConfiguration, p.Name)
			}
		case ParamTerminated:
			if p.Value > 1 {
				return fmt.Errorf("%w: parameter %q must be 0 or 1", ErrInvalidConfiguration, p.Name)
			}
		}
	}
	for name, done := range want {
		if !done {
			return fmt.Errorf("%w: parameter %q missing from snapshot", ErrInvalidConfiguration, name)
		}
	}
	return nil
}

// copyBalances deep-copies an account map. Empty maps come back nil so
// snapshots survive a gob round trip unchanged (gob decodes an empty
// map as nil).
func copyBalances(m map[Address]uint64) map[Address]uint64 {
	if len(m) == 0 {
		return nil
	}
	out := make(map[Address]uint64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func toShares(owners []Owner) []OwnerShare {
	shares := make([]OwnerShare, len(owners))
	for i, o := range owners {
		shares[i] = OwnerShare{Address: o.Address, Quota: o.Quota}
	}
	return shares
}
