package royalty

import (
	"bytes"
	"fmt"
	"sort"
)

// registry holds the owner-to-quota table in canonical address order
// (ascending byte order). Entries whose quota drops to zero are kept:
// the holder is no longer an owner for governance or sale purposes, but
// any unwithdrawn balance and recorded votes stay addressable.
type registry struct {
	entries []Owner
}

// newRegistry builds the quota table from a validated owner list.
func newRegistry(shares []OwnerShare) *registry {
	r := &registry{entries: make([]Owner, 0, len(shares))}
	for _, s := range shares {
		r.entries = append(r.entries, Owner{Address: s.Address, Quota: s.Quota})
	}
	sort.Slice(r.entries, func(i, j int) bool {
		return bytes.Compare(r.entries[i].Address[:], r.entries[j].Address[:]) < 0
	})
	return r
}

// find returns the index of addr in the table, or -1.
func (r *registry) find(addr Address) int {
	i := sort.Search(len(r.entries), func(i int) bool {
		return bytes.Compare(r.entries[i].Address[:], addr[:]) >= 0
	})
	if i < len(r.entries) && r.entries[i].Address == addr {
		return i
	}
	return -1
}

// quotaOf returns addr's quota, 0 if addr is unknown.
func (r *registry) quotaOf(addr Address) uint64 {
	if i := r.find(addr); i >= 0 {
		return r.entries[i].Quota
	}
	return 0
}

// isOwner reports whether addr currently holds quota.
func (r *registry) isOwner(addr Address) bool {
	return r.quotaOf(addr) > 0
}

// owners returns a copy of the quota table in canonical order.
func (r *registry) owners() []Owner {
	out := make([]Owner, len(r.entries))
	copy(out, r.entries)
	return out
}

// remainderOwner returns the last quota-holding owner in canonical
// order, the designated recipient of integer-division dust.
func (r *registry) remainderOwner() Address {
	var last Address
	for _, o := range r.entries {
		if o.Quota > 0 {
			last = o.Address
		}
	}
	return last
}

// transfer moves amount quota points from one holder to another. This
// is the single mutation point quota ever goes through; callers are
// responsible for any policy beyond the holdings bound. A previously
// unknown recipient is inserted in canonical position.
func (r *registry) transfer(from, to Address, amount uint64) error {
	i := r.find(from)
	if i < 0 || r.entries[i].Quota < amount {
		return fmt.Errorf("%w: %s holds %d, needs %d", ErrInsufficientQuota, from, r.quotaOf(from), amount)
	}
	r.entries[i].Quota -= amount

	j := r.find(to)
	if j < 0 {
		j = sort.Search(len(r.entries), func(k int) bool {
			return bytes.Compare(r.entries[k].Address[:], to[:]) >= 0
		})
		r.entries = append(r.entries, Owner{})
		copy(r.entries[j+1:], r.entries[j:])
		r.entries[j] = Owner{Address: to}
	}
	r.entries[j].Quota += amount
	return nil
}

// checkQuotaSum verifies the pool invariant: quotas sum to TotalQuota.
func (r *registry) checkQuotaSum() error {
	var sum uint64
	for _, o := range r.entries {
		sum += o.Quota
	}
	if sum != TotalQuota {
		return fmt.Errorf("%w: quotas sum to %d, want %d", ErrInvalidConfiguration, sum, TotalQuota)
	}
	return nil
}
