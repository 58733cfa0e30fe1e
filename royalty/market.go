package royalty

import "fmt"

// market tracks the quota listed for sale and the equity sold so far.
// Offers are bounded by the seller's current quota and reset as sales
// consume them.
type market struct {
	offers    map[Address]uint64
	quotaSold uint64
}

func newMarket() *market {
	return &market{offers: make(map[Address]uint64)}
}

// allocation is one seller's portion of an investment.
type allocation struct {
	seller Address
	offer  uint64
	units  uint64
}

// listForSale replaces caller's standing offer with amount. The offer
// must fit within the caller's current quota.
func (m *market) listForSale(reg *registry, caller Address, amount uint64) error {
	if !reg.isOwner(caller) || amount > reg.quotaOf(caller) {
		return fmt.Errorf("%w: offer %d, quota %d", ErrInsufficientQuota, amount, reg.quotaOf(caller))
	}
	if amount == 0 {
		delete(m.offers, caller)
		return nil
	}
	m.offers[caller] = amount
	return nil
}

// sumOffered returns the market's available supply.
func (m *market) sumOffered() uint64 {
	var sum uint64
	for _, o := range m.offers {
		sum += o
	}
	return sum
}

// offerOf returns addr's standing offer.
func (m *market) offerOf(addr Address) uint64 {
	return m.offers[addr]
}

// pricePerQuota derives the price of one quota point from the earning
// history, floored by the configured minimum.
func pricePerQuota(totalReceived, ratio, floor uint64) uint64 {
	p := totalReceived * ratio / TotalQuota
	if p < floor {
		p = floor
	}
	return p
}

// allocate splits units across the standing offers proportional to each
// offer, flooring every share. The remainder is walked backwards from
// the end of canonical address order, capped at each seller's remaining
// offer, so no seller ever transfers more than they listed. Requires
// units <= sumOffered.
func (m *market) allocate(reg *registry, units uint64) []allocation {
	supply := m.sumOffered()
	var allocs []allocation
	for _, o := range reg.entries {
		offer := m.offers[o.Address]
		if offer == 0 {
			continue
		}
		allocs = append(allocs, allocation{
			seller: o.Address,
			offer:  offer,
			units:  units * offer / supply,
		})
	}
	var assigned uint64
	for _, a := range allocs {
		assigned += a.units
	}
	rest := units - assigned
	for i := len(allocs) - 1; i >= 0 && rest > 0; i-- {
		room := allocs[i].offer - allocs[i].units
		if room > rest {
			room = rest
		}
		allocs[i].units += room
		rest -= room
	}
	return allocs
}

// invest executes an equity purchase: payment buys payment/unit quota
// points from the standing offers. Sellers are settled first — each is
// credited their share of the payment — and only then does quota move,
// so distributions accrued under the pre-sale split are untouched.
func (m *market) invest(reg *registry, led *ledger, caller Address, payment, unit uint64) (uint64, error) {
	if payment == 0 || payment%unit != 0 {
		return 0, fmt.Errorf("%w: %d is not a multiple of the quota price %d", ErrInvalidPayment, payment, unit)
	}
	units := payment / unit
	if supply := m.sumOffered(); units > supply {
		return 0, fmt.Errorf("%w: %d quota requested, %d offered", ErrInvalidPayment, units, supply)
	}

	allocs := m.allocate(reg, units)

	// Settle proceeds before any quota mutation.
	for _, a := range allocs {
		if a.units > 0 {
			led.credit(a.seller, a.units*unit)
		}
	}
	for _, a := range allocs {
		if a.units == 0 {
			continue
		}
		if err := reg.transfer(a.seller, caller, a.units); err != nil {
			return 0, err
		}
		if m.offers[a.seller] == a.units {
			delete(m.offers, a.seller)
		} else {
			m.offers[a.seller] -= a.units
		}
	}
	m.quotaSold += units
	return units, nil
}

// gift moves quota directly between holders, bypassing the market. A
// standing offer left above the giver's reduced quota is clamped down
// so the market never advertises more than the giver holds.
func (m *market) gift(reg *registry, caller, to Address, amount uint64) error {
	if amount > reg.quotaOf(caller) {
		return fmt.Errorf("%w: gift %d, quota %d", ErrInsufficientQuota, amount, reg.quotaOf(caller))
	}
	if amount == 0 {
		return nil
	}
	if err := reg.transfer(caller, to, amount); err != nil {
		return err
	}
	if q := reg.quotaOf(caller); m.offers[caller] > q {
		if q == 0 {
			delete(m.offers, caller)
		} else {
			m.offers[caller] = q
		}
	}
	return nil
}
