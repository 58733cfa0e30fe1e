package royalty

import "fmt"

// ledger keeps the per-owner pull balances. Accounts are created at
// zero for every initial owner and for investors as they join; they are
// only ever credited by revenue distribution and sale settlement, and
// zeroed by withdrawal.
type ledger struct {
	balances       map[Address]uint64
	totalReceived  uint64
	totalWithdrawn uint64
}

func newLedger(shares []OwnerShare) *ledger {
	l := &ledger{balances: make(map[Address]uint64, len(shares))}
	for _, s := range shares {
		l.balances[s.Address] = 0
	}
	return l
}

// balanceOf returns addr's withdrawable balance.
func (l *ledger) balanceOf(addr Address) uint64 {
	return l.balances[addr]
}

// receive splits an incoming payment across current owners proportional
// to quota, crediting floor(amount * quota / 100) each. The last
// quota-holding owner in canonical order absorbs the integer-division
// remainder so no dust is lost. An owner with zero quota receives zero.
func (l *ledger) receive(reg *registry, amount uint64) {
	if amount == 0 {
		return
	}
	l.totalReceived += amount
	last := reg.remainderOwner()
	rest := amount
	for _, o := range reg.entries {
		if o.Quota == 0 || o.Address == last {
			continue
		}
		share := amount * o.Quota / TotalQuota
		l.balances[o.Address] += share
		rest -= share
	}
	l.balances[last] += rest
}

// credit adds sale-settlement proceeds to a seller's account. Reachable
// only from the market's allocation step, never from the external
// surface.
func (l *ledger) credit(addr Address, amount uint64) {
	l.balances[addr] += amount
}

// withdraw pays out the caller's entire balance through the external
// transfer primitive. The balance is zeroed before the transfer starts
// so a reentrant callback observes an empty account; a failed transfer
// restores the balance, leaving no partial state.
func (l *ledger) withdraw(caller Address, t Transferor) (uint64, error) {
	bal := l.balances[caller]
	if bal == 0 {
		return 0, ErrNothingToWithdraw
	}
	l.balances[caller] = 0
	l.totalWithdrawn += bal
	if err := t.Transfer(caller, bal); err != nil {
		l.balances[caller] = bal
		l.totalWithdrawn -= bal
		return 0, fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}
	return bal, nil
}
