package royalty

import "fmt"

// param is one jointly governed parameter. Each owner has a standing
// vote for the parameter, defaulting to the currently adopted value;
// the parameter adopts a new value the moment the quota-weighted
// support for that value meets the quorum.
type param struct {
	name   string
	quorum uint64
	value  uint64
	votes  map[Address]uint64 // last explicit vote per address
}

func newParam(name string, initial, quorum uint64) *param {
	return &param{
		name:   name,
		quorum: quorum,
		value:  initial,
		votes:  make(map[Address]uint64),
	}
}

// effectiveVote returns addr's standing vote, defaulting to the
// adopted value for owners who never voted.
func (p *param) effectiveVote(addr Address) uint64 {
	if v, ok := p.votes[addr]; ok {
		return v
	}
	return p.value
}

// support sums the quota of current owners whose standing vote equals
// value. Votes recorded by holders whose quota has since dropped to
// zero weigh nothing without needing to be withdrawn.
func (p *param) support(reg *registry, value uint64) uint64 {
	var sum uint64
	for _, o := range reg.entries {
		if o.Quota == 0 {
			continue
		}
		if p.effectiveVote(o.Address) == value {
			sum += o.Quota
		}
	}
	return sum
}

// vote records caller's choice, overwriting any previous vote for this
// parameter, and adopts the value once support meets the quorum.
// Voting for the already-adopted value is an observation, not a state
// change. Votes persist until overwritten, including across ownership
// changes.
func (p *param) vote(reg *registry, caller Address, value uint64) error {
	if !reg.isOwner(caller) {
		return fmt.Errorf("%w: vote on %s", ErrNotOwner, p.name)
	}
	p.votes[caller] = value
	if value == p.value {
		return nil
	}
	if p.support(reg, value) >= p.quorum {
		p.value = value
	}
	return nil
}
