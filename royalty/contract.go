package royalty

import "fmt"

// Names of the jointly governed parameters.
const (
	ParamPriceEarningRatio = "price_earning_ratio"
	ParamPurchasePrice     = "purchase_price"
	ParamTerminated        = "terminated"
)

// Contract is one royalty instance: the quota pool, the revenue
// ledger, the equity market and the governed parameters of a single
// work. The host must serialize calls; a Contract performs no locking.
type Contract struct {
	metadata      string
	minQuotaPrice uint64

	reg *registry
	led *ledger
	mkt *market

	ratio      *param
	price      *param
	terminated *param

	purchases  []PurchaseRecord
	transferor Transferor
}

// New validates cfg and builds a contract, or returns
// ErrInvalidConfiguration and no instance.
func New(cfg Config, t Transferor) (*Contract, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil transferor", ErrInvalidConfiguration)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Contract{
		metadata:      cfg.Metadata,
		minQuotaPrice: cfg.MinQuotaPrice,
		reg:           newRegistry(cfg.Owners),
		led:           newLedger(cfg.Owners),
		mkt:           newMarket(),
		ratio:         newParam(ParamPriceEarningRatio, cfg.PriceEarningRatio, cfg.ratioQuorum()),
		price:         newParam(ParamPurchasePrice, cfg.PurchasePrice, cfg.priceQuorum()),
		terminated:    newParam(ParamTerminated, 0, cfg.terminationQuorum()),
		transferor:    t,
	}, nil
}

// Metadata returns the opaque identifying tag given at construction.
func (c *Contract) Metadata() string { return c.metadata }

// QuotaOf returns addr's current quota, 0 for non-owners.
func (c *Contract) QuotaOf(addr Address) uint64 { return c.reg.quotaOf(addr) }

// IsOwner reports whether addr currently holds quota.
func (c *Contract) IsOwner(addr Address) bool { return c.reg.isOwner(addr) }

// Owners returns the quota table in canonical address order.
func (c *Contract) Owners() []Owner { return c.reg.owners() }

// BalanceOf returns addr's withdrawable balance.
func (c *Contract) BalanceOf(addr Address) uint64 { return c.led.balanceOf(addr) }

// TotalReceived returns the cumulative revenue ever received.
func (c *Contract) TotalReceived() uint64 { return c.led.totalReceived }

// TotalWithdrawn returns the cumulative value paid out.
func (c *Contract) TotalWithdrawn() uint64 { return c.led.totalWithdrawn }

// SumOffered returns the quota currently listed for sale.
func (c *Contract) SumOffered() uint64 { return c.mkt.sumOffered() }

// OfferOf returns addr's standing sale offer.
func (c *Contract) OfferOf(addr Address) uint64 { return c.mkt.offerOf(addr) }

// QuotaSold returns the quota ever sold through the market.
func (c *Contract) QuotaSold() uint64 { return c.mkt.quotaSold }

// PriceEarningRatio returns the adopted earnings multiplier.
func (c *Contract) PriceEarningRatio() uint64 { return c.ratio.value }

// PurchasePrice returns the adopted price of one content purchase.
func (c *Contract) PurchasePrice() uint64 { return c.price.value }

// Terminated reports whether the owners have wound the contract down.
func (c *Contract) Terminated() bool { return c.terminated.value != 0 }

// PricePerQuota returns the current price of one quota point:
// max(MinQuotaPrice, TotalReceived * ratio / 100).
func (c *Contract) PricePerQuota() uint64 {
	return pricePerQuota(c.led.totalReceived, c.ratio.value, c.minQuotaPrice)
}

// PriceOf returns the price of units quota points at the current rate.
func (c *Contract) PriceOf(units uint64) uint64 {
	return c.PricePerQuota() * units
}

// Purchases returns the recorded purchase receipts, oldest first.
func (c *Contract) Purchases() []PurchaseRecord {
	out := make([]PurchaseRecord, len(c.purchases))
	copy(out, c.purchases)
	return out
}

// paramByName resolves a governed parameter name.
func (c *Contract) paramByName(name string) (*param, error) {
	switch name {
	case ParamPriceEarningRatio:
		return c.ratio, nil
	case ParamPurchasePrice:
		return c.price, nil
	case ParamTerminated:
		return c.terminated, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownParameter, name)
}

// GovernedParameter returns the adopted value of a governed parameter
// by name.
func (c *Contract) GovernedParameter(name string) (uint64, error) {
	p, err := c.paramByName(name)
	if err != nil {
		return 0, err
	}
	return p.value, nil
}

// SupportFor returns the quota-weighted support a candidate value
// currently has among the owners' standing votes for a parameter.
func (c *Contract) SupportFor(name string, value uint64) (uint64, error) {
	p, err := c.paramByName(name)
	if err != nil {
		return 0, err
	}
	return p.support(c.reg, value), nil
}

// SetGovernedParameter records caller's vote for a governed parameter.
// The parameter adopts the value once the quota-weighted support meets
// its quorum; until then the vote stands and waits for co-owners.
func (c *Contract) SetGovernedParameter(caller Address, name string, value uint64) error {
	switch name {
	case ParamPriceEarningRatio:
		if value == 0 {
			return fmt.Errorf("%w: %s must be positive", ErrInvalidParameterValue, name)
		}
		return c.ratio.vote(c.reg, caller, value)
	case ParamPurchasePrice:
		if value == 0 {
			return fmt.Errorf("%w: %s must be positive", ErrInvalidParameterValue, name)
		}
		return c.price.vote(c.reg, caller, value)
	case ParamTerminated:
		if value > 1 {
			return fmt.Errorf("%w: %s must be 0 or 1", ErrInvalidParameterValue, name)
		}
		return c.terminated.vote(c.reg, caller, value)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownParameter, name)
	}
}

// Receive accounts for an anonymous incoming payment, crediting every
// owner proportional to their current quota.
func (c *Contract) Receive(amount uint64) error {
	if c.Terminated() {
		return fmt.Errorf("%w: receive", ErrTerminated)
	}
	c.led.receive(c.reg, amount)
	return nil
}

// Purchase records a single content purchase. The payment must equal
// the current purchase price exactly.
func (c *Contract) Purchase(buyer Address, amount uint64) error {
	if c.Terminated() {
		return fmt.Errorf("%w: purchase", ErrTerminated)
	}
	if amount != c.price.value {
		return fmt.Errorf("%w: paid %d, purchase price is %d", ErrInvalidPayment, amount, c.price.value)
	}
	c.purchases = append(c.purchases, PurchaseRecord{Buyer: buyer, Amount: amount})
	c.led.receive(c.reg, amount)
	return nil
}

// PurchaseFrom records a batch of purchases submitted by a broker, one
// receipt per buyer. The payment must cover every buyer at the current
// purchase price.
func (c *Contract) PurchaseFrom(buyers []Address, amount uint64) error {
	if c.Terminated() {
		return fmt.Errorf("%w: purchase", ErrTerminated)
	}
	if len(buyers) == 0 {
		return fmt.Errorf("%w: no buyers", ErrInvalidPayment)
	}
	want := c.price.value * uint64(len(buyers))
	if amount != want {
		return fmt.Errorf("%w: paid %d for %d purchases, want %d", ErrInvalidPayment, amount, len(buyers), want)
	}
	for _, b := range buyers {
		c.purchases = append(c.purchases, PurchaseRecord{Buyer: b, Amount: c.price.value})
	}
	c.led.receive(c.reg, amount)
	return nil
}

// ListForSale replaces caller's standing sale offer with amount.
func (c *Contract) ListForSale(caller Address, amount uint64) error {
	return c.mkt.listForSale(c.reg, caller, amount)
}

// Invest buys quota from the standing offers at the current per-point
// price. The payment must be an exact multiple of PricePerQuota and
// the implied quota must not exceed SumOffered. Returns the quota
// acquired. Sellers receive the proceeds in their withdrawable
// balances; revenue distributed before the sale is unaffected.
func (c *Contract) Invest(caller Address, payment uint64) (uint64, error) {
	if c.Terminated() {
		return 0, fmt.Errorf("%w: invest", ErrTerminated)
	}
	return c.mkt.invest(c.reg, c.led, caller, payment, c.PricePerQuota())
}

// GiftQuota transfers quota directly to another holder, bypassing the
// market. A gift that empties the giver's quota leaves their accrued
// balance claimable.
func (c *Contract) GiftQuota(caller, to Address, amount uint64) error {
	return c.mkt.gift(c.reg, caller, to, amount)
}

// Withdraw pays out caller's entire balance through the external
// transfer primitive and zeroes it. A second call without intervening
// revenue reports ErrNothingToWithdraw.
func (c *Contract) Withdraw(caller Address) (uint64, error) {
	return c.led.withdraw(caller, c.transferor)
}
