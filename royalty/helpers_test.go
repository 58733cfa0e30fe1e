package royalty

import "testing"

func makeAddr(seed byte) Address {
	var addr Address
	for i := range addr {
		addr[i] = seed
	}
	return addr
}

// Canonical order in tests: addrA < addrB < addrC.
var (
	addrA = makeAddr(0xAA) // initial owner, 40 quota
	addrB = makeAddr(0xBB) // initial owner, 60 quota
	addrC = makeAddr(0xCC) // investor
	addrD = makeAddr(0xDD) // customer / stranger
)

type transferCall struct {
	To     Address
	Amount uint64
}

// fakeTransferor records outgoing transfers. It can be told to fail,
// or to call back into the contract mid-transfer to probe reentrancy.
type fakeTransferor struct {
	calls    []transferCall
	err      error
	callback func(to Address, amount uint64)
}

func (f *fakeTransferor) Transfer(to Address, amount uint64) error {
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, transferCall{To: to, Amount: amount})
	if f.callback != nil {
		cb := f.callback
		f.callback = nil
		cb(to, amount)
	}
	return nil
}

func testConfig() Config {
	return Config{
		Owners: []OwnerShare{
			{Address: addrA, Quota: 40},
			{Address: addrB, Quota: 60},
		},
		Metadata:          "V123456Z",
		PriceEarningRatio: 3,
		PurchasePrice:     10000,
		MinQuotaPrice:     10000,
	}
}

func newTestContract(t *testing.T, cfg Config) (*Contract, *fakeTransferor) {
	t.Helper()
	ft := &fakeTransferor{}
	c, err := New(cfg, ft)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, ft
}
