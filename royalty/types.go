package royalty

// TotalQuota is the fixed size of the quota pool in percentage points.
// The sum of all owners' quota equals TotalQuota at all times.
const TotalQuota uint64 = 100

// Address identifies an owner, investor or customer by their P2PKH
// public key hash.
type Address [20]byte

// Owner is one entry in the quota table.
type Owner struct {
	Address Address
	Quota   uint64 // percentage points, 0..100
}

// PurchaseRecord is the receipt of a single content purchase.
type PurchaseRecord struct {
	Buyer  Address
	Amount uint64
}

// Transferor is the externally supplied atomic value-transfer primitive
// used to pay out withdrawn balances.
type Transferor interface {
	Transfer(to Address, amount uint64) error
}
