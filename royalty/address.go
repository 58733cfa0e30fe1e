package royalty

import (
	"encoding/hex"
	"fmt"

	"github.com/bsv-blockchain/go-sdk/script"
)

// ParseAddress decodes a base58check P2PKH address string into an Address.
func ParseAddress(s string) (Address, error) {
	var addr Address
	a, err := script.NewAddressFromString(s)
	if err != nil {
		return addr, fmt.Errorf("%w: %q: %w", ErrInvalidAddress, s, err)
	}
	if len(a.PublicKeyHash) != len(addr) {
		return addr, fmt.Errorf("%w: %q: hash is %d bytes", ErrInvalidAddress, s, len(a.PublicKeyHash))
	}
	copy(addr[:], a.PublicKeyHash)
	return addr, nil
}

// String renders the address in base58check mainnet form, falling back
// to hex if encoding fails.
func (a Address) String() string {
	addr, err := script.NewAddressFromPublicKeyHash(a[:], true)
	if err != nil {
		return hex.EncodeToString(a[:])
	}
	return addr.AddressString
}
