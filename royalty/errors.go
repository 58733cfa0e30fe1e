package royalty

import "errors"

var (
	// ErrInvalidConfiguration indicates the construction parameters are
	// rejected and no instance was created.
	ErrInvalidConfiguration = errors.New("royalty: invalid configuration")

	// ErrInvalidAddress indicates an address string could not be decoded.
	ErrInvalidAddress = errors.New("royalty: invalid address")

	// ErrNotOwner indicates the caller holds no quota.
	ErrNotOwner = errors.New("royalty: caller is not an owner")

	// ErrInsufficientQuota indicates a transfer or offer exceeds the
	// caller's holdings.
	ErrInsufficientQuota = errors.New("royalty: insufficient quota")

	// ErrNothingToWithdraw indicates the caller's balance is already zero.
	// Benign: a repeat withdrawal is a harmless no-op signaled as this
	// error, not a fatal condition.
	ErrNothingToWithdraw = errors.New("royalty: nothing to withdraw")

	// ErrInvalidPayment indicates the payment does not align to the price
	// granularity or exceeds the offered supply.
	ErrInvalidPayment = errors.New("royalty: invalid payment")

	// ErrTerminated indicates the contract has been wound down by owner
	// consensus and accepts no further purchases or investment.
	ErrTerminated = errors.New("royalty: contract terminated")

	// ErrUnknownParameter indicates the governed parameter name is not
	// recognized.
	ErrUnknownParameter = errors.New("royalty: unknown governed parameter")

	// ErrInvalidParameterValue indicates the voted value is outside the
	// parameter's domain.
	ErrInvalidParameterValue = errors.New("royalty: invalid parameter value")

	// ErrTransferFailed indicates the external value transfer was rejected;
	// the withdrawn balance has been restored.
	ErrTransferFailed = errors.New("royalty: value transfer failed")
)
