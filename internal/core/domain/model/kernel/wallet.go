package kernel

import (
	"strings"

	"deliveryoracle/internal/pkg/errs"
)

// ErrWalletIsRequired is returned when a wallet identifier is empty or blank.
var ErrWalletIsRequired = errs.NewValueIsRequiredError("wallet identifier")

// Wallet is a case-insensitive wallet identifier value object.
// Wallets are compared case-insensitively everywhere in the system; the
// canonical storage form is lower-case, applied once at construction so
// no comparison site needs to normalize again.
// The zero value of Wallet is invalid - use NewWallet to create instances.
type Wallet struct {
	value string
}

// NewWallet creates a Wallet from its raw identifier, normalizing it to
// the canonical lower-case form. Leading and trailing whitespace is
// stripped. Returns ErrWalletIsRequired for blank input.
func NewWallet(raw string) (Wallet, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return Wallet{}, ErrWalletIsRequired
	}

	return Wallet{value: normalized}, nil
}

// Validate checks that the Wallet was created via NewWallet.
func (w Wallet) Validate() error {
	if w.value == "" {
		return ErrWalletIsRequired
	}
	return nil
}

// String returns the canonical lower-case form.
// Implements the fmt.Stringer interface.
func (w Wallet) String() string {
	return w.value
}

// IsEqual compares two wallets. Both sides are already canonical, so
// this is a plain string comparison.
func (w Wallet) IsEqual(other Wallet) bool {
	return w.value == other.value
}

// IsZero reports whether the wallet is the invalid zero value.
func (w Wallet) IsZero() bool {
	return w.value == ""
}
