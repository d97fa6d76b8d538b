// Package wallet keeps a simple income and expense journal alongside the
// invoicing ledger.
package wallet

import (
	"fmt"
	"slices"

	"github.com/warrick-io/warrick/internal/platform/httpx"
)

var (
	// ErrNotFound is returned when a transaction id is unknown.
	ErrNotFound = fmt.Errorf("wallet: transaction %w", httpx.ErrNotFound)
	// ErrInvalidTransaction flags rejected transaction or profile input.
	ErrInvalidTransaction = fmt.Errorf("wallet: %w", httpx.ErrValidation)
	// ErrNotElevated is returned when a write is attempted without wallet admin rights.
	ErrNotElevated = fmt.Errorf("wallet: admin clearance required: %w", httpx.ErrForbidden)
)

// Type is the direction of a transaction.
type Type string

// Transaction types.
const (
	Income  Type = "INCOME"
	Expense Type = "EXPENSE"
)

// Role is the wallet's own privilege level, separate from account roles.
type Role string

// Wallet roles.
const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// DefaultName is shown when the profile has no name.
const DefaultName = "User"

// Currencies lists the symbols the profile may display amounts in.
var Currencies = []string{"৳", "$", "€"}

// Transaction is one journal entry.
type Transaction struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Type        Type    `json:"type"`
	Date        string  `json:"date"`
}

// TransactionInput carries the fields a caller supplies for a new entry.
type TransactionInput struct {
	Description string  `json:"description" validate:"required"`
	Amount      float64 `json:"amount" validate:"gt=0"`
	Type        Type    `json:"type" validate:"required,oneof=INCOME EXPENSE"`
}

// Stats summarises the journal.
type Stats struct {
	TotalIncome   float64 `json:"totalIncome"`
	TotalExpenses float64 `json:"totalExpenses"`
	TotalBalance  float64 `json:"totalBalance"`
}

// ComputeStats totals income and expenses. Entries of unknown type are ignored.
func ComputeStats(txs []Transaction) Stats {
	var st Stats
	for _, t := range txs {
		switch t.Type {
		case Income:
			st.TotalIncome += t.Amount
		case Expense:
			st.TotalExpenses += t.Amount
		}
	}
	st.TotalBalance = st.TotalIncome - st.TotalExpenses
	return st
}

// Profile is the wallet display profile.
type Profile struct {
	Name       string `json:"name"`
	Currency   string `json:"currency"`
	AvatarSeed string `json:"avatarSeed"`
	Role       Role   `json:"role"`
}

// DefaultProfile is used until a profile has been saved.
func DefaultProfile() Profile {
	return Profile{Name: DefaultName, Currency: "৳", AvatarSeed: "Warrick", Role: RoleUser}
}

// Elevated reports whether the profile may write transactions.
func (p Profile) Elevated() bool {
	return p.Role == RoleAdmin
}

// ProfileInput carries the user-editable profile settings.
type ProfileInput struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

func validCurrency(symbol string) bool {
	return slices.Contains(Currencies, symbol)
}
