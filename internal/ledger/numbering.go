package ledger

import (
	"fmt"
	"math/big"
	"regexp"
)

var digitRun = regexp.MustCompile(`\d+`)

// NextInvoiceNumber returns "#" followed by one more than the highest
// sequence in use, zero-padded to four digits. The sequence of an invoice
// number is its first run of digits; numbers without digits count as 0.
// Sequences are unbounded, so runs wider than int64 keep incrementing.
func NextInvoiceNumber(invoices []Invoice) string {
	highest := new(big.Int)
	for _, inv := range invoices {
		if n := sequenceOf(inv.InvoiceNumber); n.Cmp(highest) > 0 {
			highest = n
		}
	}
	return fmt.Sprintf("#%04d", new(big.Int).Add(highest, big.NewInt(1)))
}

func sequenceOf(number string) *big.Int {
	n, ok := new(big.Int).SetString(digitRun.FindString(number), 10)
	if !ok {
		return new(big.Int)
	}
	return n
}
