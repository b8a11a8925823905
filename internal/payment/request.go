// Package payment covers the FedaPay Mobile-Money flow: the request handed
// to the hosted widget, classification of the widget's completion status,
// the supported countries and operators, and the webhook receiver that
// confirms or reverts orders afterwards.
package payment

import (
	"fmt"
	"strings"
)

// DefaultLastName fills in for single-word display names.
const DefaultLastName = "Client"

type Customer struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
}

// Request is what the client needs to open the widget. Reference is sent
// as the transaction's external id and comes back in the webhook.
type Request struct {
	PublicKey   string   `json:"public_key,omitempty"`
	Reference   string   `json:"external_id"`
	Amount      int      `json:"amount"`
	Currency    string   `json:"currency"`
	Description string   `json:"description"`
	Customer    Customer `json:"customer"`
}

// SplitName cuts a display name on its first space.
func SplitName(name string) (first, last string) {
	first, last, _ = strings.Cut(strings.TrimSpace(name), " ")
	last = strings.TrimSpace(last)
	if last == "" {
		last = DefaultLastName
	}
	return first, last
}

func Description(customerName string) string {
	return fmt.Sprintf("Commande AfriMarket pour %s", customerName)
}

// NewRequest builds the widget request for amount XOF.
func NewRequest(reference string, amount int, name, email, publicKey string) Request {
	first, last := SplitName(name)
	return Request{
		PublicKey:   publicKey,
		Reference:   reference,
		Amount:      amount,
		Currency:    "XOF",
		Description: Description(name),
		Customer: Customer{
			FirstName: first,
			LastName:  last,
			Email:     email,
		},
	}
}
