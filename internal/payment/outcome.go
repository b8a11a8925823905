package payment

import "strings"

// Outcome is what the widget's completion status means for the order.
type Outcome int

const (
	OutcomeFailed Outcome = iota
	OutcomeApproved
	OutcomeCanceled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApproved:
		return "approved"
	case OutcomeCanceled:
		return "canceled"
	default:
		return "failed"
	}
}

// Classify maps a widget status. Anything unrecognised counts as a failure.
func Classify(status string) Outcome {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "approved", "successful":
		return OutcomeApproved
	case "canceled", "cancelled":
		return OutcomeCanceled
	default:
		return OutcomeFailed
	}
}
