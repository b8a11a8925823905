package email

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strings"
)

// OrderItem represents an item in an order for email purposes
type OrderItem struct {
	ProductID string
	Name      string
	Quantity  int
	Price     int
}

func (i OrderItem) Label() string {
	if i.Name == "" {
		return i.ProductID
	}
	return i.Name
}

func (i OrderItem) Subtotal() int {
	return i.Price * i.Quantity
}

// OrderConfirmation is the data rendered into the confirmation email
type OrderConfirmation struct {
	CustomerName string
	OrderID      string
	ShortID      string
	Items        []OrderItem
	Total        int
}

//go:embed order_confirmation.html
var orderConfirmationHTML string

var orderConfirmationTmpl = template.Must(
	template.New("order_confirmation").
		Funcs(template.FuncMap{"xof": formatXOF}).
		Parse(orderConfirmationHTML),
)

// BuildOrderConfirmationBody builds the HTML body for order confirmation email
func BuildOrderConfirmationBody(data OrderConfirmation) (string, error) {
	var body bytes.Buffer
	if err := orderConfirmationTmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("template execution error: %w", err)
	}
	return body.String(), nil
}

// formatXOF renders an amount the way French locales do: "850 000 FCFA".
func formatXOF(n int) string {
	return formatNumber(n) + " FCFA"
}

// formatNumber formats a number with space separators
func formatNumber(n int) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	str := fmt.Sprintf("%d", n)
	if len(str) <= 3 {
		return sign + str
	}

	var result strings.Builder
	result.WriteString(sign)
	remainder := len(str) % 3
	if remainder > 0 {
		result.WriteString(str[:remainder])
	}

	for i := remainder; i < len(str); i += 3 {
		if i > 0 {
			result.WriteString(" ")
		}
		result.WriteString(str[i : i+3])
	}

	return result.String()
}
