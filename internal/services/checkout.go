package services

import (
	"net/url"
	"strconv"
	"strings"

	"bakery-cart-backend/internal/models"

	"github.com/shopspring/decimal"
)

// OrderMessage is the line-delimited text handed to the messaging service.
func (v *CartView) OrderMessage(cart models.Cart, grandTotal decimal.Decimal) string {
	var b strings.Builder
	b.WriteString(v.checkout.Greeting)
	b.WriteString("\n")
	for _, item := range cart {
		b.WriteString("- ")
		b.WriteString(item.Name)
		b.WriteString(" (Qty: ")
		b.WriteString(strconv.Itoa(item.Quantity))
		b.WriteString(")\n")
	}
	b.WriteString("\nOrder Total: ")
	b.WriteString(v.formatter.Format(grandTotal))
	b.WriteString("\n\n")
	b.WriteString(v.checkout.DetailsLine)
	return b.String()
}

// CheckoutLink builds <serviceURL>/<recipient>?text=<message>. Line breaks
// become %0A and spaces %20.
func CheckoutLink(serviceURL, recipient, message string) string {
	return strings.TrimRight(serviceURL, "/") + "/" + url.PathEscape(recipient) + "?text=" + escapeMessage(message)
}

func escapeMessage(message string) string {
	return strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
}
