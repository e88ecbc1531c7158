package services

import (
	"context"
	"fmt"

	"bakery-cart-backend/configs"
	"bakery-cart-backend/internal/models"
	"bakery-cart-backend/pkg/currency"

	"github.com/shopspring/decimal"
)

// CartReader is the read side of CartStore that views depend on.
type CartReader interface {
	Load(ctx context.Context) models.Cart
}

// BadgeSink is a cart icon badge display.
type BadgeSink interface {
	SetBadge(count int, label string)
}

// SummaryRenderer draws the cart summary page.
type SummaryRenderer interface {
	Render(summary *CartSummary) error
}

type SummaryState string

const (
	SummaryEmpty     SummaryState = "empty"
	SummaryPopulated SummaryState = "populated"
)

type SummaryRow struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	LineTotal     decimal.Decimal `json:"line_total"`
	LineTotalText string          `json:"line_total_text"`
}

// CartSummary is everything the cart page shows, derived from one Load.
type CartSummary struct {
	State           SummaryState    `json:"state"`
	Rows            []SummaryRow    `json:"rows"`
	ItemCount       int             `json:"item_count"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	DeliveryFee     decimal.Decimal `json:"delivery_fee"`
	GrandTotal      decimal.Decimal `json:"grand_total"`
	SubtotalText    string          `json:"subtotal_text"`
	DeliveryFeeText string          `json:"delivery_fee_text"`
	GrandTotalText  string          `json:"grand_total_text"`
	OrderMessage    string          `json:"order_message,omitempty"`
	CheckoutURL     string          `json:"checkout_url,omitempty"`
	CheckoutLabel   string          `json:"checkout_label,omitempty"`
	CatalogURL      string          `json:"catalog_url"`
}

func (s *CartSummary) IsEmpty() bool {
	return s.State == SummaryEmpty
}

// CartView derives displays from a CartReader and holds no cart state.
type CartView struct {
	reader    CartReader
	checkout  configs.CheckoutConfig
	formatter *currency.Formatter
	badges    []BadgeSink
}

func NewCartView(reader CartReader, checkout configs.CheckoutConfig, badges ...BadgeSink) *CartView {
	return &CartView{
		reader:    reader,
		checkout:  checkout,
		formatter: currency.NewFormatter(checkout.CurrencyCode, checkout.Locale),
		badges:    badges,
	}
}

func (v *CartView) AttachBadge(b BadgeSink) {
	v.badges = append(v.badges, b)
}

// CartPersisted refreshes the badge after every write.
func (v *CartView) CartPersisted(ctx context.Context, _ string, _ models.Cart) {
	v.RefreshBadge(ctx)
}

// RefreshBadge writes the total quantity into every attached badge and
// returns it.
func (v *CartView) RefreshBadge(ctx context.Context) int {
	count := v.reader.Load(ctx).TotalQuantity()
	label := BadgeLabel(count)
	for _, b := range v.badges {
		b.SetBadge(count, label)
	}
	return count
}

func BadgeLabel(count int) string {
	return fmt.Sprintf("🛒 (%d)", count)
}

func (v *CartView) Summary(ctx context.Context) *CartSummary {
	cart := v.reader.Load(ctx)

	summary := &CartSummary{
		State:      SummaryEmpty,
		Rows:       []SummaryRow{},
		CatalogURL: v.checkout.CatalogURL,
	}
	if cart.IsEmpty() {
		return summary
	}

	for _, item := range cart {
		lineTotal := item.LineTotal()
		summary.Rows = append(summary.Rows, SummaryRow{
			ID:            item.ID,
			Name:          item.Name,
			Quantity:      item.Quantity,
			Price:         decimal.NewFromFloat(item.Price),
			LineTotal:     lineTotal,
			LineTotalText: v.formatter.Format(lineTotal),
		})
	}

	subtotal := cart.Subtotal()
	grandTotal := subtotal.Add(v.checkout.DeliveryFee)

	summary.State = SummaryPopulated
	summary.ItemCount = cart.TotalQuantity()
	summary.Subtotal = subtotal
	summary.DeliveryFee = v.checkout.DeliveryFee
	summary.GrandTotal = grandTotal
	summary.SubtotalText = v.formatter.Format(subtotal)
	summary.DeliveryFeeText = v.formatter.Format(v.checkout.DeliveryFee)
	summary.GrandTotalText = v.formatter.Format(grandTotal)
	summary.OrderMessage = v.OrderMessage(cart, grandTotal)
	summary.CheckoutURL = CheckoutLink(v.checkout.ServiceURL, v.checkout.Recipient, summary.OrderMessage)
	summary.CheckoutLabel = "Order via WhatsApp (" + summary.GrandTotalText + ")"
	return summary
}

// RenderSummaryPage is a no-op when there is nothing to render into.
func (v *CartView) RenderSummaryPage(ctx context.Context, renderer SummaryRenderer) error {
	if renderer == nil {
		return nil
	}
	return renderer.Render(v.Summary(ctx))
}
