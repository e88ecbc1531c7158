package handlers

import (
	"errors"
	"math"
	"net/http"

	"bakery-cart-backend/internal/middleware"
	"bakery-cart-backend/internal/services"

	"github.com/gin-gonic/gin"
)

var (
	errEmptyCart       = errors.New("cart has no items")
	errInvalidQuantity = errors.New("quantity must be a number")
)

type CartHandler struct {
	cartService CartServiceInterface
}

func NewCartHandler(cartService CartServiceInterface) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

// RegisterRoutes registers the JSON routes for cart management
func (h *CartHandler) RegisterRoutes(router *gin.RouterGroup) {
	cart := router.Group("/cart")
	{
		// Summary of the visitor's cart
		cart.GET("", h.GetCart)
		// Badge count
		cart.GET("/badge", h.GetBadge)
		// Add item to cart
		cart.POST("/items", h.AddToCart)
		// Update cart item quantity
		cart.PUT("/items/:item_id", h.UpdateCartItem)
		// Remove item from cart
		cart.DELETE("/items/:item_id", h.RemoveFromCart)
		// Messaging deep link for the current cart
		cart.GET("/checkout-link", h.GetCheckoutLink)
	}
}

func (h *CartHandler) session(c *gin.Context) *services.CartSession {
	return h.cartService.Session(middleware.VisitorID(c), headerBadge{c: c})
}

// GetCart godoc
// @Summary Get visitor's cart summary
// @Tags cart
// @Produce json
// @Success 200 {object} services.CartSummary
// @Router /cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	session := h.session(c)
	ctx := c.Request.Context()

	session.View.RefreshBadge(ctx)
	c.JSON(http.StatusOK, session.View.Summary(ctx))
}

// GetBadge godoc
// @Summary Get cart icon badge
// @Tags cart
// @Produce json
// @Success 200 {object} BadgeResponse
// @Router /cart/badge [get]
func (h *CartHandler) GetBadge(c *gin.Context) {
	session := h.session(c)

	count := session.View.RefreshBadge(c.Request.Context())
	c.JSON(http.StatusOK, BadgeResponse{
		Count: count,
		Label: services.BadgeLabel(count),
	})
}

// AddToCart godoc
// @Summary Add item to cart
// @Description Adds one unit; repeat adds keep the first name and price
// @Tags cart
// @Accept json
// @Produce json
// @Param item body AddToCartRequest true "Cart item data"
// @Success 200 {object} CartMutationResponse
// @Failure 400 {object} ErrorResponse
// @Router /cart/items [post]
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	session := h.session(c)
	ctx := c.Request.Context()

	if err := session.Store.AddItem(ctx, req.ID, req.Name, req.Price); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to add item to cart", err)
		return
	}

	c.JSON(http.StatusOK, CartMutationResponse{
		Message: lastConfirmation(session),
		Summary: session.View.Summary(ctx),
	})
}

// UpdateCartItem godoc
// @Summary Update cart item quantity
// @Description Quantities of zero or less remove the item
// @Tags cart
// @Accept json
// @Produce json
// @Param item_id path string true "Product ID"
// @Param item body UpdateCartItemRequest true "Update item data"
// @Success 200 {object} CartMutationResponse
// @Failure 400 {object} ErrorResponse
// @Router /cart/items/{item_id} [put]
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	quantity, ok := coerceQuantity(req.Quantity)
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid quantity", errInvalidQuantity)
		return
	}

	h.setQuantity(c, quantity)
}

// RemoveFromCart godoc
// @Summary Remove item from cart
// @Tags cart
// @Produce json
// @Param item_id path string true "Product ID"
// @Success 200 {object} CartMutationResponse
// @Router /cart/items/{item_id} [delete]
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	h.setQuantity(c, 0)
}

func (h *CartHandler) setQuantity(c *gin.Context, quantity int) {
	session := h.session(c)
	ctx := c.Request.Context()

	if err := session.Store.SetQuantity(ctx, c.Param("item_id"), quantity); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to update cart item", err)
		return
	}

	c.JSON(http.StatusOK, CartMutationResponse{Summary: session.View.Summary(ctx)})
}

// GetCheckoutLink godoc
// @Summary Get the messaging deep link for the cart
// @Tags cart
// @Produce json
// @Success 200 {object} CheckoutLinkResponse
// @Failure 409 {object} ErrorResponse
// @Router /cart/checkout-link [get]
func (h *CartHandler) GetCheckoutLink(c *gin.Context) {
	summary := h.session(c).View.Summary(c.Request.Context())
	if summary.IsEmpty() {
		respondError(c, http.StatusConflict, "Cart is empty", errEmptyCart)
		return
	}

	c.JSON(http.StatusOK, CheckoutLinkResponse{
		URL:     summary.CheckoutURL,
		Message: summary.OrderMessage,
		Label:   summary.CheckoutLabel,
	})
}

func lastConfirmation(session *services.CartSession) string {
	messages := session.Confirmations()
	if len(messages) == 0 {
		return ""
	}
	return messages[len(messages)-1]
}

// coerceQuantity accepts JSON numbers (truncated) and numeric strings.
func coerceQuantity(v interface{}) (int, bool) {
	switch q := v.(type) {
	case float64:
		if math.IsNaN(q) || math.IsInf(q, 0) || math.Abs(q) > services.MaxQuantity {
			return 0, false
		}
		return int(q), true
	case string:
		return services.ParseQuantity(q)
	default:
		return 0, false
	}
}

// Request and Response structs
type AddToCartRequest struct {
	ID    string  `json:"id" binding:"required"`
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price" binding:"gte=0"`
}

type UpdateCartItemRequest struct {
	Quantity interface{} `json:"quantity"`
}

type BadgeResponse struct {
	Count int    `json:"count"`
	Label string `json:"label"`
}

type CartMutationResponse struct {
	Message string                `json:"message,omitempty"`
	Summary *services.CartSummary `json:"summary"`
}

type CheckoutLinkResponse struct {
	URL     string `json:"url"`
	Message string `json:"message"`
	Label   string `json:"label"`
}
