package handlers

import (
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"bakery-cart-backend/internal/middleware"
	"bakery-cart-backend/internal/services"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

const flashCookie = "cart_flash"

// Templates parses the embedded page templates for gin's HTML renderer.
func Templates() *template.Template {
	return template.Must(template.New("pages").Funcs(template.FuncMap{
		"itemPath": escapeItemID,
	}).ParseFS(templateFS, "templates/*.html"))
}

// escapeItemID makes an item id a single path segment. gin unescapes raw path
// values with query rules, so "+" has to be encoded too.
func escapeItemID(id string) string {
	return strings.ReplaceAll(url.PathEscape(id), "+", "%2B")
}

// PageHandler serves the server-rendered cart page and the form endpoints
// the storefront markup posts to.
type PageHandler struct {
	cartService CartServiceInterface
}

func NewPageHandler(cartService CartServiceInterface) *PageHandler {
	return &PageHandler{cartService: cartService}
}

func (h *PageHandler) RegisterRoutes(router gin.IRouter) {
	cart := router.Group("/cart")
	{
		cart.GET("", h.CartPage)
		cart.POST("/items", h.AddItem)
		cart.POST("/items/:item_id/quantity", h.SetQuantity)
		cart.POST("/items/:item_id/remove", h.RemoveItem)
		cart.GET("/checkout", h.Checkout)
	}
}

type cartPage struct {
	Badge   string
	Flash   string
	Summary *services.CartSummary
}

// pageRenderer draws the cart page into the current response.
type pageRenderer struct {
	c     *gin.Context
	badge string
	flash string
}

func (r pageRenderer) Render(summary *services.CartSummary) error {
	r.c.HTML(http.StatusOK, "cart.html", cartPage{
		Badge:   r.badge,
		Flash:   r.flash,
		Summary: summary,
	})
	return nil
}

func (h *PageHandler) CartPage(c *gin.Context) {
	session := h.cartService.Session(middleware.VisitorID(c))
	ctx := c.Request.Context()

	flash, _ := c.Cookie(flashCookie)
	if flash != "" {
		c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	}

	count := session.View.RefreshBadge(ctx)
	renderer := pageRenderer{c: c, badge: services.BadgeLabel(count), flash: flash}
	if err := session.View.RenderSummaryPage(ctx, renderer); err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "could not render cart")
	}
}

// AddItem takes the id, name and price fields posted by a menu page.
func (h *PageHandler) AddItem(c *gin.Context) {
	id := strings.TrimSpace(c.PostForm("id"))
	name := strings.TrimSpace(c.PostForm("name"))
	price, err := strconv.ParseFloat(strings.TrimSpace(c.PostForm("price")), 64)
	if id == "" || name == "" || err != nil || price < 0 {
		c.String(http.StatusBadRequest, "id, name and a non-negative price are required")
		return
	}

	session := h.cartService.Session(middleware.VisitorID(c))
	if err := session.Store.AddItem(c.Request.Context(), id, name, price); err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "could not update cart")
		return
	}

	c.SetCookie(flashCookie, lastConfirmation(session), 60, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, backTarget(c))
}

// SetQuantity ignores input with no leading integer.
func (h *PageHandler) SetQuantity(c *gin.Context) {
	quantity, ok := services.ParseQuantity(c.PostForm("quantity"))
	if ok {
		h.setQuantity(c, quantity)
		return
	}
	c.Redirect(http.StatusSeeOther, "/cart")
}

func (h *PageHandler) RemoveItem(c *gin.Context) {
	h.setQuantity(c, 0)
}

func (h *PageHandler) setQuantity(c *gin.Context, quantity int) {
	session := h.cartService.Session(middleware.VisitorID(c))
	if err := session.Store.SetQuantity(c.Request.Context(), c.Param("item_id"), quantity); err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "could not update cart")
		return
	}
	c.Redirect(http.StatusSeeOther, "/cart")
}

// Checkout sends the browser to the messaging deep link; the page opens it in
// a new tab.
func (h *PageHandler) Checkout(c *gin.Context) {
	summary := h.cartService.Session(middleware.VisitorID(c)).View.Summary(c.Request.Context())
	if summary.IsEmpty() {
		c.Redirect(http.StatusSeeOther, "/cart")
		return
	}
	c.Redirect(http.StatusSeeOther, summary.CheckoutURL)
}

// backTarget returns the same-site page the form was posted from, else /cart.
func backTarget(c *gin.Context) string {
	ref, err := url.Parse(c.GetHeader("Referer"))
	if err != nil || ref.Path == "" || !strings.HasPrefix(ref.Path, "/") {
		return "/cart"
	}
	if ref.Host != "" && ref.Host != c.Request.Host {
		return "/cart"
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}
