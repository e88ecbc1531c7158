package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

const cartCountHeader = "X-Cart-Count"

// headerBadge mirrors the cart badge into a response header so API clients
// can update their icon without another round trip.
type headerBadge struct {
	c *gin.Context
}

func (b headerBadge) SetBadge(count int, _ string) {
	b.c.Header(cartCountHeader, strconv.Itoa(count))
}

func respondError(c *gin.Context, status int, title string, err error) {
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, ErrorResponse{
		Error:   title,
		Message: err.Error(),
	})
}
