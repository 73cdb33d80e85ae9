package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PremiumHandler only forwards to the external checkout page; no payment state is kept.
type PremiumHandler struct {
	checkoutURL string
}

func NewPremiumHandler(checkoutURL string) *PremiumHandler {
	return &PremiumHandler{checkoutURL: checkoutURL}
}

func (h *PremiumHandler) Checkout(c *gin.Context) {
	c.Redirect(http.StatusFound, h.checkoutURL)
}
