package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	prefUC "github.com/khoahotran/portfolio-generator/internal/application/usecase/preference"
	"github.com/khoahotran/portfolio-generator/pkg/apperror"
	"github.com/khoahotran/portfolio-generator/pkg/logger"
)

type PreferenceHandler struct {
	preferenceUseCase *prefUC.PreferenceUseCase
	logger            logger.Logger
}

func NewPreferenceHandler(uc *prefUC.PreferenceUseCase, log logger.Logger) *PreferenceHandler {
	return &PreferenceHandler{preferenceUseCase: uc, logger: log}
}

func (h *PreferenceHandler) GetColorScheme(c *gin.Context) {
	clientID, ok := GetClientIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewInternal("clientID not found in context", nil))
		return
	}
	output, err := h.preferenceUseCase.ExecuteGet(c.Request.Context(), clientID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output)
}

func (h *PreferenceHandler) SetColorScheme(c *gin.Context) {
	clientID, ok := GetClientIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewInternal("clientID not found in context", nil))
		return
	}
	var req ColorSchemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for color scheme", err))
		return
	}
	output, err := h.preferenceUseCase.ExecuteSet(c.Request.Context(), clientID, req.ColorScheme)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output)
}

func (h *PreferenceHandler) ToggleColorScheme(c *gin.Context) {
	clientID, ok := GetClientIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewInternal("clientID not found in context", nil))
		return
	}
	output, err := h.preferenceUseCase.ExecuteToggle(c.Request.Context(), clientID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output)
}
