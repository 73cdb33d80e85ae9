package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	wizardUC "github.com/khoahotran/portfolio-generator/internal/application/usecase/wizard"
	"github.com/khoahotran/portfolio-generator/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-generator/internal/render"
	"github.com/khoahotran/portfolio-generator/pkg/apperror"
	"github.com/khoahotran/portfolio-generator/pkg/logger"
)

type RenderHandler struct {
	wizardUseCase *wizardUC.WizardUseCase
	logger        logger.Logger
}

func NewRenderHandler(uc *wizardUC.WizardUseCase, log logger.Logger) *RenderHandler {
	return &RenderHandler{wizardUseCase: uc, logger: log}
}

func (h *RenderHandler) ListThemes(c *gin.Context) {
	themes := portfolio.Themes()
	out := make([]ThemeDTO, 0, len(themes))
	for _, t := range themes {
		p, err := portfolio.ResolveTheme(t)
		if err != nil {
			c.Error(apperror.NewInternal("theme table is inconsistent", err))
			return
		}
		out = append(out, ThemeDTO{Name: string(t), Primary: p.Primary, Secondary: p.Secondary})
	}
	c.JSON(http.StatusOK, gin.H{"data": out, "default": string(portfolio.DefaultTheme)})
}

// Render is the stateless endpoint: the body carries everything needed.
func (h *RenderHandler) Render(c *gin.Context) {
	variant, err := render.ParseVariant(c.Query("variant"))
	if err != nil {
		c.Error(apperror.NewInvalidInput(err.Error(), err))
		return
	}
	var req RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for render", err))
		return
	}

	theme := portfolio.DefaultTheme
	if req.Theme != "" {
		if theme, err = portfolio.ParseTheme(req.Theme); err != nil {
			c.Error(apperror.NewInvalidInput(err.Error(), err))
			return
		}
	}

	output, err := h.wizardUseCase.ExecuteRender(c.Request.Context(), wizardUC.RenderInput{
		Variant:  variant,
		Profile:  req.Profile.Normalize(),
		Projects: req.Projects,
		Theme:    theme,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(output.HTML))
}
