package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/khoahotran/portfolio-generator/pkg/logger"
)

type Handlers struct {
	Wizard     *WizardHandler
	Render     *RenderHandler
	Preference *PreferenceHandler
	Premium    *PremiumHandler
}

// NewRouter wires every route. serviceName is used for otelgin spans.
func NewRouter(h Handlers, serviceName string, log logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		otelgin.Middleware(serviceName),
		LoggingMiddleware(log),
		PrometheusMiddleware(),
		ErrorMiddleware(log),
	)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
		api.GET("/themes", h.Render.ListThemes)
		api.GET("/templates", h.Wizard.ListTemplates)
		api.POST("/render", h.Render.Render)

		sessions := api.Group("/sessions")
		{
			sessions.POST("", h.Wizard.CreateSession)
			sessions.GET("/:id", h.Wizard.GetSession)
			sessions.PUT("/:id/template", h.Wizard.SelectTemplate)
			sessions.PUT("/:id/details", h.Wizard.UpdateDetails)
			sessions.POST("/:id/image", h.Wizard.UploadImage)
			sessions.PUT("/:id/customize", h.Wizard.Customize)
			sessions.POST("/:id/step", h.Wizard.GoToStep)
			sessions.GET("/:id/preview", h.Wizard.Preview)
			sessions.GET("/:id/download", h.Wizard.Download)
			sessions.POST("/:id/deploy", h.Wizard.RequestDeploy)
			sessions.GET("/:id/deploy", h.Wizard.DeployStatus)
		}

		prefs := api.Group("/preferences")
		prefs.Use(ClientIDMiddleware())
		{
			prefs.GET("/color-scheme", h.Preference.GetColorScheme)
			prefs.PUT("/color-scheme", h.Preference.SetColorScheme)
			prefs.POST("/color-scheme/toggle", h.Preference.ToggleColorScheme)
		}

		api.GET("/premium/checkout", h.Premium.Checkout)
	}

	return router
}
