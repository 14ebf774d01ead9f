package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/LaercioLira/analise-inteligente/internal/controllers"
	"github.com/LaercioLira/analise-inteligente/internal/narrative"
	"github.com/LaercioLira/analise-inteligente/internal/services"
	"github.com/LaercioLira/analise-inteligente/internal/session"
	"github.com/LaercioLira/analise-inteligente/pkg/config"
)

// InitRouter monta toda a árvore de rotas. O Generator é injetado para que os
// testes de rota usem um stub no lugar da API real.
func InitRouter(e *echo.Echo, generator narrative.Generator, cfg *config.Config, logger *zap.Logger) {
	logger.Info("InitRouter: registrando rotas")

	store := session.NewStore()
	analysisService := services.NewAnalysisService(store, generator, cfg.Gemini.Timeout, logger)

	analysisCtrl := controllers.NewAnalysisController(analysisService, cfg.Upload.MaxSizeMB*1024*1024, logger)
	templateCtrl := controllers.NewTemplateController(logger)

	e.GET("/healthz", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api")

	analysis := api.Group("/analysis")
	analysis.POST("/upload", analysisCtrl.Upload)
	analysis.POST("/sample", analysisCtrl.Sample)

	sessions := api.Group("/sessions")
	sessions.GET("/:id", analysisCtrl.GetSession)
	sessions.PUT("/:id/filters", analysisCtrl.UpdateFilters)
	sessions.POST("/:id/feedback", analysisCtrl.Feedback)
	sessions.POST("/:id/reset", analysisCtrl.Reset)

	api.GET("/interpret", analysisCtrl.Interpret)
	api.GET("/templates/:type", templateCtrl.Download)
}
