package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/LaercioLira/analise-inteligente/internal/narrative"
	"github.com/LaercioLira/analise-inteligente/internal/routes"
	"github.com/LaercioLira/analise-inteligente/pkg/config"
	"github.com/LaercioLira/analise-inteligente/pkg/customvalidator"
	apperrors "github.com/LaercioLira/analise-inteligente/pkg/errors"
	applogger "github.com/LaercioLira/analise-inteligente/pkg/logger"
	"github.com/LaercioLira/analise-inteligente/pkg/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Aviso: arquivo .env não encontrado, usando variáveis de ambiente.")
	}

	e := echo.New()
	e.HideBanner = true
	logger := applogger.NewLogger()
	defer logger.Sync()

	cfg := config.New()

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("!!! PANIC detectado !!!",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Erro interno do servidor", err, nil)
				utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		ExposeHeaders: []string{"Content-Disposition"},
	}))

	e.Validator = customvalidator.New()

	generator, err := narrative.NewGeminiGenerator(
		context.Background(),
		cfg.Gemini.APIKey,
		cfg.Gemini.Model,
		cfg.Gemini.FeedbackModel,
		logger,
	)
	if err != nil {
		logger.Fatal("Erro ao inicializar o serviço de narrativa", zap.Error(err))
	}

	routes.InitRouter(e, generator, cfg, logger)

	logger.Info("🚀 Servidor iniciado", zap.String("port", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Erro ao iniciar o servidor", zap.Error(err))
	}
}
