package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/LaercioLira/analise-inteligente/internal/entities"
	"github.com/LaercioLira/analise-inteligente/internal/ingest"
	apperrors "github.com/LaercioLira/analise-inteligente/pkg/errors"
	"github.com/LaercioLira/analise-inteligente/pkg/utils"
)

type TemplateController struct {
	logger *zap.Logger
}

func NewTemplateController(logger *zap.Logger) *TemplateController {
	return &TemplateController{logger: logger}
}

// Download monta o modelo de planilha em memória e transmite como anexo.
func (c *TemplateController) Download(ctx echo.Context) error {
	t := entities.TrainingType(ctx.Param("type"))
	if t != entities.TrainingInitial && t != entities.TrainingRefresher {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest,
			"Tipo de modelo inválido: use 'initial' ou 'refresher'", nil, nil), c.logger)
	}

	f, err := ingest.BuildTemplate(t)
	if err != nil {
		c.logger.Error("Erro ao montar modelo de planilha", zap.String("type", string(t)), zap.Error(err))
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusInternalServerError,
			"Erro ao gerar o modelo de planilha", err, nil), c.logger)
	}

	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+ingest.TemplateFileName(t))
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
