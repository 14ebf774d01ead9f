package controllers

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/LaercioLira/analise-inteligente/internal/dto"
	"github.com/LaercioLira/analise-inteligente/internal/services"
	apperrors "github.com/LaercioLira/analise-inteligente/pkg/errors"
	"github.com/LaercioLira/analise-inteligente/pkg/utils"
)

type AnalysisController struct {
	analysisService *services.AnalysisService
	maxUploadBytes  int64
	logger          *zap.Logger
}

func NewAnalysisController(
	analysisService *services.AnalysisService,
	maxUploadBytes int64,
	logger *zap.Logger,
) *AnalysisController {
	return &AnalysisController{
		analysisService: analysisService,
		maxUploadBytes:  maxUploadBytes,
		logger:          logger,
	}
}

// Upload recebe a planilha multipart e devolve o dashboard completo.
func (c *AnalysisController) Upload(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.UploadDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Formato de dados inválido", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Arquivo não enviado (campo 'file')", err, nil), c.logger)
	}
	if fileHeader.Size > c.maxUploadBytes {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusRequestEntityTooLarge, "Arquivo excede o tamanho máximo permitido", nil, nil), c.logger)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, apperrors.ErrFileRead.Error(), err, nil), c.logger)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, c.maxUploadBytes+1))
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, apperrors.ErrFileRead.Error(), err, nil), c.logger)
	}
	if int64(len(data)) > c.maxUploadBytes {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusRequestEntityTooLarge, "Arquivo excede o tamanho máximo permitido", nil, nil), c.logger)
	}

	dashboard, err := c.analysisService.AnalyzeUpload(reqCtx, payload, data)
	if err != nil {
		c.logger.Error("Erro ao analisar planilha", zap.String("type", payload.Type), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, dashboard, "Análise concluída com sucesso", http.StatusOK)
}

// Sample roda a análise de demonstração sem arquivo.
func (c *AnalysisController) Sample(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.SampleDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Formato de dados inválido", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	dashboard, err := c.analysisService.AnalyzeSample(reqCtx, payload)
	if err != nil {
		c.logger.Error("Erro ao gerar análise de exemplo", zap.String("type", payload.Type), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, dashboard, "Análise de exemplo concluída", http.StatusOK)
}

// GetSession devolve o snapshot + agregados da sessão.
func (c *AnalysisController) GetSession(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id := ctx.Param("id")

	dashboard, err := c.analysisService.GetDashboard(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, dashboard, "Sessão recuperada", http.StatusOK)
}

// UpdateFilters troca os filtros ativos e devolve os agregados recalculados.
func (c *AnalysisController) UpdateFilters(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id := ctx.Param("id")

	var payload dto.FilterDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Formato de dados inválido", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	dashboard, err := c.analysisService.UpdateFilters(reqCtx, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, dashboard, "Filtros aplicados", http.StatusOK)
}

// Feedback gera o texto individual de um aluno ou operador.
func (c *AnalysisController) Feedback(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id := ctx.Param("id")

	var payload dto.FeedbackDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Formato de dados inválido", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	text, err := c.analysisService.Feedback(reqCtx, id, payload)
	if err != nil {
		c.logger.Error("Erro ao gerar feedback individual", zap.String("session", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, dto.FeedbackResponseDTO{Feedback: text}, "Feedback gerado", http.StatusOK)
}

// Interpret devolve a interpretação determinística de um card.
func (c *AnalysisController) Interpret(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.InterpretDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Formato de dados inválido", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	interp, err := c.analysisService.Interpret(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, interp, "Interpretação gerada", http.StatusOK)
}

// Reset devolve a sessão à tela de upload.
func (c *AnalysisController) Reset(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id := ctx.Param("id")

	if err := c.analysisService.Reset(reqCtx, id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, nil, "Sessão reiniciada", http.StatusOK)
}
