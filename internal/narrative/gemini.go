package narrative

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/LaercioLira/analise-inteligente/internal/entities"
	apperrors "github.com/LaercioLira/analise-inteligente/pkg/errors"
)

// GeminiGenerator implementa Generator usando a API Gemini. Análises completas
// usam o modelo principal; feedbacks individuais usam o modelo rápido.
type GeminiGenerator struct {
	client        *genai.Client
	model         string
	feedbackModel string
	logger        *zap.Logger
}

var _ Generator = (*GeminiGenerator)(nil)

func NewGeminiGenerator(ctx context.Context, apiKey, model, feedbackModel string, logger *zap.Logger) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY não configurada")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("criando cliente gemini: %w", err)
	}
	return &GeminiGenerator{
		client:        client,
		model:         model,
		feedbackModel: feedbackModel,
		logger:        logger,
	}, nil
}

// generateJSON executa uma geração com MIME type JSON e decodifica a resposta.
func (g *GeminiGenerator) generateJSON(ctx context.Context, systemInstruction, prompt string) (*TrainingAnalysis, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr(float32(0.2)),
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		g.logger.Error("falha na geração de análise", zap.String("model", g.model), zap.Error(err))
		return nil, MapServiceError(err)
	}

	text := result.Text()
	if text == "" {
		return nil, apperrors.ErrNarrativeEmpty
	}

	analysis, err := DecodeAnalysis(text)
	if err != nil {
		g.logger.Error("resposta da IA fora do esquema", zap.Error(err))
		return nil, err
	}
	return analysis, nil
}

// generateText executa uma geração livre (Markdown) com o modelo rápido.
func (g *GeminiGenerator) generateText(ctx context.Context, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.4)),
	}

	result, err := g.client.Models.GenerateContent(ctx, g.feedbackModel, genai.Text(prompt), config)
	if err != nil {
		g.logger.Error("falha na geração de feedback", zap.String("model", g.feedbackModel), zap.Error(err))
		return "", MapServiceError(err)
	}

	text := result.Text()
	if text == "" {
		return "", apperrors.ErrNarrativeEmpty
	}
	return text, nil
}

func (g *GeminiGenerator) AnalyzeInitial(ctx context.Context, recs []entities.InitialRecord, inProgress bool) (*TrainingAnalysis, error) {
	analysis, err := g.generateJSON(ctx, initialSystemInstruction, initialPrompt(recs, inProgress))
	if err != nil {
		return nil, err
	}
	analysis.IsInProgress = inProgress
	return analysis, nil
}

func (g *GeminiGenerator) AnalyzeRefresher(ctx context.Context, recs []entities.RefresherRecord) (*TrainingAnalysis, error) {
	return g.generateJSON(ctx, refresherSystemInstruction, refresherPrompt(recs))
}

func (g *GeminiGenerator) StudentFeedback(ctx context.Context, rec entities.InitialRecord) (string, error) {
	return g.generateText(ctx, studentFeedbackPrompt(rec))
}

func (g *GeminiGenerator) OperatorFeedback(ctx context.Context, rec entities.RefresherRecord) (string, error) {
	return g.generateText(ctx, operatorFeedbackPrompt(rec))
}
