package narrative

import (
	"context"
	"errors"
	"net/http"
	"strings"

	apperrors "github.com/LaercioLira/analise-inteligente/pkg/errors"
)

// MapServiceError converte falhas do colaborador generativo em mensagens
// legíveis para o usuário. Substrings conhecidas (safety, 429, 403) viram
// causas específicas; o resto vira a falha genérica.
func MapServiceError(err error) error {
	if err == nil {
		return nil
	}

	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewHttpError(http.StatusGatewayTimeout,
			"A IA demorou demais para responder. Tente novamente.", err, nil)
	}

	msg := strings.ToUpper(err.Error())
	switch {
	case strings.Contains(msg, "SAFETY"):
		return apperrors.NewHttpError(http.StatusBadGateway, apperrors.ErrNarrativeSafety.Error(), err, nil)
	case strings.Contains(msg, "429") || strings.Contains(msg, "RESOURCE_EXHAUSTED"):
		return apperrors.NewHttpError(http.StatusTooManyRequests, apperrors.ErrNarrativeRateLimit.Error(), err, nil)
	case strings.Contains(msg, "403") || strings.Contains(msg, "PERMISSION"):
		return apperrors.NewHttpError(http.StatusBadGateway, apperrors.ErrNarrativePermission.Error(), err, nil)
	default:
		return apperrors.NewHttpError(http.StatusBadGateway, apperrors.ErrNarrativeGeneric.Error(), err, nil)
	}
}
