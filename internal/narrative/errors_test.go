package narrative

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/LaercioLira/analise-inteligente/pkg/errors"
)

func asHTTP(t *testing.T, err error) *apperrors.HttpError {
	t.Helper()
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	return httpErr
}

func TestMapServiceErrorNil(t *testing.T) {
	assert.NoError(t, MapServiceError(nil))
}

func TestMapServiceErrorRateLimit(t *testing.T) {
	err := MapServiceError(fmt.Errorf("googleapi: Error 429: quota exceeded"))
	httpErr := asHTTP(t, err)
	assert.Equal(t, http.StatusTooManyRequests, httpErr.Code)
	assert.Equal(t, apperrors.ErrNarrativeRateLimit.Error(), httpErr.Message)
}

func TestMapServiceErrorSafety(t *testing.T) {
	err := MapServiceError(fmt.Errorf("candidate blocked: SAFETY"))
	httpErr := asHTTP(t, err)
	assert.Equal(t, apperrors.ErrNarrativeSafety.Error(), httpErr.Message)
}

func TestMapServiceErrorPermission(t *testing.T) {
	err := MapServiceError(fmt.Errorf("Error 403: PERMISSION_DENIED"))
	httpErr := asHTTP(t, err)
	assert.Equal(t, apperrors.ErrNarrativePermission.Error(), httpErr.Message)
}

func TestMapServiceErrorDeadline(t *testing.T) {
	err := MapServiceError(fmt.Errorf("rpc: %w", context.DeadlineExceeded))
	httpErr := asHTTP(t, err)
	assert.Equal(t, http.StatusGatewayTimeout, httpErr.Code)
}

func TestMapServiceErrorGenericFallback(t *testing.T) {
	err := MapServiceError(errors.New("connection reset by peer"))
	httpErr := asHTTP(t, err)
	assert.Equal(t, http.StatusBadGateway, httpErr.Code)
	assert.Equal(t, apperrors.ErrNarrativeGeneric.Error(), httpErr.Message)
}

func TestMapServiceErrorPassesThroughHttpError(t *testing.T) {
	orig := apperrors.NewHttpError(http.StatusBadRequest, "já mapeado", nil, nil)
	assert.Same(t, orig, asHTTP(t, MapServiceError(orig)))
}
