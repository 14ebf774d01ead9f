package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/LaercioLira/analise-inteligente/internal/dto"
	"github.com/LaercioLira/analise-inteligente/internal/entities"
	"github.com/LaercioLira/analise-inteligente/internal/narrative"
	"github.com/LaercioLira/analise-inteligente/pkg/config"
	"github.com/LaercioLira/analise-inteligente/pkg/customvalidator"
)

// stubGenerator substitui a API real: respostas determinísticas, sem rede.
type stubGenerator struct{}

func (stubGenerator) AnalyzeInitial(_ context.Context, recs []entities.InitialRecord, inProgress bool) (*narrative.TrainingAnalysis, error) {
	return &narrative.TrainingAnalysis{
		Summary:          "análise de formação",
		KeyInsights:      []string{"insight"},
		PerformanceScore: 80,
		IsInProgress:     inProgress,
	}, nil
}

func (stubGenerator) AnalyzeRefresher(_ context.Context, recs []entities.RefresherRecord) (*narrative.TrainingAnalysis, error) {
	return &narrative.TrainingAnalysis{
		Summary:          "análise de reciclagem",
		PerformanceScore: 75,
		EmailDraft:       "Prezados supervisores,",
	}, nil
}

func (stubGenerator) StudentFeedback(_ context.Context, rec entities.InitialRecord) (string, error) {
	return "Olá " + rec.Name, nil
}

func (stubGenerator) OperatorFeedback(_ context.Context, rec entities.RefresherRecord) (string, error) {
	return "Feedback para " + rec.Name + " em " + rec.Indicator, nil
}

type envelope struct {
	Status  bool            `json:"status"`
	Body    json.RawMessage `json:"body"`
	Message string          `json:"message"`
}

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	e.Validator = customvalidator.New()

	cfg := &config.Config{
		Server: config.ServerConfig{Port: "0"},
		Gemini: config.GeminiConfig{Timeout: 5 * time.Second},
		Upload: config.UploadConfig{MaxSizeMB: 10},
	}
	InitRouter(e, stubGenerator{}, cfg, zap.NewNop())
	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeDashboard(t *testing.T, rec *httptest.ResponseRecorder) dto.DashboardDTO {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.True(t, env.Status, "resposta: %s", rec.Body.String())

	var dash dto.DashboardDTO
	require.NoError(t, json.Unmarshal(env.Body, &dash))
	return dash
}

func TestHealthz(t *testing.T) {
	e := newTestServer(t)
	rec := doJSON(t, e, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSampleRefresherFlow(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(t, e, http.MethodPost, "/api/analysis/sample", map[string]string{"type": "refresher"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	dash := decodeDashboard(t, rec)
	require.NotEmpty(t, dash.Session.ID)
	assert.Equal(t, "viewing", string(dash.Session.State))
	require.NotNil(t, dash.RefresherStats)
	require.NotNil(t, dash.Quadrants)
	assert.Equal(t, 3, dash.Quadrants.Total())
	assert.Equal(t, "análise de reciclagem", dash.Analysis.Summary)
	assert.Contains(t, dash.Dimensions.Operators, "Ricardo Alves")

	// Filtro por indicador recalcula os agregados.
	sid := dash.Session.ID
	rec = doJSON(t, e, http.MethodPut, "/api/sessions/"+sid+"/filters", map[string]string{"indicator": "TMA"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	filtered := decodeDashboard(t, rec)
	require.NotNil(t, filtered.RefresherStats)
	assert.InDelta(t, 220.0, filtered.RefresherStats.AvgPre, 0.0001)
	assert.InDelta(t, 175.0, filtered.RefresherStats.AvgPost, 0.0001)
	assert.Equal(t, "TMA", filtered.Session.Filters.Indicator)

	// Interpretação do card de evolução com indicador inverso ativo.
	rec = doJSON(t, e, http.MethodGet, "/api/interpret?session_id="+sid+"&metric=evolution&value=-20.45", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	var interp struct {
		Severity string `json:"severity"`
	}
	require.NoError(t, json.Unmarshal(env.Body, &interp))
	assert.Equal(t, "success", interp.Severity)

	// Feedback individual por matrícula e indicador.
	rec = doJSON(t, e, http.MethodPost, "/api/sessions/"+sid+"/feedback",
		map[string]string{"id": "1001", "indicator": "NPS"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	var fb dto.FeedbackResponseDTO
	require.NoError(t, json.Unmarshal(env.Body, &fb))
	assert.Equal(t, "Feedback para Ricardo Alves em NPS", fb.Feedback)
}

func TestSampleInitialFlow(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(t, e, http.MethodPost, "/api/analysis/sample",
		map[string]string{"type": "initial", "status": "completed"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	dash := decodeDashboard(t, rec)
	require.NotNil(t, dash.InitialStats)
	assert.Equal(t, 3, dash.InitialStats.ActiveCount)
	assert.Len(t, dash.InitialChart, 4)
	assert.False(t, dash.Analysis.IsInProgress)

	rec = doJSON(t, e, http.MethodPost, "/api/sessions/"+dash.Session.ID+"/feedback",
		map[string]string{"name": "Carlos Rocha"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	var fb dto.FeedbackResponseDTO
	require.NoError(t, json.Unmarshal(env.Body, &fb))
	assert.Equal(t, "Olá Carlos Rocha", fb.Feedback)
}

func TestSampleRejectsUnknownType(t *testing.T) {
	e := newTestServer(t)
	rec := doJSON(t, e, http.MethodPost, "/api/analysis/sample", map[string]string{"type": "bogus"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetUnknownSession(t *testing.T) {
	e := newTestServer(t)
	rec := doJSON(t, e, http.MethodGet, "/api/sessions/inexistente", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUploadSpreadsheet(t *testing.T) {
	e := newTestServer(t)

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", "Dados da Turma")
	headers := []interface{}{"Nome Completo", "Instrutor", "Status", "Participação", "Dia 1", "Dia 2", "AV 1"}
	f.SetSheetRow("Dados da Turma", "A1", &headers)
	row := []interface{}{"Ana Souza", "Carlos", "Ativo", "Alta", "Presente", "Falta", 8.5}
	f.SetSheetRow("Dados da Turma", "A2", &row)

	var fileBuf bytes.Buffer
	require.NoError(t, f.Write(&fileBuf))

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("type", "initial"))
	require.NoError(t, writer.WriteField("status", "in_progress"))
	require.NoError(t, writer.WriteField("class_name", "Turma Piloto"))
	part, err := writer.CreateFormFile("file", "turma.xlsx")
	require.NoError(t, err)
	_, err = part.Write(fileBuf.Bytes())
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/analysis/upload", &body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	dash := decodeDashboard(t, rec)
	require.NotNil(t, dash.Session.Dataset)
	assert.Equal(t, "Turma Piloto", dash.Session.Dataset.ClassName)
	assert.True(t, dash.Session.Dataset.InProgress)
	require.NotNil(t, dash.InitialStats)
	assert.InDelta(t, 8.5, dash.InitialStats.AvgGrade, 0.0001)
	assert.True(t, dash.Analysis.IsInProgress)
}

func TestUploadWithoutFile(t *testing.T) {
	e := newTestServer(t)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("type", "initial"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/analysis/upload", &body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTemplateDownload(t *testing.T) {
	e := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/templates/refresher", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		rec.Header().Get(echo.HeaderContentType))
	assert.True(t, strings.Contains(rec.Header().Get("Content-Disposition"), "Modelo_Reciclagem"))
	assert.NotZero(t, rec.Body.Len())
}

func TestTemplateDownloadUnknownType(t *testing.T) {
	e := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/templates/bogus", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionResetReturnsToUpload(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(t, e, http.MethodPost, "/api/analysis/sample", map[string]string{"type": "refresher"})
	require.Equal(t, http.StatusOK, rec.Code)
	dash := decodeDashboard(t, rec)

	rec = doJSON(t, e, http.MethodPost, "/api/sessions/"+dash.Session.ID+"/reset", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, e, http.MethodGet, "/api/sessions/"+dash.Session.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	after := decodeDashboard(t, rec)
	assert.Equal(t, "upload", string(after.Session.State))
	assert.Nil(t, after.Session.Dataset)
	assert.Nil(t, after.Analysis)
}
