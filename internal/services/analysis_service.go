package services

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/LaercioLira/analise-inteligente/internal/dto"
	"github.com/LaercioLira/analise-inteligente/internal/entities"
	"github.com/LaercioLira/analise-inteligente/internal/ingest"
	"github.com/LaercioLira/analise-inteligente/internal/metrics"
	"github.com/LaercioLira/analise-inteligente/internal/narrative"
	"github.com/LaercioLira/analise-inteligente/internal/presenter"
	"github.com/LaercioLira/analise-inteligente/internal/session"
	apperrors "github.com/LaercioLira/analise-inteligente/pkg/errors"
)

// AnalysisService orquestra o ciclo completo: ingestão, normalização,
// narrativa e montagem do dashboard. A fronteira com a IA é a interface
// narrative.Generator, injetada para permitir stubs em teste.
type AnalysisService struct {
	store     *session.Store
	generator narrative.Generator
	timeout   time.Duration
	logger    *zap.Logger
}

func NewAnalysisService(store *session.Store, generator narrative.Generator, timeout time.Duration, logger *zap.Logger) *AnalysisService {
	return &AnalysisService{
		store:     store,
		generator: generator,
		timeout:   timeout,
		logger:    logger,
	}
}

// AnalyzeUpload processa uma planilha enviada e devolve o dashboard completo.
func (s *AnalysisService) AnalyzeUpload(ctx context.Context, payload dto.UploadDTO, data []byte) (*dto.DashboardDTO, error) {
	t := entities.TrainingType(payload.Type)

	tbl, err := ingest.Parse(data, t)
	if err != nil {
		return nil, err
	}

	ds := ingest.NormalizeDataset(tbl, t)
	ds.ClassName = defaultClassName(payload.ClassName, t)
	ds.InProgress = payload.Status == "in_progress"
	if ds.Len() == 0 {
		return nil, apperrors.NewHttpError(http.StatusBadRequest, apperrors.ErrEmptySheet.Error(), nil, nil)
	}

	return s.analyze(ctx, payload.SessionID, ds, payload.Status != "")
}

// AnalyzeSample roda o fluxo completo sobre o dataset de demonstração.
func (s *AnalysisService) AnalyzeSample(ctx context.Context, payload dto.SampleDTO) (*dto.DashboardDTO, error) {
	t := entities.TrainingType(payload.Type)

	ds := &entities.Dataset{Type: t, InProgress: payload.Status == "in_progress"}
	if t == entities.TrainingInitial {
		ds.ClassName = "Turma Exemplo - Formação"
		ds.Initial = ingest.SampleInitial()
	} else {
		ds.ClassName = "Turma Exemplo - Reciclagem"
		ds.Refresher = ingest.SampleRefresher()
	}

	return s.analyze(ctx, payload.SessionID, ds, payload.Status != "")
}

// analyze conduz a sessão pela máquina de telas, chama a IA sob timeout e só
// publica o resultado se o token ainda for o corrente.
func (s *AnalysisService) analyze(ctx context.Context, sessionID string, ds *entities.Dataset, statusChosen bool) (*dto.DashboardDTO, error) {
	sess := s.store.GetOrCreate(sessionID)

	if sess.State() == session.StateUpload {
		if err := sess.Transition(session.StateSelectingType); err != nil {
			return nil, mapStateError(err)
		}
		if ds.Type == entities.TrainingInitial && statusChosen {
			if err := sess.Transition(session.StateSelectingStatus); err != nil {
				return nil, mapStateError(err)
			}
		}
	}

	token, err := sess.BeginAnalysis(ds)
	if err != nil {
		return nil, mapStateError(err)
	}

	analysis, err := s.generate(ctx, ds)
	if err != nil {
		if !sess.FailAnalysis(token) {
			s.logger.Info("falha de análise obsoleta descartada", zap.String("session", sess.ID))
		}
		return nil, err
	}

	if !sess.ApplyAnalysis(token, analysis) {
		s.logger.Info("análise obsoleta descartada", zap.String("session", sess.ID))
		return nil, apperrors.NewHttpError(http.StatusConflict,
			"esta análise foi substituída por um envio mais recente", nil, nil)
	}

	return s.buildDashboard(sess), nil
}

func (s *AnalysisService) generate(ctx context.Context, ds *entities.Dataset) (*narrative.TrainingAnalysis, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	var (
		analysis *narrative.TrainingAnalysis
		err      error
	)
	if ds.Type == entities.TrainingInitial {
		analysis, err = s.generator.AnalyzeInitial(ctx, ds.Initial, ds.InProgress)
	} else {
		analysis, err = s.generator.AnalyzeRefresher(ctx, ds.Refresher)
	}
	if err != nil {
		return nil, narrative.MapServiceError(err)
	}

	s.logger.Info("narrativa gerada",
		zap.String("type", string(ds.Type)),
		zap.Int("records", ds.Len()),
		zap.Duration("elapsed", time.Since(start)))
	return analysis, nil
}

// GetDashboard devolve o dashboard corrente da sessão.
func (s *AnalysisService) GetDashboard(ctx context.Context, sessionID string) (*dto.DashboardDTO, error) {
	sess, err := s.store.Get(sessionID)
	if err != nil {
		return nil, apperrors.NewHttpError(http.StatusNotFound, err.Error(), err, nil)
	}
	return s.buildDashboard(sess), nil
}

// UpdateFilters troca o estado de filtros e devolve os agregados recalculados.
func (s *AnalysisService) UpdateFilters(ctx context.Context, sessionID string, payload dto.FilterDTO) (*dto.DashboardDTO, error) {
	sess, err := s.store.Get(sessionID)
	if err != nil {
		return nil, apperrors.NewHttpError(http.StatusNotFound, err.Error(), err, nil)
	}
	if err := sess.UpdateFilters(payload.ToFilterState()); err != nil {
		return nil, mapStateError(err)
	}
	return s.buildDashboard(sess), nil
}

// Feedback gera o texto individual para um aluno (por nome) ou operador (por
// matrícula, com indicador opcional para desambiguar o KPI).
func (s *AnalysisService) Feedback(ctx context.Context, sessionID string, payload dto.FeedbackDTO) (string, error) {
	sess, err := s.store.Get(sessionID)
	if err != nil {
		return "", apperrors.NewHttpError(http.StatusNotFound, err.Error(), err, nil)
	}
	ds := sess.Dataset()
	if ds == nil {
		return "", apperrors.NewHttpError(http.StatusConflict, "nenhuma análise carregada nesta sessão", nil, nil)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if ds.Type == entities.TrainingInitial {
		for _, r := range ds.Initial {
			if r.Name == payload.Name {
				text, err := s.generator.StudentFeedback(ctx, r)
				if err != nil {
					return "", narrative.MapServiceError(err)
				}
				return text, nil
			}
		}
		return "", apperrors.NewHttpError(http.StatusNotFound, apperrors.ErrNotFound.Error(), nil, nil)
	}

	for _, r := range ds.Refresher {
		if r.ID != payload.ID {
			continue
		}
		if payload.Indicator != "" && r.Indicator != payload.Indicator {
			continue
		}
		text, err := s.generator.OperatorFeedback(ctx, r)
		if err != nil {
			return "", narrative.MapServiceError(err)
		}
		return text, nil
	}
	return "", apperrors.NewHttpError(http.StatusNotFound, apperrors.ErrNotFound.Error(), nil, nil)
}

// Interpret resolve a interpretação determinística de um card do dashboard.
func (s *AnalysisService) Interpret(ctx context.Context, payload dto.InterpretDTO) (*presenter.Interpretation, error) {
	sess, err := s.store.Get(payload.SessionID)
	if err != nil {
		return nil, apperrors.NewHttpError(http.StatusNotFound, err.Error(), err, nil)
	}
	ds := sess.Dataset()
	if ds == nil {
		return nil, apperrors.NewHttpError(http.StatusConflict, "nenhuma análise carregada nesta sessão", nil, nil)
	}

	out := presenter.Interpret(presenter.Metric(payload.Metric), payload.Value, ds.Type, sess.Filters().Indicator)
	return &out, nil
}

// Reset devolve a sessão à tela de upload, invalidando análises em voo.
func (s *AnalysisService) Reset(ctx context.Context, sessionID string) error {
	sess, err := s.store.Get(sessionID)
	if err != nil {
		return apperrors.NewHttpError(http.StatusNotFound, err.Error(), err, nil)
	}
	sess.Reset()
	return nil
}

func (s *AnalysisService) buildDashboard(sess *session.Session) *dto.DashboardDTO {
	snap := sess.Snapshot()
	out := &dto.DashboardDTO{
		Session:  snap,
		Analysis: snap.Analysis,
	}
	ds := snap.Dataset
	if ds == nil {
		return out
	}

	out.Dimensions = metrics.CollectDimensions(ds)

	if ds.Type == entities.TrainingInitial {
		subset := metrics.FilterInitial(ds.Initial, snap.Filters)
		stats := metrics.ComputeInitial(subset)
		out.InitialStats = &stats
		out.InitialChart = metrics.InitialChartSeries(subset)
		return out
	}

	subset := metrics.FilterRefresher(ds.Refresher, snap.Filters)
	stats := metrics.ComputeRefresher(subset)
	quads := metrics.ComputeQuadrants(subset)
	out.RefresherStats = &stats
	out.RefresherChart = metrics.RefresherChartSeries(subset, snap.Filters)
	out.Quadrants = &quads
	return out
}

func defaultClassName(name string, t entities.TrainingType) string {
	if name != "" {
		return name
	}
	if t == entities.TrainingInitial {
		return "Turma de Formação"
	}
	return "Turma de Reciclagem"
}

func mapStateError(err error) error {
	return apperrors.NewHttpError(http.StatusConflict, err.Error(), err, nil)
}
