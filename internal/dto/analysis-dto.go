package dto

import (
	"github.com/LaercioLira/analise-inteligente/internal/entities"
	"github.com/LaercioLira/analise-inteligente/internal/metrics"
	"github.com/LaercioLira/analise-inteligente/internal/narrative"
	"github.com/LaercioLira/analise-inteligente/internal/session"
)

// UploadDTO acompanha o arquivo multipart no upload de planilha.
type UploadDTO struct {
	SessionID string `form:"session_id" validate:"omitempty,uuid4"`
	ClassName string `form:"class_name" validate:"omitempty,max=120"`
	Type      string `form:"type"       validate:"required,training_type"`
	Status    string `form:"status"     validate:"omitempty,class_status"`
}

// SampleDTO dispara a análise de demonstração sem arquivo.
type SampleDTO struct {
	SessionID string `json:"session_id" validate:"omitempty,uuid4"`
	Type      string `json:"type"       validate:"required,training_type"`
	Status    string `json:"status"     validate:"omitempty,class_status"`
}

type FilterDTO struct {
	Student    string `json:"student"    validate:"omitempty,max=120"`
	Operator   string `json:"operator"   validate:"omitempty,max=120"`
	Instructor string `json:"instructor" validate:"omitempty,max=120"`
	Indicator  string `json:"indicator"  validate:"omitempty,max=120"`
}

func (d FilterDTO) ToFilterState() entities.FilterState {
	return entities.FilterState{
		Student:    d.Student,
		Operator:   d.Operator,
		Instructor: d.Instructor,
		Indicator:  d.Indicator,
	}.Normalize()
}

// FeedbackDTO identifica o aluno (por nome) ou o operador (matrícula +
// indicador) alvo do feedback individual.
type FeedbackDTO struct {
	Name      string `json:"name"      validate:"required_without=ID,omitempty,max=120"`
	ID        string `json:"id"        validate:"required_without=Name,omitempty,max=40"`
	Indicator string `json:"indicator" validate:"omitempty,max=120"`
}

type FeedbackResponseDTO struct {
	Feedback string `json:"feedback"`
}

// InterpretDTO chega via query string no endpoint do apresentador.
type InterpretDTO struct {
	SessionID string  `query:"session_id" validate:"required,uuid4"`
	Metric    string  `query:"metric"     validate:"required,oneof=grade absenteeism turnover active evolution passed eval score"`
	Value     float64 `query:"value"`
}

// DashboardDTO é a resposta completa de upload/sample/filtros: snapshot da
// sessão mais os agregados já calculados sob os filtros correntes.
type DashboardDTO struct {
	Session        session.Snapshot              `json:"session"`
	InitialStats   *metrics.InitialStats         `json:"initialStats,omitempty"`
	RefresherStats *metrics.RefresherStats       `json:"refresherStats,omitempty"`
	InitialChart   []metrics.InitialChartPoint   `json:"initialChart,omitempty"`
	RefresherChart []metrics.RefresherChartPoint `json:"refresherChart,omitempty"`
	Quadrants      *metrics.Quadrants            `json:"quadrants,omitempty"`
	Dimensions     metrics.Dimensions            `json:"dimensions"`
	Analysis       *narrative.TrainingAnalysis   `json:"analysis,omitempty"`
}
