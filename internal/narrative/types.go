package narrative

import (
	"context"

	"github.com/LaercioLira/analise-inteligente/internal/entities"
)

// TrainingAnalysis é o esquema fixo esperado do serviço generativo. Campos
// opcionais ficam vazios quando o modelo não os devolve; o conteúdo em si é
// opaco para o núcleo.
type TrainingAnalysis struct {
	Summary            string              `json:"summary"`
	KeyInsights        []string            `json:"keyInsights"`
	Recommendations    []string            `json:"recommendations"`
	PerformanceScore   float64             `json:"performanceScore"`
	IsInProgress       bool                `json:"isInProgress"`
	ProfilingInsights  []ProfilingInsight  `json:"profilingInsights,omitempty"`
	IndividualInsights []IndividualInsight `json:"individualInsights,omitempty"`
	KnowledgeGain      float64             `json:"knowledgeGain,omitempty"`
	EmailDraft         string              `json:"emailDraft,omitempty"`
}

type ProfilingInsight struct {
	StudentName    string  `json:"studentName"`
	AlignmentScore float64 `json:"alignmentScore"`
	Observation    string  `json:"observation"`
}

type IndividualInsight struct {
	StudentName string `json:"studentName"`
	Insight     string `json:"insight"`
}

// Generator é a fronteira com o serviço de narrativa. A implementação real usa
// o Gemini; os testes usam um stub determinístico.
type Generator interface {
	AnalyzeInitial(ctx context.Context, recs []entities.InitialRecord, inProgress bool) (*TrainingAnalysis, error)
	AnalyzeRefresher(ctx context.Context, recs []entities.RefresherRecord) (*TrainingAnalysis, error)
	StudentFeedback(ctx context.Context, rec entities.InitialRecord) (string, error)
	OperatorFeedback(ctx context.Context, rec entities.RefresherRecord) (string, error)
}
