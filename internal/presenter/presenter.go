// Package presenter transforma um valor de métrica em uma interpretação
// qualitativa determinística para os modais do apresentador. Funções puras,
// sem I/O, para serem testáveis contra pares literais de entrada/saída.
package presenter

import (
	"fmt"
	"math"

	"github.com/LaercioLira/analise-inteligente/internal/entities"
	"github.com/LaercioLira/analise-inteligente/internal/metrics"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
	SeverityNeutral Severity = "neutral"
)

// Metric identifica qual card do dashboard está sendo interpretado.
type Metric string

const (
	MetricGrade       Metric = "grade"
	MetricAbsenteeism Metric = "absenteeism"
	MetricTurnover    Metric = "turnover"
	MetricActive      Metric = "active"
	MetricEvolution   Metric = "evolution"
	MetricPassed      Metric = "passed"
	MetricEval        Metric = "eval"
	MetricScore       Metric = "score"
)

type Interpretation struct {
	Title    string   `json:"title"`
	Concept  string   `json:"concept"`
	Insight  string   `json:"insight"`
	Severity Severity `json:"severity"`
}

// Interpret resolve a interpretação de uma métrica. Para "evolution" o
// indicador ativo decide a direção dos limiares (métrica inversa: queda é bom);
// com o filtro em "all" a interpretação fala da média geral.
func Interpret(metric Metric, value float64, trainingType entities.TrainingType, activeIndicator string) Interpretation {
	if trainingType == entities.TrainingRefresher {
		return interpretRefresher(metric, value, activeIndicator)
	}
	return interpretInitial(metric, value)
}

func interpretInitial(metric Metric, value float64) Interpretation {
	switch metric {
	case MetricGrade:
		out := Interpretation{
			Title:   "Média Geral da Turma",
			Concept: "A média aritmética de todas as notas aplicadas até o momento. Reflete a absorção técnica do conteúdo.",
		}
		switch {
		case value >= 8:
			out.Insight = fmt.Sprintf("Excelente! A turma está com %.1f, acima da meta de 8.0. O conteúdo está sendo bem absorvido.", value)
			out.Severity = SeveritySuccess
		case value >= 7:
			out.Insight = fmt.Sprintf("Atenção. A média de %.1f está próxima da meta (8.0), mas requer reforço em tópicos específicos.", value)
			out.Severity = SeverityWarning
		default:
			out.Insight = fmt.Sprintf("Crítico. A média %.1f indica dificuldades generalizadas. Revise a metodologia ou o ritmo das aulas.", value)
			out.Severity = SeverityDanger
		}
		return out

	case MetricAbsenteeism:
		out := Interpretation{
			Title:   "Taxa de Absenteísmo",
			Concept: "Porcentagem de faltas em relação ao total de dias letivos. O limite aceitável de mercado costuma ser 5%.",
		}
		switch {
		case value <= 5:
			out.Insight = "Engajamento alto! A presença em sala está consistente, o que favorece o aprendizado."
			out.Severity = SeveritySuccess
		case value <= 10:
			out.Insight = fmt.Sprintf("Sinal amarelo. %.1f%% de faltas começa a impactar a continuidade do conteúdo.", value)
			out.Severity = SeverityWarning
		default:
			out.Insight = fmt.Sprintf("Alerta Vermelho! %.1f%% é um índice muito alto. Verifique motivos de saúde ou desmotivação.", value)
			out.Severity = SeverityDanger
		}
		return out

	case MetricTurnover:
		out := Interpretation{
			Title:   "Taxa de Turnover (Evasão)",
			Concept: "Percentual de alunos que desistiram ou foram desligados durante o processo de formação.",
		}
		switch {
		case value == 0:
			out.Insight = "Retenção perfeita! Todos os alunos iniciados continuam ativos."
			out.Severity = SeveritySuccess
		case value < 10:
			out.Insight = "Turnover controlado. Algumas perdas são esperadas, mas monitore os motivos de saída."
			out.Severity = SeverityWarning
		default:
			out.Insight = "Turnover elevado. Perder muitos alunos na formação custa caro para a operação. Investigue a seleção ou o clima."
			out.Severity = SeverityDanger
		}
		return out

	case MetricActive:
		return Interpretation{
			Title:    "Alunos Ativos",
			Concept:  "Contagem absoluta de alunos aptos a continuar o treinamento ou seguir para a operação.",
			Insight:  fmt.Sprintf("Atualmente temos %.0f alunos em sala. Certifique-se de ter posições de atendimento (PAs) suficientes para todos na graduação.", value),
			Severity: SeverityNeutral,
		}
	}
	return Interpretation{Severity: SeverityNeutral}
}

func interpretRefresher(metric Metric, value float64, activeIndicator string) Interpretation {
	indicator := activeIndicator
	if indicator == "" || indicator == entities.FilterAll {
		indicator = "Média Geral"
	}
	inverse := metrics.IsInverseMetric(indicator)

	switch metric {
	case MetricEvolution:
		out := Interpretation{
			Title:   "Evolução no Período",
			Concept: fmt.Sprintf("Variação percentual entre o resultado Pré e Pós-Reciclagem para %s.", indicator),
		}
		if inverse {
			switch {
			case value < 0:
				out.Insight = fmt.Sprintf("Excelente! O indicador %q teve uma REDUÇÃO de %.1f%%, o que representa ganho de eficiência operacional.", indicator, math.Abs(value))
				out.Severity = SeveritySuccess
			case value == 0:
				out.Insight = "Estável. O indicador manteve o mesmo patamar."
				out.Severity = SeverityWarning
			default:
				out.Insight = fmt.Sprintf("Atenção. O indicador AUMENTOU %.1f%%. Para métricas como %s, o objetivo é a redução.", value, indicator)
				out.Severity = SeverityDanger
			}
			return out
		}
		switch {
		case value > 10:
			out.Insight = fmt.Sprintf("Crescimento robusto! O indicador subiu %.1f%%, mostrando forte impacto do treinamento.", value)
			out.Severity = SeveritySuccess
		case value > 0:
			out.Insight = fmt.Sprintf("Melhoria positiva de %.1f%%. O resultado está na direção certa.", value)
			out.Severity = SeverityWarning
		default:
			out.Insight = fmt.Sprintf("Alerta. O indicador caiu ou ficou estagnado (%.1f%%). O treinamento não surtiu o efeito esperado de aumento.", value)
			out.Severity = SeverityDanger
		}
		return out

	case MetricPassed:
		return Interpretation{
			Title:    "Meta Atingida (Pós)",
			Concept:  "Quantidade de operadores que alcançaram a meta estipulada para o indicador após o treinamento.",
			Insight:  fmt.Sprintf("Monitorar este número é crucial para ROI. %.0f operadores agora entregam o resultado esperado.", value),
			Severity: SeverityNeutral,
		}

	case MetricEval:
		out := Interpretation{
			Title:   "Média Avaliação (Sala)",
			Concept: "Nota média obtida no teste de conhecimento (prova teórica) aplicada durante a reciclagem.",
		}
		if value >= 9 {
			out.Insight = "Domínio teórico excelente. A turma entendeu os conceitos passados em sala."
			out.Severity = SeveritySuccess
		} else {
			out.Insight = "Atenção à teoria. Notas baixas aqui indicam que a mensagem do instrutor não foi clara."
			out.Severity = SeverityWarning
		}
		return out

	case MetricScore:
		out := Interpretation{
			Title:   "Performance Score IA",
			Concept: "Índice calculado pela IA (0-100) ponderando evolução, atingimento de meta e notas de prova.",
			Insight: "Este score resume a eficácia geral da ação de treinamento em um único número para a gestão.",
		}
		if value > 70 {
			out.Severity = SeveritySuccess
		} else {
			out.Severity = SeverityWarning
		}
		return out
	}
	return Interpretation{Severity: SeverityNeutral}
}
