package metrics

import (
	"sort"
	"strings"

	"github.com/LaercioLira/analise-inteligente/internal/entities"
)

// Limite de pontos por série para manter o gráfico legível.
const chartPointCap = 30

// InitialChartPoint é um aluno na série nota × faltas.
type InitialChartPoint struct {
	Name     string  `json:"name"`
	Grade    float64 `json:"grade"`
	Absences int     `json:"absences"`
}

// RefresherChartPoint é um ponto pré/pós/meta. Aggregate indica que o ponto é
// uma média por indicador e não um registro individual.
type RefresherChartPoint struct {
	Name       string  `json:"name"`
	FullName   string  `json:"fullName,omitempty"`
	PreResult  float64 `json:"preResult"`
	PostResult float64 `json:"postResult"`
	Target     float64 `json:"target"`
	Aggregate  bool    `json:"isAggregate"`
}

// InitialChartSeries ordena por nota decrescente e corta nos 30 primeiros,
// exibindo só o primeiro nome.
func InitialChartSeries(recs []entities.InitialRecord) []InitialChartPoint {
	sorted := make([]entities.InitialRecord, len(recs))
	copy(sorted, recs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Grade > sorted[j].Grade })
	if len(sorted) > chartPointCap {
		sorted = sorted[:chartPointCap]
	}

	points := make([]InitialChartPoint, len(sorted))
	for i, r := range sorted {
		points[i] = InitialChartPoint{Name: firstName(r.Name), Grade: r.Grade, Absences: r.Absences}
	}
	return points
}

// RefresherChartSeries escolhe o modo de agregação pelo filtro ativo, nesta
// ordem de precedência:
//  1. operador específico: um ponto por indicador daquele operador;
//  2. indicador específico: um ponto por operador, ordenado pela melhora
//     (pós - pré) decrescente, cortado em 30;
//  3. visão geral: médias de pré/pós/meta agrupadas por indicador.
//
// Recebe o subconjunto JÁ filtrado para respeitar o filtro de instrutor.
func RefresherChartSeries(recs []entities.RefresherRecord, f entities.FilterState) []RefresherChartPoint {
	if f.Operator != entities.FilterAll {
		points := make([]RefresherChartPoint, len(recs))
		for i, r := range recs {
			points[i] = RefresherChartPoint{
				Name:       r.Indicator,
				FullName:   r.Name,
				PreResult:  r.PreResult,
				PostResult: r.PostResult,
				Target:     r.Target,
			}
		}
		return points
	}

	if f.Indicator != entities.FilterAll {
		sorted := make([]entities.RefresherRecord, len(recs))
		copy(sorted, recs)
		sort.SliceStable(sorted, func(i, j int) bool {
			return (sorted[i].PostResult - sorted[i].PreResult) > (sorted[j].PostResult - sorted[j].PreResult)
		})
		if len(sorted) > chartPointCap {
			sorted = sorted[:chartPointCap]
		}
		points := make([]RefresherChartPoint, len(sorted))
		for i, r := range sorted {
			points[i] = RefresherChartPoint{
				Name:       firstName(r.Name),
				FullName:   r.Name,
				PreResult:  r.PreResult,
				PostResult: r.PostResult,
				Target:     r.Target,
			}
		}
		return points
	}

	type bucket struct {
		pre, post, target float64
		count             int
	}
	grouped := make(map[string]*bucket)
	var order []string
	for _, r := range recs {
		b, ok := grouped[r.Indicator]
		if !ok {
			b = &bucket{}
			grouped[r.Indicator] = b
			order = append(order, r.Indicator)
		}
		b.pre += r.PreResult
		b.post += r.PostResult
		b.target += r.Target
		b.count++
	}

	points := make([]RefresherChartPoint, 0, len(order))
	for _, ind := range order {
		b := grouped[ind]
		n := float64(b.count)
		points = append(points, RefresherChartPoint{
			Name:       ind,
			PreResult:  b.pre / n,
			PostResult: b.post / n,
			Target:     b.target / n,
			Aggregate:  true,
		})
	}
	return points
}

func firstName(full string) string {
	if i := strings.IndexByte(full, ' '); i > 0 {
		return full[:i]
	}
	return full
}
