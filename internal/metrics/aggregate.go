package metrics

import (
	"sort"

	"github.com/LaercioLira/analise-inteligente/internal/entities"
)

// InitialStats são os agregados da formação inicial sobre o subconjunto
// filtrado. Com subconjunto vazio todas as taxas são 0, nunca NaN.
type InitialStats struct {
	AvgGrade        float64 `json:"avgGrade"`
	AbsenteeismRate float64 `json:"absenteeismRate"`
	TurnoverRate    float64 `json:"turnoverRate"`
	TurnoverCount   int     `json:"turnoverCount"`
	ActiveCount     int     `json:"activeCount"`
	TotalAbsences   int     `json:"totalAbsences"`
}

// RefresherStats são os agregados da reciclagem sobre o subconjunto filtrado.
type RefresherStats struct {
	AvgPre    float64 `json:"avgPre"`
	AvgEval   float64 `json:"avgEval"`
	AvgPost   float64 `json:"avgPost"`
	AvgTarget float64 `json:"avgTarget"`
	Evolution float64 `json:"evolution"`
	Passed    int     `json:"passed"`
}

// CurrentDay é o dia mais avançado do programa dentro do subconjunto, com piso
// em 1 para proteger o denominador do absenteísmo.
func CurrentDay(recs []entities.InitialRecord) int {
	day := 1
	for _, r := range recs {
		if r.DaysFilled > day {
			day = r.DaysFilled
		}
	}
	return day
}

// ComputeInitial calcula os agregados da formação inicial. A taxa de
// absenteísmo normaliza pelas pessoas-dia decorridas (total * dia atual), e não
// por 21 dias fixos, para não penalizar turmas no início do programa.
func ComputeInitial(recs []entities.InitialRecord) InitialStats {
	total := len(recs)
	if total == 0 {
		return InitialStats{}
	}

	currentDay := CurrentDay(recs)
	gradeSum := 0.0
	totalAbsences := 0
	turnoverCount := 0
	for _, r := range recs {
		gradeSum += r.Grade
		totalAbsences += r.Absences
		if r.Status != entities.StatusActive {
			turnoverCount++
		}
	}

	return InitialStats{
		AvgGrade:        gradeSum / float64(total),
		AbsenteeismRate: float64(totalAbsences) / (float64(total) * float64(currentDay)) * 100,
		TurnoverRate:    float64(turnoverCount) / float64(total) * 100,
		TurnoverCount:   turnoverCount,
		ActiveCount:     total - turnoverCount,
		TotalAbsences:   totalAbsences,
	}
}

// ComputeRefresher calcula os agregados da reciclagem. A evolução substitui
// avgPre por 1 quando o denominador é zero; se o pré for legitimamente zero o
// percentual resultante é enorme, comportamento conhecido e preservado.
func ComputeRefresher(recs []entities.RefresherRecord) RefresherStats {
	total := len(recs)
	if total == 0 {
		return RefresherStats{}
	}

	var preSum, evalSum, postSum, targetSum float64
	passed := 0
	for _, r := range recs {
		preSum += r.PreResult
		evalSum += r.Evaluation
		postSum += r.PostResult
		targetSum += r.Target
		if HitsTarget(r) {
			passed++
		}
	}

	avgPre := preSum / float64(total)
	avgPost := postSum / float64(total)
	denom := avgPre
	if denom == 0 {
		denom = 1
	}

	return RefresherStats{
		AvgPre:    avgPre,
		AvgEval:   evalSum / float64(total),
		AvgPost:   avgPost,
		AvgTarget: targetSum / float64(total),
		Evolution: (avgPost - avgPre) / denom * 100,
		Passed:    passed,
	}
}

func distinct[T any](recs []T, key func(T) string) []string {
	seen := make(map[string]bool, len(recs))
	var out []string
	for _, r := range recs {
		k := key(r)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
