package metrics

import (
	"strings"

	"github.com/LaercioLira/analise-inteligente/internal/entities"
)

// Indicadores em que "menor é melhor" (tempos, erros, cancelamentos).
// Uma evolução percentual NEGATIVA nesses casos é favorável.
var lowerIsBetterKeywords = []string{
	"tma", "tme", "tempo", "time", "absente", "rechamada",
	"erro", "desvio", "churn", "cancelamento", "reclama",
}

// IsInverseMetric classifica o indicador pelo nome.
func IsInverseMetric(indicator string) bool {
	lower := strings.ToLower(indicator)
	for _, k := range lowerIsBetterKeywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// HitsTarget aplica a regra de atingimento de meta ciente de métrica inversa:
// para inversas o pós precisa ficar abaixo (ou igual) da meta; para diretas,
// acima (ou igual).
func HitsTarget(r entities.RefresherRecord) bool {
	if IsInverseMetric(r.Indicator) {
		return r.PostResult <= r.Target
	}
	return r.PostResult >= r.Target
}
