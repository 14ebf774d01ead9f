package metrics

import "github.com/LaercioLira/analise-inteligente/internal/entities"

// TheoryGradeThreshold separa nota de sala "alta" de "baixa" na matriz de
// eficácia (teoria × prática).
const TheoryGradeThreshold = 8.5

// Quadrants particiona a reciclagem em quatro perfis mutuamente exclusivos.
// A soma dos quatro é sempre o total de registros.
type Quadrants struct {
	// Nota alta e meta atingida: podem apadrinhar colegas.
	Stars int `json:"stars"`
	// Meta atingida com nota baixa: entregam, mas precisam revisar conceitos.
	Practical int `json:"practical"`
	// Nota alta sem entregar resultado: falta atitude ou confiança.
	Theoretical int `json:"theoretical"`
	// Nem nota nem resultado: reciclagem urgente.
	Critical int `json:"critical"`
}

func (q Quadrants) Total() int {
	return q.Stars + q.Practical + q.Theoretical + q.Critical
}

// ComputeQuadrants classifica cada registro por (nota de sala ≥ 8.5) ×
// (meta atingida, ciente de métrica inversa).
func ComputeQuadrants(recs []entities.RefresherRecord) Quadrants {
	var q Quadrants
	for _, r := range recs {
		highTheory := r.Evaluation >= TheoryGradeThreshold
		hit := HitsTarget(r)
		switch {
		case highTheory && hit:
			q.Stars++
		case !highTheory && hit:
			q.Practical++
		case highTheory && !hit:
			q.Theoretical++
		default:
			q.Critical++
		}
	}
	return q
}
