package metrics

import "github.com/LaercioLira/analise-inteligente/internal/entities"

// FilterInitial devolve o subconjunto da formação inicial sob o filtro ativo.
// Nunca muta a coleção de entrada.
func FilterInitial(recs []entities.InitialRecord, f entities.FilterState) []entities.InitialRecord {
	out := make([]entities.InitialRecord, 0, len(recs))
	for _, r := range recs {
		if f.Student != entities.FilterAll && r.Name != f.Student {
			continue
		}
		if f.Instructor != entities.FilterAll && r.Instructor != f.Instructor {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FilterRefresher aplica indicador, operador e instrutor, nessa ordem.
func FilterRefresher(recs []entities.RefresherRecord, f entities.FilterState) []entities.RefresherRecord {
	out := make([]entities.RefresherRecord, 0, len(recs))
	for _, r := range recs {
		if f.Indicator != entities.FilterAll && r.Indicator != f.Indicator {
			continue
		}
		if f.Operator != entities.FilterAll && r.Name != f.Operator {
			continue
		}
		if f.Instructor != entities.FilterAll && r.Instructor != f.Instructor {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Dimensions lista os valores distintos (ordenados) de cada dimensão filtrável,
// calculados sempre sobre a coleção completa, não sobre o subconjunto.
type Dimensions struct {
	Students    []string `json:"students,omitempty"`
	Operators   []string `json:"operators,omitempty"`
	Instructors []string `json:"instructors"`
	Indicators  []string `json:"indicators,omitempty"`
}

func CollectDimensions(ds *entities.Dataset) Dimensions {
	var d Dimensions
	if ds.Type == entities.TrainingInitial {
		d.Students = distinct(ds.Initial, func(r entities.InitialRecord) string { return r.Name })
		d.Instructors = distinct(ds.Initial, func(r entities.InitialRecord) string { return r.Instructor })
		return d
	}
	d.Operators = distinct(ds.Refresher, func(r entities.RefresherRecord) string { return r.Name })
	d.Instructors = distinct(ds.Refresher, func(r entities.RefresherRecord) string { return r.Instructor })
	d.Indicators = distinct(ds.Refresher, func(r entities.RefresherRecord) string { return r.Indicator })
	return d
}
