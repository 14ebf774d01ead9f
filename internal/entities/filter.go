package entities

// FilterAll é o valor-sentinela "sem filtro" de cada dimensão.
const FilterAll = "all"

// FilterState guarda as dimensões de filtragem ativas do dashboard.
// Student filtra formação inicial; Operator e Indicator filtram reciclagem;
// Instructor vale para os dois tipos.
type FilterState struct {
	Student    string `json:"student"`
	Operator   string `json:"operator"`
	Instructor string `json:"instructor"`
	Indicator  string `json:"indicator"`
}

// NewFilterState devolve o estado inicial (tudo em "all").
func NewFilterState() FilterState {
	return FilterState{
		Student:    FilterAll,
		Operator:   FilterAll,
		Instructor: FilterAll,
		Indicator:  FilterAll,
	}
}

func (f FilterState) normalized(v string) string {
	if v == "" {
		return FilterAll
	}
	return v
}

// Normalize troca campos vazios pelo sentinela para evitar estados parciais.
func (f FilterState) Normalize() FilterState {
	return FilterState{
		Student:    f.normalized(f.Student),
		Operator:   f.normalized(f.Operator),
		Instructor: f.normalized(f.Instructor),
		Indicator:  f.normalized(f.Indicator),
	}
}
