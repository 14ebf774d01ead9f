package ingest

import "github.com/LaercioLira/analise-inteligente/internal/entities"

// SampleInitial é a turma de demonstração usada pelo fluxo "Ver Exemplo".
func SampleInitial() []entities.InitialRecord {
	k := entities.TrainingInitial
	return []entities.InitialRecord{
		{Kind: k, Name: "Carlos Rocha", Instructor: "Ana", Grade: 7.5, Absences: 2, Status: entities.StatusActive, Participation: "Média", Observations: "Mostra interesse, mas falta base técnica em Excel.", DaysFilled: 12},
		{Kind: k, Name: "Juliana Lima", Instructor: "Ana", Grade: 9.5, Absences: 0, Status: entities.StatusActive, Participation: "Alta", Observations: "Perfil de liderança excelente, ajuda os colegas.", DaysFilled: 12},
		{Kind: k, Name: "Marcos Viana", Instructor: "Ana", Grade: 4.5, Absences: 5, Status: entities.StatusActive, Participation: "Baixa", Observations: "Muitas distrações durante as aulas. Baixo rendimento nas provas.", DaysFilled: 12},
		{Kind: k, Name: "Beatriz Souza", Instructor: "Carlos", Grade: 8.0, Absences: 1, Status: entities.StatusDropped, Participation: "Média", Observations: "Desistiu por motivos pessoais de saúde.", DaysFilled: 5},
	}
}

// SampleRefresher cobre o caso de operador com múltiplos indicadores (mesmo ID).
func SampleRefresher() []entities.RefresherRecord {
	k := entities.TrainingRefresher
	return []entities.RefresherRecord{
		{Kind: k, ID: "1001", Name: "Ricardo Alves", Supervisor: "Roberto", Date: "10/11/2023", Theme: "Atendimento", Instructor: "Silva", Indicator: "TMA", Target: 180, PreResult: 220, Evaluation: 9.0, PostResult: 175, Observations: "Reduziu o TMA drasticamente."},
		{Kind: k, ID: "1001", Name: "Ricardo Alves", Supervisor: "Roberto", Date: "10/11/2023", Theme: "Atendimento", Instructor: "Silva", Indicator: "NPS", Target: 75, PreResult: 60, Evaluation: 9.0, PostResult: 80, Observations: "Melhorou empatia."},
		{Kind: k, ID: "1002", Name: "Fernanda Costa", Supervisor: "Roberto", Date: "10/11/2023", Theme: "Vendas", Instructor: "Silva", Indicator: "Conversão", Target: 20, PreResult: 15, Evaluation: 9.5, PostResult: 22, Observations: "Ótima argumentação."},
	}
}
