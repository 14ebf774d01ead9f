package ingest

import (
	"fmt"
	"strings"
	"time"

	"github.com/LaercioLira/analise-inteligente/internal/entities"
)

// Tokens de presença que contam como falta na coluna "dia N".
var absenceTokens = map[string]bool{
	"ausente": true,
	"falta":   true,
	"f":       true,
	"absent":  true,
	"a":       true,
}

const maxTrainingDays = 21

// NormalizeDataset converte a tabela crua no conjunto canônico de registros.
// Linhas sem o campo de identidade (nome/operador) são descartadas em silêncio;
// valores numéricos ilegíveis viram 0. Isso é tolerância intencional, não
// validação.
func NormalizeDataset(tbl *Table, t entities.TrainingType) *entities.Dataset {
	ds := &entities.Dataset{Type: t}
	if t == entities.TrainingRefresher {
		ds.Refresher = NormalizeRefresher(tbl)
	} else {
		ds.Initial = NormalizeInitial(tbl)
	}
	return ds
}

// NormalizeInitial materializa um InitialRecord por linha com nome preenchido.
func NormalizeInitial(tbl *Table) []entities.InitialRecord {
	nameIdx := ResolveColumn(tbl.Headers, "nome", "name")
	instIdx := ResolveColumn(tbl.Headers, "instrutor", "instructor")
	statusIdx := ResolveColumn(tbl.Headers, "status")
	partIdx := ResolveColumn(tbl.Headers, "participação", "participacao")
	obsIdx := ResolveColumn(tbl.Headers, "observação", "obs", "observações")

	// Índices das colunas diárias e de avaliações, resolvidos uma única vez.
	dayIdx := make([]int, maxTrainingDays+1)
	for n := 1; n <= maxTrainingDays; n++ {
		dayIdx[n] = exactColumn(tbl.Headers, fmt.Sprintf("dia %d", n), fmt.Sprintf("day %d", n))
	}
	gradeIdx := make([]int, 0, 5)
	for n := 1; n <= 5; n++ {
		gradeIdx = append(gradeIdx, ResolveColumn(tbl.Headers,
			fmt.Sprintf("av %d", n), fmt.Sprintf("nota %d", n), fmt.Sprintf("av. %d", n)))
	}

	records := make([]entities.InitialRecord, 0, len(tbl.Rows))
	for _, row := range tbl.Rows {
		name := safeGet(row, nameIdx)
		if name == "" {
			continue
		}

		absences, daysFilled := 0, 0
		for n := 1; n <= maxTrainingDays; n++ {
			val := safeGet(row, dayIdx[n])
			if val == "" {
				continue
			}
			daysFilled = n
			if absenceTokens[strings.ToLower(val)] {
				absences++
			}
		}

		gradeSum, gradeCount := 0.0, 0
		for _, idx := range gradeIdx {
			if v, ok := parseNumber(safeGet(row, idx)); ok {
				gradeSum += v
				gradeCount++
			}
		}
		grade := 0.0
		if gradeCount > 0 {
			grade = gradeSum / float64(gradeCount)
		}

		instructor := safeGet(row, instIdx)
		if instructor == "" {
			instructor = "Padrão"
		}
		participation := safeGet(row, partIdx)
		if participation == "" {
			participation = "Não Informado"
		}

		records = append(records, entities.InitialRecord{
			Kind:          entities.TrainingInitial,
			Name:          name,
			Instructor:    instructor,
			Grade:         grade,
			Absences:      absences,
			DaysFilled:    daysFilled,
			Status:        classifyStatus(safeGet(row, statusIdx)),
			Participation: participation,
			Observations:  safeGet(row, obsIdx),
		})
	}
	return records
}

// NormalizeRefresher materializa um RefresherRecord por linha. A agregação por
// operador (matrícula) acontece depois, no motor de métricas e na montagem do
// payload de narrativa.
func NormalizeRefresher(tbl *Table) []entities.RefresherRecord {
	idIdx := ResolveColumn(tbl.Headers, "matrícula", "matricula", "id")
	nameIdx := ResolveColumn(tbl.Headers, "nome", "operador")
	supIdx := ResolveColumn(tbl.Headers, "supervisor")
	dateIdx := ResolveColumn(tbl.Headers, "data")
	themeIdx := ResolveColumn(tbl.Headers, "tema")
	instIdx := ResolveColumn(tbl.Headers, "instrutor")
	indIdx := ResolveColumn(tbl.Headers, "indicador", "kpi", "métrica")
	targetIdx := ResolveColumn(tbl.Headers, "meta", "target", "alvo")
	preIdx := ResolveColumn(tbl.Headers, "pré", "pre")
	evalIdx := ResolveColumn(tbl.Headers, "avaliação", "avaliacao", "teste", "prova", "nota")
	postIdx := ResolveColumn(tbl.Headers, "pós", "pos")
	obsIdx := ResolveColumn(tbl.Headers, "observações", "obs")

	records := make([]entities.RefresherRecord, 0, len(tbl.Rows))
	for _, row := range tbl.Rows {
		name := safeGet(row, nameIdx)
		if name == "" {
			continue
		}

		target, _ := parseNumber(safeGet(row, targetIdx))
		pre, _ := parseNumber(safeGet(row, preIdx))
		eval, _ := parseNumber(safeGet(row, evalIdx))
		post, _ := parseNumber(safeGet(row, postIdx))

		records = append(records, entities.RefresherRecord{
			Kind:         entities.TrainingRefresher,
			ID:           defaultStr(safeGet(row, idIdx), "N/A"),
			Name:         name,
			Supervisor:   defaultStr(safeGet(row, supIdx), "N/A"),
			Date:         defaultStr(safeGet(row, dateIdx), time.Now().Format("02/01/2006")),
			Theme:        defaultStr(safeGet(row, themeIdx), "Reciclagem Padrão"),
			Instructor:   defaultStr(safeGet(row, instIdx), "Padrão"),
			Indicator:    defaultStr(safeGet(row, indIdx), "Geral"),
			Target:       target,
			PreResult:    pre,
			Evaluation:   eval,
			PostResult:   post,
			Observations: safeGet(row, obsIdx),
		})
	}
	return records
}

// classifyStatus aplica as regras de substring sobre a célula de status.
func classifyStatus(raw string) entities.StudentStatus {
	s := strings.ToLower(raw)
	switch {
	case strings.Contains(s, "desist") || strings.Contains(s, "drop"):
		return entities.StatusDropped
	case strings.Contains(s, "demit") || strings.Contains(s, "dismiss"):
		return entities.StatusDismissed
	default:
		return entities.StatusActive
	}
}

// exactColumn exige igualdade exata do cabeçalho ("dia 1" não pode casar com
// "dia 10" por substring).
func exactColumn(headers []string, candidates ...string) int {
	for i, h := range headers {
		for _, c := range candidates {
			if h == c {
				return i
			}
		}
	}
	return -1
}

func defaultStr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
