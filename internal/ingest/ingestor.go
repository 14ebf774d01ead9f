package ingest

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/LaercioLira/analise-inteligente/internal/entities"
	apperrors "github.com/LaercioLira/analise-inteligente/pkg/errors"
)

// Palavras-chave que identificam a linha de cabeçalho de cada tipo de planilha.
// Mantidas como dados (e não lógica inline) para serem testáveis isoladamente.
var (
	refresherHeaderKeywords = []string{"resultado", "pré", "tema", "indicador"}
	initialHeaderKeywords   = []string{"nome", "name", "instrutor", "participação"}
)

// Table é a grade crua extraída da planilha: cabeçalhos já normalizados
// (minúsculos, sem espaços nas pontas) e as linhas de dados abaixo deles.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Parse decodifica os bytes de um xlsx/xls e localiza a tabela de dados.
// A detecção de cabeçalho é best-effort: se nenhuma linha casar com as
// palavras-chave, a linha 0 é assumida como cabeçalho (comportamento aceito,
// mesmo que isso leia errado uma planilha fora do padrão).
func Parse(data []byte, t entities.TrainingType) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.NewHttpError(400, apperrors.ErrFileRead.Error(), err, nil)
	}
	defer f.Close()

	sheet := SelectSheet(f.GetSheetList())
	if sheet == "" {
		return nil, apperrors.NewHttpError(400, apperrors.ErrEmptySheet.Error(), apperrors.ErrEmptySheet, nil)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperrors.NewHttpError(400, apperrors.ErrFileRead.Error(), err, nil)
	}
	if len(rows) == 0 {
		return nil, apperrors.NewHttpError(400, apperrors.ErrEmptySheet.Error(), apperrors.ErrEmptySheet, nil)
	}

	headerRow := ResolveHeaderRow(rows, HeaderKeywords(t))
	headers := make([]string, len(rows[headerRow]))
	for i, h := range rows[headerRow] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	return &Table{Headers: headers, Rows: rows[headerRow+1:]}, nil
}

// SelectSheet aplica a heurística de escolha de aba: prefere uma aba com
// "dados" no nome, senão a primeira que não seja de instruções, senão a primeira.
func SelectSheet(names []string) string {
	if len(names) == 0 {
		return ""
	}
	for _, n := range names {
		if strings.Contains(strings.ToLower(n), "dados") {
			return n
		}
	}
	for _, n := range names {
		lower := strings.ToLower(n)
		if !strings.Contains(lower, "instru") && !strings.Contains(lower, "guide") {
			return n
		}
	}
	return names[0]
}

// HeaderKeywords devolve o conjunto de palavras-chave do tipo de treinamento.
func HeaderKeywords(t entities.TrainingType) []string {
	if t == entities.TrainingRefresher {
		return refresherHeaderKeywords
	}
	return initialHeaderKeywords
}

// ResolveHeaderRow varre as linhas de cima para baixo e devolve o índice da
// primeira cuja alguma célula contenha uma das palavras-chave. Sem match,
// devolve 0 (tolera linhas de título/instrução injetadas por template).
func ResolveHeaderRow(rows [][]string, keywords []string) int {
	for i, row := range rows {
		for _, cell := range row {
			c := strings.ToLower(cell)
			for _, k := range keywords {
				if strings.Contains(c, k) {
					return i
				}
			}
		}
	}
	return 0
}

// ResolveColumn devolve o índice do primeiro cabeçalho que contenha alguma das
// palavras-chave, na ordem dada. -1 quando nenhuma coluna casa.
func ResolveColumn(headers []string, keywords ...string) int {
	for i, h := range headers {
		for _, k := range keywords {
			if strings.Contains(h, k) {
				return i
			}
		}
	}
	return -1
}

// safeGet protege contra linhas mais curtas que o cabeçalho (o excelize não
// preenche células vazias no fim da linha).
func safeGet(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseNumber coage uma célula para float64. Aceita vírgula decimal
// (planilhas pt-BR); falha de parse vira 0 com ok=false, nunca erro.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
