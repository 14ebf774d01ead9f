package ingest

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/LaercioLira/analise-inteligente/internal/entities"
	apperrors "github.com/LaercioLira/analise-inteligente/pkg/errors"
)

func TestSelectSheet(t *testing.T) {
	cases := []struct {
		names []string
		want  string
	}{
		{[]string{"Instruções de Uso", "Dados da Turma"}, "Dados da Turma"},
		{[]string{"Instruções", "Planilha1"}, "Planilha1"},
		{[]string{"Quick Guide", "Sheet1"}, "Sheet1"},
		{[]string{"Instruções"}, "Instruções"},
		{[]string{}, ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SelectSheet(tc.names), "abas %v", tc.names)
	}
}

func TestResolveHeaderRowSkipsTitleRows(t *testing.T) {
	rows := [][]string{
		{"MODELO DE IMPORTAÇÃO"},
		{""},
		{"Nome Completo", "Instrutor", "Status"},
		{"Ana", "Carlos", "Ativo"},
	}
	assert.Equal(t, 2, ResolveHeaderRow(rows, initialHeaderKeywords))
}

func TestResolveHeaderRowDefaultsToFirst(t *testing.T) {
	rows := [][]string{
		{"coluna a", "coluna b"},
		{"1", "2"},
	}
	assert.Equal(t, 0, ResolveHeaderRow(rows, initialHeaderKeywords))
}

func TestResolveColumn(t *testing.T) {
	headers := []string{"matrícula", "nome do operador", "meta (alvo)"}
	assert.Equal(t, 1, ResolveColumn(headers, "nome", "operador"))
	assert.Equal(t, 2, ResolveColumn(headers, "meta"))
	assert.Equal(t, -1, ResolveColumn(headers, "inexistente"))
}

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"8,5", 8.5, true},
		{"9.0", 9.0, true},
		{" 175 ", 175, true},
		{"", 0, false},
		{"abc", 0, false},
	}
	for _, tc := range cases {
		v, ok := parseNumber(tc.in)
		assert.Equal(t, tc.ok, ok, "entrada %q", tc.in)
		assert.Equal(t, tc.want, v, "entrada %q", tc.in)
	}
}

func buildWorkbook(t *testing.T, sheets map[string][][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	first := true
	for name, rows := range sheets {
		if first {
			f.SetSheetName("Sheet1", name)
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestParsePrefersDataSheetAndHeaderRow(t *testing.T) {
	data := buildWorkbook(t, map[string][][]interface{}{
		"Dados da Turma": {
			{"MODELO DE IMPORTAÇÃO - FORMAÇÃO"},
			{"Nome Completo", "Instrutor", "Status", "Dia 1", "AV 1"},
			{"Ana Silva", "Carlos", "Ativo", "P", "8.5"},
		},
	})

	tbl, err := Parse(data, entities.TrainingInitial)
	require.NoError(t, err)

	assert.Equal(t, []string{"nome completo", "instrutor", "status", "dia 1", "av 1"}, tbl.Headers)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, "Ana Silva", tbl.Rows[0][0])
}

func TestParseEmptySheet(t *testing.T) {
	data := buildWorkbook(t, map[string][][]interface{}{"Planilha1": {}})

	_, err := Parse(data, entities.TrainingInitial)
	require.Error(t, err)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Code)
	assert.Equal(t, apperrors.ErrEmptySheet.Error(), httpErr.Message)
}

func TestParseGarbageBytes(t *testing.T) {
	_, err := Parse([]byte("isto não é um xlsx"), entities.TrainingInitial)
	require.Error(t, err)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Code)
}

func TestParseEndToEndWithNormalizer(t *testing.T) {
	data := buildWorkbook(t, map[string][][]interface{}{
		"Dados para Importação": {
			{"Matrícula", "Nome", "Supervisor", "Indicador", "Meta", "Pré", "Avaliação", "Pós"},
			{"1001", "Ricardo Alves", "Paula", "TMA", "180", "210", "9.5", "175"},
		},
	})

	tbl, err := Parse(data, entities.TrainingRefresher)
	require.NoError(t, err)

	ds := NormalizeDataset(tbl, entities.TrainingRefresher)
	require.Len(t, ds.Refresher, 1)
	assert.Equal(t, "Ricardo Alves", ds.Refresher[0].Name)
	assert.Equal(t, 175.0, ds.Refresher[0].PostResult)
}

func TestTemplateRoundTrip(t *testing.T) {
	// O modelo gerado tem que ser aceito pelo próprio parser, com a aba de
	// instruções ignorada e as linhas de exemplo normalizadas.
	for _, typ := range []entities.TrainingType{entities.TrainingInitial, entities.TrainingRefresher} {
		f, err := BuildTemplate(typ)
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, f.Write(&buf))

		tbl, err := Parse(buf.Bytes(), typ)
		require.NoError(t, err, "tipo %s", typ)

		ds := NormalizeDataset(tbl, typ)
		assert.Greater(t, ds.Len(), 0, "tipo %s", typ)
	}
}
