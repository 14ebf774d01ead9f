package ingest

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/LaercioLira/analise-inteligente/internal/entities"
)

// Cores de marca dos templates (indigo para formação, esmeralda para reciclagem).
const (
	brandInitial   = "4F46E5"
	brandRefresher = "059669"
)

// TemplateFileName devolve o nome de download do modelo.
func TemplateFileName(t entities.TrainingType) string {
	if t == entities.TrainingRefresher {
		return "Modelo_Reciclagem_Padrao_Corp.xlsx"
	}
	return "Modelo_Formacao_Inicial_Corp.xlsx"
}

// BuildTemplate monta o arquivo modelo com aba de instruções e aba de dados.
// Os cabeçalhos daqui são o contrato com o normalizador: qualquer mudança
// precisa continuar casando com as listas de palavras-chave.
func BuildTemplate(t entities.TrainingType) (*excelize.File, error) {
	if t == entities.TrainingRefresher {
		return buildRefresherTemplate()
	}
	return buildInitialTemplate()
}

func buildInitialTemplate() (*excelize.File, error) {
	f := excelize.NewFile()

	inst := "Instruções de Uso"
	f.SetSheetName("Sheet1", inst)
	instructions := [][]interface{}{
		{"GUIA DE PREENCHIMENTO - FORMAÇÃO INICIAL (ONBOARDING)"},
		{""},
		{"OBJETIVO:"},
		{"Acompanhar a curva de aprendizado, engajamento e assiduidade dos novos colaboradores durante os primeiros 21 dias."},
		{""},
		{"REGRAS DE VALIDAÇÃO:"},
		{"1. Status", "Preencha com: 'Ativo', 'Desistente' ou 'Demitido'."},
		{"2. Presença", "Para cada dia (1 a 21), informe: 'Presente', 'Falta', 'Atestado' ou deixe vazio (futuro)."},
		{"3. Avaliações", "Notas de provas teóricas ou práticas (0 a 10). A média esperada é 8.0."},
		{"4. Participação", "Avaliação qualitativa do instrutor: 'Alta', 'Média' ou 'Baixa'."},
	}
	writeSheetRows(f, inst, instructions)
	f.SetColWidth(inst, "A", "A", 30)
	f.SetColWidth(inst, "B", "B", 80)
	styleTitle(f, inst, brandInitial)

	data := "Dados da Turma"
	f.NewSheet(data)
	headers := []interface{}{
		"Nome Completo", "Instrutor", "Status Atual",
		"Nível Participação", "Observações Comportamentais",
		"Nota Av 1", "Nota Av 2", "Nota Av 3", "Nota Av 4", "Nota Av 5",
	}
	for n := 1; n <= maxTrainingDays; n++ {
		headers = append(headers, fmt.Sprintf("Dia %d", n))
	}
	example := []interface{}{
		"João Silva", "Ana Oliveira", "Ativo",
		"Alta", "Perfil proativo, boa curva de aprendizado e ajuda os colegas.",
		8.5, 9.0, 7.5, "", "",
		"Presente", "Presente", "Falta", "Presente", "Presente",
	}
	writeSheetRows(f, data, [][]interface{}{headers, example})
	f.SetColWidth(data, "A", "A", 35)
	f.SetColWidth(data, "B", "D", 20)
	f.SetColWidth(data, "E", "E", 50)
	styleHeader(f, data, len(headers), brandInitial)
	return f, nil
}

func buildRefresherTemplate() (*excelize.File, error) {
	f := excelize.NewFile()

	inst := "Instruções de Uso"
	f.SetSheetName("Sheet1", inst)
	instructions := [][]interface{}{
		{"GUIA DE PREENCHIMENTO - RECICLAGEM OPERACIONAL"},
		{""},
		{"OBJETIVO:"},
		{"Esta planilha alimenta a Inteligência Artificial para mensurar o ROI (Retorno sobre Investimento) do treinamento."},
		{"Preencha os dados com atenção para garantir a precisão da análise."},
		{""},
		{"DICIONÁRIO DE DADOS:"},
		{"1. Matrícula/ID", "Identificador único do colaborador no sistema de RH."},
		{"2. Indicador", "Nome da métrica operacional impactada (Ex: TMA, NPS, Conversão, Qualidade)."},
		{"3. Meta", "O objetivo numérico estipulado para aquele indicador."},
		{"4. Pré-Reciclagem", "Resultado médio do operador ANTES do treinamento."},
		{"5. Avaliação (Prova)", "Nota obtida na prova de conhecimento aplicada no treinamento (0 a 10)."},
		{"6. Pós-Reciclagem", "Resultado médio do operador APÓS o treinamento."},
		{""},
		{"DICA IMPORTANTE:"},
		{"Se um operador possui múltiplos indicadores (ex: TMA e Qualidade), insira duas linhas para o mesmo operador,"},
		{"alterando apenas a coluna 'Indicador' e seus respectivos valores."},
	}
	writeSheetRows(f, inst, instructions)
	f.SetColWidth(inst, "A", "A", 30)
	f.SetColWidth(inst, "B", "B", 80)
	styleTitle(f, inst, brandRefresher)

	data := "Dados para Importação"
	f.NewSheet(data)
	headers := []interface{}{
		"Matrícula", "Nome do Operador", "Supervisor", "Data",
		"Tema do Treinamento", "Instrutor",
		"Indicador (KPI)", "Meta",
		"Resultado Pré", "Nota Prova (0-10)", "Resultado Pós", "Observações do Instrutor",
	}
	today := time.Now().Format("02/01/2006")
	rows := [][]interface{}{
		headers,
		{"102030", "Carlos Lima", "Coord. Roberto", today, "Técnicas de Atendimento", "Instrutor Silva",
			"TMA (seg)", 180, 240, 9.0, 190, "Melhorou a agilidade na navegação do sistema."},
		{"102030", "Carlos Lima", "Coord. Roberto", today, "Técnicas de Atendimento", "Instrutor Silva",
			"NPS", 75, 60, 9.0, 80, "Demonstrou maior empatia nas simulações."},
	}
	writeSheetRows(f, data, rows)
	f.SetColWidth(data, "A", "A", 15)
	f.SetColWidth(data, "B", "B", 30)
	f.SetColWidth(data, "C", "G", 20)
	f.SetColWidth(data, "L", "L", 50)
	styleHeader(f, data, len(headers), brandRefresher)
	return f, nil
}

func writeSheetRows(f *excelize.File, sheet string, rows [][]interface{}) {
	for i := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		f.SetSheetRow(sheet, cell, &rows[i])
	}
}

func styleHeader(f *excelize.File, sheet string, cols int, color string) {
	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: 12},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return
	}
	end, _ := excelize.CoordinatesToCellName(cols, 1)
	f.SetCellStyle(sheet, "A1", end, style)
}

func styleTitle(f *excelize.File, sheet, color string) {
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: color, Size: 18},
	})
	if err != nil {
		return
	}
	f.SetCellStyle(sheet, "A1", "A1", style)
}
