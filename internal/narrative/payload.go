package narrative

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/LaercioLira/analise-inteligente/internal/entities"
)

// Limites aplicados antes de enviar dados ao modelo.
const (
	maxObsChars     = 100
	maxPayloadChars = 30000
)

// simplifiedStudent é a projeção enviada ao modelo na análise de formação
// inicial: nomes de campo na língua de trabalho do prompt, observações
// truncadas.
type simplifiedStudent struct {
	Nome         string  `json:"Nome"`
	Nota         float64 `json:"Nota"`
	Faltas       int     `json:"Faltas"`
	Status       string  `json:"Status"`
	Participacao string  `json:"Participacao"`
	Obs          string  `json:"Obs"`
}

// operatorMetric é um KPI dentro do grupo de um operador.
type operatorMetric struct {
	Indicador     string  `json:"indicador"`
	Meta          float64 `json:"meta"`
	PreReciclagem float64 `json:"pre_reciclagem"`
	AvaliacaoSala float64 `json:"avaliacao_sala"`
	PosReciclagem float64 `json:"pos_reciclagem"`
	Obs           string  `json:"obs"`
}

type operatorGroup struct {
	Name    string           `json:"name"`
	Metrics []operatorMetric `json:"metrics"`
}

func simplifyInitial(recs []entities.InitialRecord) []simplifiedStudent {
	out := make([]simplifiedStudent, len(recs))
	for i, r := range recs {
		obs := "N/A"
		if r.Observations != "" {
			obs = truncate(r.Observations, maxObsChars)
		}
		out[i] = simplifiedStudent{
			Nome:         r.Name,
			Nota:         r.Grade,
			Faltas:       r.Absences,
			Status:       string(r.Status),
			Participacao: r.Participation,
			Obs:          obs,
		}
	}
	return out
}

// groupOperators consolida os KPIs por matrícula (ID), nunca por nome: nomes
// podem colidir, matrículas não.
func groupOperators(recs []entities.RefresherRecord) []operatorGroup {
	index := make(map[string]int)
	var groups []operatorGroup
	for _, r := range recs {
		i, ok := index[r.ID]
		if !ok {
			i = len(groups)
			index[r.ID] = i
			groups = append(groups, operatorGroup{Name: r.Name})
		}
		groups[i].Metrics = append(groups[i].Metrics, operatorMetric{
			Indicador:     r.Indicator,
			Meta:          r.Target,
			PreReciclagem: r.PreResult,
			AvaliacaoSala: r.Evaluation,
			PosReciclagem: r.PostResult,
			Obs:           r.Observations,
		})
	}
	return groups
}

func marshalCapped(v interface{}, limit int) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return truncate(string(b), limit)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

const initialSystemInstruction = `Você é um Analista de Treinamento Senior.
Gere um JSON estrito para dashboard.
REGRA DE NEGÓCIO CRÍTICA:
1. APROVAÇÃO: Média >= 8.0. (Notas 7.9 ou menos são consideradas REPROVAÇÃO/RISCO).
2. FALTAS: 3 faltas ou mais é considerado ALTO RISCO. (Máximo aceitável é 2).
Seja EXTREMAMENTE conciso.
Limite todas as listas a no máximo 5 itens (Top 5).
Não invente dados.`

func initialPrompt(recs []entities.InitialRecord, inProgress bool) string {
	contexto := "CONCLUÍDA"
	if inProgress {
		contexto = "EM ANDAMENTO"
	}
	return fmt.Sprintf(`CONTEXTO: Turma %s.

DADOS:
%s

OUTPUT JSON REQUERIDO:
- summary: Resumo executivo focado na meta de 8.0 (max 1 parágrafo).
- keyInsights: 3 Insights focados na CORRELAÇÃO entre FALTAS, PARTICIPAÇÃO e NOTAS.
- recommendations: Top 5 ações corretivas práticas para quem está abaixo de 8.0.
- profilingInsights: Top 5 observações de comportamento mais relevantes (analisando o campo Obs e Participação).
- individualInsights: Top 5 alunos críticos (nota < 8.0 ou faltas >= 3).
- performanceScore: 0-100 (Considerando a regra de 8.0).`,
		contexto, marshalCapped(simplifyInitial(recs), maxPayloadChars))
}

const refresherSystemInstruction = `Você é um Analista de Performance Operacional de Call Center.
Analise os resultados de uma RECICLAGEM TÉCNICA onde cada operador pode ter múltiplos indicadores (TMA, NPS, Qualidade, Conversão, etc.).

IMPORTANTE SOBRE INDICADORES:
- Indicadores de TEMPO (TMA, TME, Pausa) e ERROS (Rechamada, Reclamações, Churn) devem DIMINUIR. Uma porcentagem de evolução NEGATIVA nestes casos é POSITIVA/BOM.
- Indicadores de QUALIDADE (NPS, CSAT, Nota, Conversão) devem AUMENTAR.

DADOS DE ENTRADA:
- Lista de operadores agrupados.
- Cada operador tem uma lista de "metrics".
- "pre_reciclagem" e "pos_reciclagem" são RESULTADOS OPERACIONAIS.
- "meta" é o alvo operacional.
- "avaliacao_sala" é a nota do teste de conhecimento (0-10) aplicado durante a reciclagem.

OBJETIVO:
Avaliar se a Reciclagem (avaliada pela nota de sala) gerou impacto real nos indicadores operacionais.
Consolide a análise por operador se houver múltiplos indicadores.

Gere uma minuta de e-mail corporativo formal para os supervisores.`

func refresherPrompt(recs []entities.RefresherRecord) string {
	return fmt.Sprintf(`DADOS OPERACIONAIS DA RECICLAGEM (AGRUPADOS POR OPERADOR):
%s

OUTPUT JSON REQUERIDO:
- summary: Análise executiva sobre o impacto da reciclagem nos KPIs operacionais da turma.
- keyInsights: 3 insights de correlação (Ex: "Operadores com nota alta em sala reduziram o TMA em X%%").
- recommendations: 3 ações práticas de gestão baseadas nos desvios de meta.
- emailDraft: Minuta de e-mail formal aos supervisores e coordenadores reportando a eficácia operacional do treinamento.
- performanceScore: 0-100 (Score geral de sucesso da reciclagem baseado no atingimento de metas pós-treino).
- individualInsights: Top 3 destaques (positivos ou negativos). Cite o nome e o indicador específico.`,
		marshalCapped(groupOperators(recs), maxPayloadChars))
}

func studentFeedbackPrompt(r entities.InitialRecord) string {
	obs := r.Observations
	if obs == "" {
		obs = "Nenhuma observação registrada"
	}
	first := r.Name
	if i := strings.IndexByte(first, ' '); i > 0 {
		first = first[:i]
	}
	return fmt.Sprintf(`Gere um feedback estruturado e profissional para o aluno abaixo.
Use o método "Sanduíche" (Elogio sincero -> Ponto de atenção -> Motivação final).
Use Markdown para formatação.

DADOS DO ALUNO:
- Nome: %s
- Nota Atual: %.1f (Meta de Aprovação: 8.0)
- Faltas: %d (Limite: 3)
- Observações do Instrutor: %s
- Participação: %s

DIRETRIZES:
1. Se a nota for < 8.0, o tom deve ser de ALERTA e suporte técnico.
2. Se faltas >= 3, o tom deve ser de COBRANÇA sobre regras.
3. Se nota > 9.0, parabenize pela excelência.
4. Seja curto e direto (máximo 150 palavras).
5. Fale diretamente com o aluno ("Olá %s...").`,
		r.Name, r.Grade, r.Absences, obs, r.Participation, first)
}

func operatorFeedbackPrompt(r entities.RefresherRecord) string {
	obs := r.Observations
	if obs == "" {
		obs = "Sem observações"
	}
	// Pós igual a zero é tratado como "ainda não mensurado": o feedback deve
	// se apoiar só na prova teórica e no histórico.
	pos := "AINDA NÃO MENSURADO/DADOS INDISPONÍVEIS"
	if r.PostResult != 0 {
		pos = fmt.Sprintf("%g", r.PostResult)
	}
	return fmt.Sprintf(`Você é um Supervisor de Qualidade e Treinamento.
Gere um feedback estruturado para o operador de call center abaixo.

CONTEXTO DO OPERADOR:
- Nome: %s
- Indicador (KPI): %s
- Meta do KPI: %g
- Resultado PRÉ-Reciclagem: %g
- Nota da Prova Teórica (Sala): %.1f (Meta de sala: 9.0)
- Resultado PÓS-Reciclagem: %s
- Obs do Instrutor: %s

REGRA DE NEGÓCIO OBRIGATÓRIA (CENÁRIOS):

CENÁRIO 1: SEM RESULTADO PÓS (Pós = 0 ou Não Mensurado)
- O feedback DEVE focar EXCLUSIVAMENTE na nota da prova teórica e no histórico (Pré).
- Se a nota da prova for baixa (<9), cobre estudo. Se for alta, parabenize e peça para aplicar esse conhecimento.
- Motive-o para quando os resultados novos chegarem.

CENÁRIO 2: COM RESULTADO PÓS (Pós existe)
- O feedback DEVE focar na EVOLUÇÃO (Diferença entre Pré e Pós).
- Analise se ele atingiu a Meta no Pós.
- Conecte a nota da prova com o resultado.

ESTRUTURA DE RESPOSTA (Markdown):
1. **Diagnóstico**: Análise da situação atual conforme o cenário detectado acima.
2. **Plano de Ação**: 2 sugestões práticas (comportamentais ou técnicas) para o indicador %s.
3. **Conclusão**: Frase motivacional curta.

Tom: Profissional, Humano e Orientado a Resultados. Fale diretamente com o operador.
Máximo 150 palavras.`,
		r.Name, r.Indicator, r.Target, r.PreResult, r.Evaluation, pos, obs, r.Indicator)
}
