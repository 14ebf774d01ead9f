package session

import "fmt"

// ViewState é o estado da máquina de telas do dashboard.
type ViewState string

const (
	StateUpload          ViewState = "upload"
	StateSelectingType   ViewState = "selecting_type"
	StateSelectingStatus ViewState = "selecting_status"
	StateAnalyzing       ViewState = "analyzing"
	StateViewing         ViewState = "viewing"
)

// transitions é a tabela explícita de transições permitidas. Qualquer salto
// fora dela é rejeitado, inclusive "pular" a seleção de status na formação
// inicial.
var transitions = map[ViewState][]ViewState{
	StateUpload:          {StateSelectingType},
	StateSelectingType:   {StateSelectingStatus, StateAnalyzing, StateUpload},
	StateSelectingStatus: {StateAnalyzing, StateUpload},
	StateAnalyzing:       {StateViewing, StateAnalyzing, StateUpload},
	StateViewing:         {StateAnalyzing, StateUpload},
}

func canTransition(from, to ViewState) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// InvalidTransitionError identifica a transição rejeitada para o log.
type InvalidTransitionError struct {
	From ViewState
	To   ViewState
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("transição de estado inválida: %s -> %s", e.From, e.To)
}
