package session

import (
	"sync"

	"github.com/LaercioLira/analise-inteligente/internal/entities"
	"github.com/LaercioLira/analise-inteligente/internal/narrative"
)

// Session guarda o estado de uma sessão de análise: dataset normalizado,
// filtros ativos, última narrativa e a posição na máquina de telas.
//
// O token monotônico protege contra respostas fora de ordem: cada análise
// disparada captura um token novo e só publica o resultado se ainda for o
// token corrente. Uma análise antiga que termina depois de um novo upload é
// descartada em silêncio.
type Session struct {
	ID string

	mu       sync.Mutex
	state    ViewState
	dataset  *entities.Dataset
	filters  entities.FilterState
	analysis *narrative.TrainingAnalysis
	token    uint64
}

func New(id string) *Session {
	return &Session{
		ID:      id,
		state:   StateUpload,
		filters: entities.NewFilterState(),
	}
}

// Snapshot é a visão serializável da sessão em um instante.
type Snapshot struct {
	ID       string                      `json:"id"`
	State    ViewState                   `json:"state"`
	Dataset  *entities.Dataset           `json:"dataset,omitempty"`
	Filters  entities.FilterState        `json:"filters"`
	Analysis *narrative.TrainingAnalysis `json:"analysis,omitempty"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:       s.ID,
		State:    s.state,
		Dataset:  s.dataset,
		Filters:  s.filters,
		Analysis: s.analysis,
	}
}

// Transition avança a máquina de telas; transições fora da tabela são erro.
func (s *Session) Transition(to ViewState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !canTransition(s.state, to) {
		return &InvalidTransitionError{From: s.state, To: to}
	}
	s.state = to
	return nil
}

func (s *Session) State() ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// BeginAnalysis publica o dataset novo, zera filtros e narrativa anterior em
// uma única seção crítica e devolve o token que autoriza a publicação do
// resultado. Nunca deve ser possível observar dataset novo com filtro velho.
func (s *Session) BeginAnalysis(ds *entities.Dataset) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !canTransition(s.state, StateAnalyzing) {
		return 0, &InvalidTransitionError{From: s.state, To: StateAnalyzing}
	}
	s.state = StateAnalyzing
	s.dataset = ds
	s.filters = entities.NewFilterState()
	s.analysis = nil
	s.token++
	return s.token, nil
}

// ApplyAnalysis publica o resultado se o token ainda for o corrente. Retorna
// false quando a resposta chegou depois de um novo ciclo de análise.
func (s *Session) ApplyAnalysis(token uint64, analysis *narrative.TrainingAnalysis) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.token {
		return false
	}
	s.analysis = analysis
	s.state = StateViewing
	return true
}

// FailAnalysis desfaz o ciclo em caso de erro, devolvendo a sessão ao upload.
// Respostas de erro obsoletas também são descartadas.
func (s *Session) FailAnalysis(token uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.token {
		return false
	}
	s.dataset = nil
	s.analysis = nil
	s.state = StateUpload
	return true
}

// UpdateFilters substitui o estado de filtros. Só faz sentido com um dashboard
// visível.
func (s *Session) UpdateFilters(f entities.FilterState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateViewing {
		return &InvalidTransitionError{From: s.state, To: s.state}
	}
	s.filters = f.Normalize()
	return nil
}

// Dataset devolve o dataset corrente (pode ser nil antes do primeiro upload).
func (s *Session) Dataset() *entities.Dataset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dataset
}

func (s *Session) Filters() entities.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// Reset volta a sessão ao estado inicial, invalidando qualquer análise em voo.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateUpload
	s.dataset = nil
	s.analysis = nil
	s.filters = entities.NewFilterState()
	s.token++
}
