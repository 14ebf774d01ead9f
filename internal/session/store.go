package session

import (
	"sync"

	"github.com/google/uuid"

	apperrors "github.com/LaercioLira/analise-inteligente/pkg/errors"
)

// Store mantém as sessões em memória. Sem persistência: reiniciar o processo
// descarta todas as sessões.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

func (st *Store) Create() *Session {
	s := New(uuid.New().String())
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	return s, nil
}

// GetOrCreate devolve a sessão existente ou cria uma nova quando o id é vazio
// ou desconhecido. O primeiro upload não exige handshake prévio.
func (st *Store) GetOrCreate(id string) *Session {
	if id != "" {
		if s, err := st.Get(id); err == nil {
			return s
		}
	}
	return st.Create()
}

func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}
