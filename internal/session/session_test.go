package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LaercioLira/analise-inteligente/internal/entities"
	"github.com/LaercioLira/analise-inteligente/internal/narrative"
	apperrors "github.com/LaercioLira/analise-inteligente/pkg/errors"
)

func sampleDataset() *entities.Dataset {
	return &entities.Dataset{
		Type: entities.TrainingInitial,
		Initial: []entities.InitialRecord{
			{Name: "Ana Souza", Grade: 8.0, Status: entities.StatusActive},
		},
	}
}

func TestNewSessionStartsAtUpload(t *testing.T) {
	s := New("abc")
	assert.Equal(t, StateUpload, s.State())
	assert.Equal(t, entities.NewFilterState(), s.Filters())
	assert.Nil(t, s.Dataset())
}

func TestTransitionTable(t *testing.T) {
	s := New("abc")

	err := s.Transition(StateViewing)
	require.Error(t, err, "upload -> viewing deve ser rejeitado")

	var invalid *InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, StateUpload, invalid.From)
	assert.Equal(t, StateViewing, invalid.To)

	require.NoError(t, s.Transition(StateSelectingType))
	require.NoError(t, s.Transition(StateSelectingStatus))
	require.Error(t, s.Transition(StateSelectingType), "voltar de status para tipo não é permitido")
}

func TestAnalysisLifecycle(t *testing.T) {
	s := New("abc")
	require.NoError(t, s.Transition(StateSelectingType))

	token, err := s.BeginAnalysis(sampleDataset())
	require.NoError(t, err)
	assert.Equal(t, StateAnalyzing, s.State())
	assert.NotNil(t, s.Dataset())

	ok := s.ApplyAnalysis(token, &narrative.TrainingAnalysis{Summary: "ok"})
	assert.True(t, ok)
	assert.Equal(t, StateViewing, s.State())
	assert.Equal(t, "ok", s.Snapshot().Analysis.Summary)
}

func TestStaleAnalysisIsDiscarded(t *testing.T) {
	s := New("abc")
	require.NoError(t, s.Transition(StateSelectingType))

	first, err := s.BeginAnalysis(sampleDataset())
	require.NoError(t, err)

	// Um segundo upload começa antes do primeiro terminar.
	second, err := s.BeginAnalysis(sampleDataset())
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	assert.False(t, s.ApplyAnalysis(first, &narrative.TrainingAnalysis{Summary: "velha"}))
	assert.Nil(t, s.Snapshot().Analysis)

	assert.True(t, s.ApplyAnalysis(second, &narrative.TrainingAnalysis{Summary: "nova"}))
	assert.Equal(t, "nova", s.Snapshot().Analysis.Summary)
}

func TestFailAnalysisReturnsToUpload(t *testing.T) {
	s := New("abc")
	require.NoError(t, s.Transition(StateSelectingType))

	token, err := s.BeginAnalysis(sampleDataset())
	require.NoError(t, err)

	assert.True(t, s.FailAnalysis(token))
	assert.Equal(t, StateUpload, s.State())
	assert.Nil(t, s.Dataset())

	// Falha obsoleta não desfaz um ciclo mais novo.
	require.NoError(t, s.Transition(StateSelectingType))
	newer, err := s.BeginAnalysis(sampleDataset())
	require.NoError(t, err)
	assert.False(t, s.FailAnalysis(token))
	assert.Equal(t, StateAnalyzing, s.State())
	assert.True(t, s.ApplyAnalysis(newer, &narrative.TrainingAnalysis{}))
}

func TestBeginAnalysisResetsFilters(t *testing.T) {
	s := New("abc")
	require.NoError(t, s.Transition(StateSelectingType))
	token, err := s.BeginAnalysis(sampleDataset())
	require.NoError(t, err)
	require.True(t, s.ApplyAnalysis(token, &narrative.TrainingAnalysis{}))

	require.NoError(t, s.UpdateFilters(entities.FilterState{Student: "Ana Souza"}))
	assert.Equal(t, "Ana Souza", s.Filters().Student)
	assert.Equal(t, entities.FilterAll, s.Filters().Operator, "campos vazios normalizam para all")

	// Novo dataset publica com filtros zerados, nunca com os antigos.
	_, err = s.BeginAnalysis(sampleDataset())
	require.NoError(t, err)
	assert.Equal(t, entities.NewFilterState(), s.Filters())
}

func TestUpdateFiltersRequiresViewing(t *testing.T) {
	s := New("abc")
	require.Error(t, s.UpdateFilters(entities.FilterState{Student: "Ana Souza"}))
}

func TestResetInvalidatesInFlightAnalysis(t *testing.T) {
	s := New("abc")
	require.NoError(t, s.Transition(StateSelectingType))
	token, err := s.BeginAnalysis(sampleDataset())
	require.NoError(t, err)

	s.Reset()
	assert.Equal(t, StateUpload, s.State())
	assert.False(t, s.ApplyAnalysis(token, &narrative.TrainingAnalysis{}))
}

func TestStore(t *testing.T) {
	st := NewStore()

	s := st.Create()
	require.NotEmpty(t, s.ID)

	got, err := st.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, err = st.Get("desconhecida")
	require.ErrorIs(t, err, apperrors.ErrSessionNotFound)

	assert.Same(t, s, st.GetOrCreate(s.ID))
	other := st.GetOrCreate("")
	assert.NotEqual(t, s.ID, other.ID)

	st.Delete(s.ID)
	_, err = st.Get(s.ID)
	require.Error(t, err)
}
