package narrative

import (
	"encoding/json"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"

	apperrors "github.com/LaercioLira/analise-inteligente/pkg/errors"
)

// StripCodeFences remove o embrulho de cerca de código Markdown que os modelos
// costumam colocar em volta do JSON, mesmo com MIME type application/json.
func StripCodeFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

// DecodeAnalysis transforma o texto cru do modelo em TrainingAnalysis.
// Corpo vazio é falha terminal da requisição (sem retry nesta camada); JSON
// malformado passa por uma tentativa de reparo antes de desistir.
func DecodeAnalysis(text string) (*TrainingAnalysis, error) {
	clean := StripCodeFences(text)
	if clean == "" {
		return nil, apperrors.ErrNarrativeEmpty
	}

	var analysis TrainingAnalysis
	if err := json.Unmarshal([]byte(clean), &analysis); err == nil {
		return &analysis, nil
	}

	repaired, err := jsonrepair.RepairJSON(clean)
	if err != nil {
		return nil, apperrors.NewHttpError(502, apperrors.ErrNarrativeGeneric.Error(), err, nil)
	}
	if err := json.Unmarshal([]byte(repaired), &analysis); err != nil {
		return nil, apperrors.NewHttpError(502, apperrors.ErrNarrativeGeneric.Error(), err, nil)
	}
	return &analysis, nil
}
