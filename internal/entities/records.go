package entities

// TrainingType discrimina os dois formatos de planilha aceitos.
type TrainingType string

const (
	TrainingInitial   TrainingType = "initial"
	TrainingRefresher TrainingType = "refresher"
)

// StudentStatus é derivado por palavra-chave da célula de status.
type StudentStatus string

const (
	StatusActive    StudentStatus = "active"
	StatusDropped   StudentStatus = "dropped"
	StatusDismissed StudentStatus = "dismissed"
)

// InitialRecord representa um aluno de uma turma de formação inicial
// (onboarding, acompanhamento diário de até 21 dias).
type InitialRecord struct {
	Kind          TrainingType  `json:"kind"`
	Name          string        `json:"name"`
	Instructor    string        `json:"instructor"`
	Grade         float64       `json:"grade"`
	Absences      int           `json:"absences"`
	DaysFilled    int           `json:"daysFilled"`
	Status        StudentStatus `json:"status"`
	Participation string        `json:"participation"`
	Observations  string        `json:"observations"`
}

// RefresherRecord representa um par (operador, indicador) de uma reciclagem.
// Um operador com vários KPIs gera várias linhas com o mesmo ID (matrícula);
// agregações por pessoa devem agrupar pelo ID, nunca pelo nome.
type RefresherRecord struct {
	Kind         TrainingType `json:"kind"`
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Supervisor   string       `json:"supervisor"`
	Date         string       `json:"date"`
	Theme        string       `json:"theme"`
	Instructor   string       `json:"instructor"`
	Indicator    string       `json:"indicator"`
	Target       float64      `json:"target"`
	PreResult    float64      `json:"preResult"`
	Evaluation   float64      `json:"evaluation"`
	PostResult   float64      `json:"postResult"`
	Observations string       `json:"observations"`
}

// Dataset é a coleção canônica de uma sessão. Imutável após a ingestão.
type Dataset struct {
	ClassName  string            `json:"className"`
	Type       TrainingType      `json:"type"`
	Initial    []InitialRecord   `json:"initial,omitempty"`
	Refresher  []RefresherRecord `json:"refresher,omitempty"`
	InProgress bool              `json:"isInProgress"`
}

// Len devolve o total de registros independente do tipo.
func (d *Dataset) Len() int {
	if d.Type == TrainingInitial {
		return len(d.Initial)
	}
	return len(d.Refresher)
}
