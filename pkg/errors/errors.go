package errors

import "fmt"

var (
	// Ingestão de planilhas
	ErrFileRead   = fmt.Errorf("erro ao processar arquivo")
	ErrEmptySheet = fmt.Errorf("a planilha está vazia")

	// Serviço de narrativa (IA)
	ErrNarrativeEmpty      = fmt.Errorf("resposta vazia da IA")
	ErrNarrativeRateLimit  = fmt.Errorf("limite de requisições atingido, aguarde alguns instantes")
	ErrNarrativePermission = fmt.Errorf("erro de permissão (403), verifique a chave de acesso")
	ErrNarrativeSafety     = fmt.Errorf("conteúdo bloqueado por políticas de segurança")
	ErrNarrativeGeneric    = fmt.Errorf("erro ao conectar com a IA")

	// Sessão
	ErrSessionNotFound = fmt.Errorf("sessão não encontrada")

	// Gerais
	ErrNotFound   = fmt.Errorf("registro não encontrado")
	ErrBadRequest = fmt.Errorf("requisição inválida")
)

type HttpError struct {
	Code    int
	Message string
	Err     error
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, details interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Details: details}
}
