package normalizing

import "fmt"

// NumericParseError indica uma célula de custo que não pôde ser interpretada
// como decimal não-negativo. A linha é descartada, nunca zerada, para não
// subestimar gasto silenciosamente.
type NumericParseError struct {
	Column string
	Value  string
}

func (e *NumericParseError) Error() string {
	return fmt.Sprintf("valor numérico inválido na coluna %q: %q", e.Column, e.Value)
}

// DateParseError indica uma célula de data fora de qualquer formato aceito
type DateParseError struct {
	Column string
	Value  string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("data inválida na coluna %q: %q", e.Column, e.Value)
}
