package aggregating

import (
	"fmt"
	"time"
)

// EmptyRangeError indica um intervalo de datas invertido vindo do chamador.
// É propagado (bug de UI/chamador), diferente dos erros de linha que o
// normalizador absorve.
type EmptyRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *EmptyRangeError) Error() string {
	return fmt.Sprintf("intervalo de datas vazio: início %s depois do fim %s",
		e.Start.Format(time.DateOnly), e.End.Format(time.DateOnly))
}
