package utils

import "time"

// ParseDate interpreta um parâmetro de data no formato ISO (AAAA-MM-DD).
// String vazia retorna a data zero sem erro.
func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}

// TruncateToDay descarta o horário, mantendo só a data de calendário em UTC
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
