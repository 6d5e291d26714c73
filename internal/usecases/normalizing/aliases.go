package normalizing

// Campos canônicos produzidos pelo normalizador
const (
	FieldEventDate = "event_date"
	FieldCost      = "cost_amount"
	FieldEntityID  = "entity_id"
	FieldSource    = "source_name"
)

// As tabelas de alias concentram todas as variações de nome de coluna de cada
// planilha. As chaves já estão na forma normalizada (minúsculas, sem espaços);
// a comparação em tempo de execução aplica a mesma normalização às colunas.

// MolocoAliases mapeia as colunas da exportação primária (Moloco)
var MolocoAliases = map[string]string{
	"event_time": FieldEventDate,
	"event_date": FieldEventDate,
	"cost":       FieldCost,
	"costs":      FieldCost,
	"bayerid":    FieldEntityID,
}

// OtherSourcesAliases mapeia as colunas da exportação secundária multi-fonte
var OtherSourcesAliases = map[string]string{
	"event_date":     FieldEventDate,
	"event_time":     FieldEventDate,
	"costs":          FieldCost,
	"cost":           FieldCost,
	"traffic_source": FieldSource,
	"bayerid":        FieldEntityID,
}
