package domain

import (
	"encoding/json"
	"fmt"
)

// Deposit is one water deposit row as rendered into the water form.
type Deposit struct {
	Nombre   string `json:"nombre"`
	Limpieza string `json:"limpieza"`
}

// WorkCondition tags which eligibility rule selected a works record.
type WorkCondition int

const (
	// CondUnfinished matches projects neither finished nor cancelled.
	CondUnfinished WorkCondition = 1
	// CondFinished matches finished projects with equipment still pending.
	CondFinished WorkCondition = 2
)

// Work is one public works row as rendered into the works form.
type Work struct {
	Nombre   string        `json:"nombre"`
	PlanObra *string       `json:"plan_obra"`
	Cond     WorkCondition `json:"cond"`
}

// EncodeJSON serializes v compactly. Non-ASCII runes are kept verbatim while
// <, > and & become \u003c, \u003e and \u0026, so the result can be placed
// unescaped inside a script block without closing it.
func EncodeJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode json: %w", err)
	}
	return string(b), nil
}
