package core

import (
	"encoding/json"
	"fmt"
	"time"
)

// Export is the persisted form of a logger's history.
type Export struct {
	ExportTime time.Time `json:"exportTime"`
	Namespace  string    `json:"namespace,omitempty"`
	Logs       []Entry   `json:"logs"`
}

// ParseExport decodes an export record produced by json.Marshal(Export).
func ParseExport(data []byte) (Export, error) {
	var exp Export
	if err := json.Unmarshal(data, &exp); err != nil {
		return Export{}, fmt.Errorf("parse export: %w", err)
	}
	if exp.Logs == nil {
		exp.Logs = []Entry{}
	}
	return exp, nil
}
