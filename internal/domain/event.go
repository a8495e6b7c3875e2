package domain

import "time"

// FormsGenerated announces that both forms of a municipality were written.
type FormsGenerated struct {
	Mun         string    `json:"mun"`
	Display     string    `json:"display"`
	Files       []string  `json:"files"`
	Deposits    int       `json:"deposits"`
	Works       int       `json:"works"`
	GeneratedAt time.Time `json:"generated_at"`
}
