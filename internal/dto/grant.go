package dto

// GrantFilter narrows the grant catalog. Zero values match everything.
type GrantFilter struct {
	Search    string
	Category  string
	MinAmount float64
	MaxAmount float64
}

// Overview is the landing view combining both dashboard modules.
type Overview struct {
	Fcra         FcraSummary      `json:"fcra"`
	Applications ApplicationStats `json:"applications"`
	Degraded     bool             `json:"degraded"`
}
