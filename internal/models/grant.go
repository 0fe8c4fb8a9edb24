package models

// Grant is a funding opportunity from the static catalog.
type Grant struct {
	ID           string   `yaml:"id" json:"id"`
	Title        string   `yaml:"title" json:"title"`
	Amount       float64  `yaml:"amount" json:"amount"`
	Deadline     string   `yaml:"deadline" json:"deadline"` // YYYY-MM-DD
	Category     string   `yaml:"category" json:"category"`
	Status       string   `yaml:"status" json:"status"` // "active", "closed", "upcoming"
	Description  string   `yaml:"description" json:"description"`
	Eligibility  []string `yaml:"eligibility" json:"eligibility,omitempty"`
	Requirements []string `yaml:"requirements" json:"requirements,omitempty"`
	Website      string   `yaml:"website" json:"website,omitempty"`
}
