package domain

type Medication struct {
	ID                   string  `db:"id" json:"id"`
	Name                 string  `db:"name" json:"name"`
	Description          string  `db:"description" json:"description"`
	Strength             string  `db:"strength" json:"strength"`
	Dosage               string  `db:"dosage" json:"dosage"`
	Manufacturer         string  `db:"manufacturer" json:"manufacturer"`
	Category             string  `db:"category" json:"category"`
	Price                float64 `db:"price" json:"price"`
	IsOTC                bool    `db:"is_otc" json:"is_otc"`
	RequiresPrescription bool    `db:"requires_prescription" json:"requires_prescription"`
	ImageURL             *string `db:"image_url" json:"image_url,omitempty"`
	CreatedAt            string  `db:"created_at" json:"created_at"`
}
