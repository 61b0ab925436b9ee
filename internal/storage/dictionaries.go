package storage

type ProductType struct {
	Name        string  `json:"product_type_name"`
	Coefficient float64 `json:"type_coefficient"`
}

type Material struct {
	Name           string  `json:"material_name"`
	LossPercentage float64 `json:"loss_percentage"`
}

type Workshop struct {
	Name         string `json:"workshop_name"`
	Type         string `json:"workshop_type"`
	NumEmployees int    `json:"num_employees"`
}

type ProductTypeSummary struct {
	Name string `json:"product_type_name"`
}

type MaterialSummary struct {
	Name string `json:"material_name"`
}
