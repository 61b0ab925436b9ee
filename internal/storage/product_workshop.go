package storage

type ProductWorkshop struct {
	ProductName  string  `json:"product_name"`
	WorkshopName string  `json:"workshop_name"`
	Coefficient  float64 `json:"coefficient"`
}

// ProductWorkshopDetail is a workshop as seen from one product.
type ProductWorkshopDetail struct {
	WorkshopName   string  `json:"workshop_name"`
	WorkshopType   string  `json:"workshop_type"`
	NumEmployees   int     `json:"num_employees"`
	TimeInWorkshop float64 `json:"time_in_workshop"`
}

// ImportBatch is a full provisioning load, written in one transaction.
type ImportBatch struct {
	ProductTypes     []ProductType
	Materials        []Material
	Workshops        []Workshop
	Products         []ProductInput
	ProductWorkshops []ProductWorkshop
}

type ImportResult struct {
	ProductTypes     int `json:"product_types"`
	Materials        int `json:"materials"`
	Workshops        int `json:"workshops"`
	Products         int `json:"products"`
	ProductWorkshops int `json:"product_workshops"`
}
