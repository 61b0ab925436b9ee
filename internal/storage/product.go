package storage

type Product struct {
	ID               int64   `json:"product_id"`
	Name             string  `json:"product_name"`
	Article          int64   `json:"article"`
	MinPartnerCost   float64 `json:"min_partner_cost"`
	ProductTypeName  *string `json:"product_type_name"`
	MainMaterialName *string `json:"main_material_name"`
}

// ProductInput carries every mutable product field.
// Workshops == nil leaves existing associations untouched on update.
type ProductInput struct {
	Name             string               `json:"product_name" validate:"required"`
	Article          int64                `json:"article" validate:"gte=0"`
	MinPartnerCost   float64              `json:"min_partner_cost" validate:"gte=0"`
	ProductTypeName  *string              `json:"product_type_name,omitempty"`
	MainMaterialName *string              `json:"main_material_name,omitempty"`
	Workshops        []WorkshopAssignment `json:"workshops,omitempty" validate:"omitempty,dive"`
}

type WorkshopAssignment struct {
	WorkshopName string  `json:"workshop_name" validate:"required"`
	Coefficient  float64 `json:"coefficient" validate:"gte=0"`
}

// ProductWithTime is a product with its production time computed on read.
type ProductWithTime struct {
	Product
	TotalProductionTime int `json:"total_production_time"`
}

type ProductionTime struct {
	ProductID           int64 `json:"product_id"`
	TotalProductionTime int   `json:"total_production_time"`
}
