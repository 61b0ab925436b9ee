package calculation

import (
	"context"
	"errors"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"furniture-production/internal/storage"
	"furniture-production/internal/validator"
)

// UnknownReference is returned by RequiredRawMaterial when the product type
// or the material is not in the dictionaries.
const UnknownReference = -1

// maxRounded is float64(math.MaxInt) rounded up; rounded values must stay below it.
const maxRounded = float64(math.MaxInt)

// round is the single rounding policy for derived values:
// negatives clamp to zero, halves round away from zero.
// ok is false when the result is NaN or does not fit in an int.
func round(v float64) (n int, ok bool) {
	r := math.Round(math.Max(v, 0))
	if !(r < maxRounded) {
		return 0, false
	}
	return int(r), true
}

// TotalTime is the production time of a product in whole hours,
// the rounded sum of the hours it spends in every workshop. No workshops gives 0.
// A sum beyond the int range saturates at math.MaxInt.
func TotalTime(coefficients []float64) int {
	var sum float64
	for _, c := range coefficients {
		sum += c
	}

	n, ok := round(sum)
	if !ok {
		return math.MaxInt
	}
	return n
}

// RawMaterial computes the raw material needed for quantity units with dimensions param1 x param2.
// Results that do not fit in an int are rejected with validator.ErrInvalid.
func RawMaterial(typeCoefficient, lossPercentage float64, quantity int, param1, param2 float64) (int, error) {
	basePerUnit := param1 * param2 * typeCoefficient
	totalBase := basePerUnit * float64(quantity)
	lossFactor := 1 + lossPercentage/100

	n, ok := round(totalBase * lossFactor)
	if !ok {
		return 0, validator.Invalid("required raw material is out of range")
	}
	return n, nil
}

type RawMaterialRequest struct {
	ProductTypeName string  `json:"product_type_name" validate:"required"`
	MaterialName    string  `json:"material_name" validate:"required"`
	Quantity        int     `json:"quantity" validate:"gte=0"`
	Param1          float64 `json:"param1" validate:"gt=0"`
	Param2          float64 `json:"param2" validate:"gt=0"`
}

type RawMaterialResponse struct {
	RequiredRawMaterial int `json:"required_raw_material"`
}

type DictionaryReader interface {
	GetProductType(ctx context.Context, name string) (*storage.ProductType, error)
	GetMaterial(ctx context.Context, name string) (*storage.Material, error)
}

type RawMaterialService struct {
	storage DictionaryReader
}

func NewRawMaterialService(storage DictionaryReader) *RawMaterialService {
	return &RawMaterialService{storage: storage}
}

// RequiredRawMaterial validates req, looks up both coefficients and returns the
// required quantity, or UnknownReference if either name is missing.
func (s *RawMaterialService) RequiredRawMaterial(ctx context.Context, req RawMaterialRequest) (int, error) {
	const op = "service.calculation.RequiredRawMaterial"

	if err := validator.Validate(req); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var (
		productType *storage.ProductType
		material    *storage.Material
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		productType, err = s.storage.GetProductType(gCtx, req.ProductTypeName)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("product type: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		material, err = s.storage.GetMaterial(gCtx, req.MaterialName)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("material: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if productType == nil || material == nil {
		return UnknownReference, nil
	}

	amount, err := RawMaterial(productType.Coefficient, material.LossPercentage, req.Quantity, req.Param1, req.Param2)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return amount, nil
}
