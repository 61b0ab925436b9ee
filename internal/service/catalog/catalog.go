package catalog

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"furniture-production/internal/service/calculation"
	"furniture-production/internal/storage"
	"furniture-production/internal/validator"
)

type CatalogStorage interface {
	ListProducts(ctx context.Context) ([]storage.Product, error)
	GetProduct(ctx context.Context, id int64) (*storage.Product, error)
	CreateProduct(ctx context.Context, in storage.ProductInput) (*storage.Product, error)
	UpdateProduct(ctx context.Context, id int64, in storage.ProductInput) (*storage.Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	ProductCoefficients(ctx context.Context, productID int64) ([]float64, error)
	AllCoefficients(ctx context.Context) (map[int64][]float64, error)

	ListWorkshopsForProduct(ctx context.Context, productID int64) ([]storage.ProductWorkshopDetail, error)
	ListProductWorkshops(ctx context.Context) ([]storage.ProductWorkshop, error)
	ListProductWorkshopsByProduct(ctx context.Context, productID int64) ([]storage.ProductWorkshop, error)

	ListProductTypes(ctx context.Context) ([]storage.ProductType, error)
	ListMaterials(ctx context.Context) ([]storage.Material, error)
	ListWorkshops(ctx context.Context) ([]storage.Workshop, error)
}

type Service struct {
	storage CatalogStorage
}

func NewService(storage CatalogStorage) *Service {
	return &Service{storage: storage}
}

// ListProducts returns every product with its production time.
func (s *Service) ListProducts(ctx context.Context) ([]storage.ProductWithTime, error) {
	const op = "service.catalog.ListProducts"

	var (
		products []storage.Product
		coefs    map[int64][]float64
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.storage.ListProducts(gCtx)
		if err != nil {
			return fmt.Errorf("products: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		coefs, err = s.storage.AllCoefficients(gCtx)
		if err != nil {
			return fmt.Errorf("coefficients: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]storage.ProductWithTime, 0, len(products))
	for _, p := range products {
		out = append(out, storage.ProductWithTime{
			Product:             p,
			TotalProductionTime: calculation.TotalTime(coefs[p.ID]),
		})
	}

	return out, nil
}

func (s *Service) CreateProduct(ctx context.Context, in storage.ProductInput) (*storage.ProductWithTime, error) {
	const op = "service.catalog.CreateProduct"

	in = normalize(in)
	if err := validator.Validate(in); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	p, err := s.storage.CreateProduct(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.withTime(ctx, op, p)
}

func (s *Service) UpdateProduct(ctx context.Context, id int64, in storage.ProductInput) (*storage.ProductWithTime, error) {
	const op = "service.catalog.UpdateProduct"

	in = normalize(in)
	if err := validator.Validate(in); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	p, err := s.storage.UpdateProduct(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.withTime(ctx, op, p)
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	const op = "service.catalog.DeleteProduct"

	if err := s.storage.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Service) ProductionTime(ctx context.Context, id int64) (*storage.ProductionTime, error) {
	const op = "service.catalog.ProductionTime"

	p, err := s.storage.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	pt, err := s.withTime(ctx, op, p)
	if err != nil {
		return nil, err
	}

	return &storage.ProductionTime{ProductID: pt.ID, TotalProductionTime: pt.TotalProductionTime}, nil
}

func (s *Service) ListWorkshopsForProduct(ctx context.Context, id int64) ([]storage.ProductWorkshopDetail, error) {
	const op = "service.catalog.ListWorkshopsForProduct"

	list, err := s.storage.ListWorkshopsForProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return list, nil
}

func (s *Service) ListProductWorkshops(ctx context.Context) ([]storage.ProductWorkshop, error) {
	const op = "service.catalog.ListProductWorkshops"

	list, err := s.storage.ListProductWorkshops(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return list, nil
}

func (s *Service) ListProductWorkshopsByProduct(ctx context.Context, id int64) ([]storage.ProductWorkshop, error) {
	const op = "service.catalog.ListProductWorkshopsByProduct"

	list, err := s.storage.ListProductWorkshopsByProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return list, nil
}

func (s *Service) withTime(ctx context.Context, op string, p *storage.Product) (*storage.ProductWithTime, error) {
	coefs, err := s.storage.ProductCoefficients(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &storage.ProductWithTime{Product: *p, TotalProductionTime: calculation.TotalTime(coefs)}, nil
}

// normalize trims names and turns blank dictionary references into "no reference".
func normalize(in storage.ProductInput) storage.ProductInput {
	in.Name = strings.TrimSpace(in.Name)
	in.ProductTypeName = trimRef(in.ProductTypeName)
	in.MainMaterialName = trimRef(in.MainMaterialName)

	if in.Workshops != nil {
		ws := make([]storage.WorkshopAssignment, len(in.Workshops))
		for i, w := range in.Workshops {
			ws[i] = storage.WorkshopAssignment{
				WorkshopName: strings.TrimSpace(w.WorkshopName),
				Coefficient:  w.Coefficient,
			}
		}
		in.Workshops = ws
	}

	return in
}

func trimRef(ref *string) *string {
	if ref == nil {
		return nil
	}
	v := strings.TrimSpace(*ref)
	if v == "" {
		return nil
	}
	return &v
}
