package catalog

import (
	"context"
	"fmt"

	"furniture-production/internal/storage"
)

type DictionaryKind string

const (
	KindProductType DictionaryKind = "product_type"
	KindMaterial    DictionaryKind = "material"
	KindWorkshop    DictionaryKind = "workshop"
)

// Dictionary lists one dictionary table. With full unset only names are returned;
// workshops have no summary form and are always full.
func (s *Service) Dictionary(ctx context.Context, kind DictionaryKind, full bool) (any, error) {
	const op = "service.catalog.Dictionary"

	switch kind {
	case KindProductType:
		types, err := s.storage.ListProductTypes(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if full {
			return types, nil
		}
		out := make([]storage.ProductTypeSummary, 0, len(types))
		for _, t := range types {
			out = append(out, storage.ProductTypeSummary{Name: t.Name})
		}
		return out, nil

	case KindMaterial:
		materials, err := s.storage.ListMaterials(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if full {
			return materials, nil
		}
		out := make([]storage.MaterialSummary, 0, len(materials))
		for _, m := range materials {
			out = append(out, storage.MaterialSummary{Name: m.Name})
		}
		return out, nil

	case KindWorkshop:
		workshops, err := s.storage.ListWorkshops(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return workshops, nil
	}

	return nil, fmt.Errorf("%s: unknown dictionary %q", op, kind)
}
