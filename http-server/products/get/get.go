package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"furniture-production/http-server/httperr"
	"furniture-production/internal/storage"
)

type ProductsProvider interface {
	ListProducts(ctx context.Context) ([]storage.ProductWithTime, error)
	ListWorkshopsForProduct(ctx context.Context, id int64) ([]storage.ProductWorkshopDetail, error)
	ProductionTime(ctx context.Context, id int64) (*storage.ProductionTime, error)
}

func GetProducts(log *slog.Logger, products ProductsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.products.GetProducts"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := products.ListProducts(ctx)
		if err != nil {
			httperr.Write(w, log, op, err)
			return
		}

		if list == nil {
			list = []storage.ProductWithTime{}
		}

		render.JSON(w, r, list)
	}
}

// GetProductWorkshops lists the workshops a product passes through.
func GetProductWorkshops(log *slog.Logger, products ProductsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.products.GetProductWorkshops"

		id, ok := httperr.ID(r)
		if !ok {
			http.Error(w, "invalid product id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := products.ListWorkshopsForProduct(ctx, id)
		if err != nil {
			httperr.Write(w, log, op, err)
			return
		}

		if list == nil {
			list = []storage.ProductWorkshopDetail{}
		}

		render.JSON(w, r, list)
	}
}

func GetProductionTime(log *slog.Logger, products ProductsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.products.GetProductionTime"

		id, ok := httperr.ID(r)
		if !ok {
			http.Error(w, "invalid product id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		pt, err := products.ProductionTime(ctx, id)
		if err != nil {
			httperr.Write(w, log, op, err)
			return
		}

		render.JSON(w, r, pt)
	}
}
