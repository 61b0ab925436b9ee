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

type ProductWorkshopsProvider interface {
	ListProductWorkshops(ctx context.Context) ([]storage.ProductWorkshop, error)
	ListProductWorkshopsByProduct(ctx context.Context, id int64) ([]storage.ProductWorkshop, error)
}

func GetAllProductWorkshops(log *slog.Logger, provider ProductWorkshopsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.productworkshops.GetAllProductWorkshops"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := provider.ListProductWorkshops(ctx)
		if err != nil {
			httperr.Write(w, log, op, err)
			return
		}

		render.JSON(w, r, list)
	}
}

func GetProductWorkshopsByProduct(log *slog.Logger, provider ProductWorkshopsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.productworkshops.GetProductWorkshopsByProduct"

		id, ok := httperr.ID(r)
		if !ok {
			http.Error(w, "invalid product id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := provider.ListProductWorkshopsByProduct(ctx, id)
		if err != nil {
			httperr.Write(w, log, op, err)
			return
		}

		render.JSON(w, r, list)
	}
}
