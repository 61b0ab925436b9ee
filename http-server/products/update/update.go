package update

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"furniture-production/http-server/httperr"
	"furniture-production/internal/storage"
)

type ProductUpdater interface {
	UpdateProduct(ctx context.Context, id int64, in storage.ProductInput) (*storage.ProductWithTime, error)
}

// UpdateProduct replaces a product's fields. Workshops are replaced only when the request carries them.
func UpdateProduct(log *slog.Logger, updater ProductUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.products.UpdateProduct"

		id, ok := httperr.ID(r)
		if !ok {
			http.Error(w, "invalid product id", http.StatusBadRequest)
			return
		}

		var req storage.ProductInput
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			http.Error(w, httperr.MsgInvalidJSON, http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		p, err := updater.UpdateProduct(ctx, id, req)
		if err != nil {
			httperr.Write(w, log, op, err)
			return
		}

		render.JSON(w, r, p)
	}
}
