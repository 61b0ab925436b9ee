package save

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"furniture-production/http-server/httperr"
	"furniture-production/internal/storage"
)

type ProductCreator interface {
	CreateProduct(ctx context.Context, in storage.ProductInput) (*storage.ProductWithTime, error)
}

func SaveProduct(log *slog.Logger, creator ProductCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.products.SaveProduct"

		var req storage.ProductInput
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			http.Error(w, httperr.MsgInvalidJSON, http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		p, err := creator.CreateProduct(ctx, req)
		if err != nil {
			httperr.Write(w, log, op, err)
			return
		}

		log.Info("product created", slog.String("op", op), slog.Int64("product_id", p.ID))

		render.JSON(w, r, p)
	}
}
