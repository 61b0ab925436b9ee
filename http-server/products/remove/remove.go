package remove

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"furniture-production/http-server/httperr"
)

type ProductDeleter interface {
	DeleteProduct(ctx context.Context, id int64) error
}

func DeleteProduct(log *slog.Logger, deleter ProductDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.products.DeleteProduct"

		id, ok := httperr.ID(r)
		if !ok {
			http.Error(w, "invalid product id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := deleter.DeleteProduct(ctx, id); err != nil {
			httperr.Write(w, log, op, err)
			return
		}

		log.Info("product deleted", slog.String("op", op), slog.Int64("product_id", id))

		render.JSON(w, r, map[string]string{"detail": "Product deleted"})
	}
}
