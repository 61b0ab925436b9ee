package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"furniture-production/http-server/httperr"
	"furniture-production/internal/service/catalog"
)

type DictionaryProvider interface {
	Dictionary(ctx context.Context, kind catalog.DictionaryKind, full bool) (any, error)
}

// GetDictionary serves one dictionary table, names only unless full is set.
func GetDictionary(log *slog.Logger, provider DictionaryProvider, kind catalog.DictionaryKind, full bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.dictionaries.GetDictionary"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := provider.Dictionary(ctx, kind, full)
		if err != nil {
			httperr.Write(w, log.With(slog.String("dictionary", string(kind))), op, err)
			return
		}

		render.JSON(w, r, list)
	}
}
