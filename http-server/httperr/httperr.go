package httperr

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"furniture-production/internal/storage"
	"furniture-production/internal/validator"
)

const MsgInvalidJSON = "Некорректный JSON"

// Status maps domain errors onto HTTP status codes.
func Status(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrDuplicateKey),
		errors.Is(err, storage.ErrUnknownReference),
		errors.Is(err, validator.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrReferenced):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func message(err error, status int) string {
	switch {
	case status == http.StatusInternalServerError:
		return "Internal error"
	case errors.Is(err, storage.ErrNotFound):
		return "Product not found"
	case errors.Is(err, storage.ErrDuplicateKey):
		return "Product with this article or name already exists"
	case errors.Is(err, storage.ErrUnknownReference):
		return "Unknown product type, material or workshop"
	case errors.Is(err, storage.ErrReferenced):
		return "Record is still referenced"
	}

	var verr *validator.Error
	if errors.As(err, &verr) {
		return verr.Error()
	}
	return validator.ErrInvalid.Error()
}

// Write logs err and answers with the mapped status. Client errors are logged as warnings.
func Write(w http.ResponseWriter, log *slog.Logger, op string, err error) {
	status := Status(err)

	l := log.With(slog.String("op", op), slog.String("error", err.Error()))
	if status == http.StatusInternalServerError {
		l.Error("request failed")
	} else {
		l.Warn("request rejected", slog.Int("status", status))
	}

	http.Error(w, message(err, status), status)
}

// ID parses the {id} URL parameter. Any integer is accepted; ids that match
// no row are left to the store to report as not found.
func ID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
