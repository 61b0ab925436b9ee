package calculate_raw_material

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"furniture-production/http-server/httperr"
	"furniture-production/internal/service/calculation"
)

type RawMaterialCalculator interface {
	RequiredRawMaterial(ctx context.Context, req calculation.RawMaterialRequest) (int, error)
}

// CalculateRawMaterial answers with required_raw_material, -1 when the type or material is unknown.
func CalculateRawMaterial(log *slog.Logger, calc RawMaterialCalculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.calculation.CalculateRawMaterial"

		var req calculation.RawMaterialRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			http.Error(w, httperr.MsgInvalidJSON, http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		amount, err := calc.RequiredRawMaterial(ctx, req)
		if err != nil {
			httperr.Write(w, log, op, err)
			return
		}

		if amount == calculation.UnknownReference {
			log.Warn("unknown product type or material",
				slog.String("op", op),
				slog.String("product_type_name", req.ProductTypeName),
				slog.String("material_name", req.MaterialName),
			)
		}

		render.JSON(w, r, calculation.RawMaterialResponse{RequiredRawMaterial: amount})
	}
}
