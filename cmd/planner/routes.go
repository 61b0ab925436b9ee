package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	calculate_raw_material "furniture-production/http-server/calculate-raw-material"
	getdictionary "furniture-production/http-server/dictionaries/get"
	generate_excel "furniture-production/http-server/generate-report/generate-excel"
	getproductworkshops "furniture-production/http-server/product-workshops/get"
	getproducts "furniture-production/http-server/products/get"
	"furniture-production/http-server/products/remove"
	"furniture-production/http-server/products/save"
	"furniture-production/http-server/products/update"
	"furniture-production/internal/config"
	"furniture-production/internal/middleware/metrics"
	"furniture-production/internal/service/calculation"
	"furniture-production/internal/service/catalog"
	"furniture-production/internal/service/report"
	"furniture-production/internal/storage/sqlstore"
)

func routes(
	cfg config.Config,
	log *slog.Logger,
	storage *sqlstore.Storage,
	catalogService *catalog.Service,
	rawMaterialService *calculation.RawMaterialService,
	reportService *report.Service,
) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.HTTPServer.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	if cfg.Metrics.Enabled {
		m := metrics.New(prometheus.DefaultRegisterer)
		router.Use(m.Handler)
		router.Handle("/metrics", promhttp.Handler())
	}

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := storage.Ping(r.Context()); err != nil {
			log.Error("health check failed", slog.String("error", err.Error()))
			http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("OK"))
	})

	// продукция
	router.Get("/products", getproducts.GetProducts(log, catalogService))
	router.Post("/products", save.SaveProduct(log, catalogService))
	router.Put("/products/{id}", update.UpdateProduct(log, catalogService))
	router.Delete("/products/{id}", remove.DeleteProduct(log, catalogService))
	router.Get("/products/{id}/workshops", getproducts.GetProductWorkshops(log, catalogService))
	router.Get("/products/{id}/production_time", getproducts.GetProductionTime(log, catalogService))

	// справочники
	router.Get("/product-types", getdictionary.GetDictionary(log, catalogService, catalog.KindProductType, false))
	router.Get("/materials", getdictionary.GetDictionary(log, catalogService, catalog.KindMaterial, false))
	router.Get("/all-product-types", getdictionary.GetDictionary(log, catalogService, catalog.KindProductType, true))
	router.Get("/all-materials", getdictionary.GetDictionary(log, catalogService, catalog.KindMaterial, true))
	router.Get("/all-workshops", getdictionary.GetDictionary(log, catalogService, catalog.KindWorkshop, true))

	router.Get("/all-product-workshops", getproductworkshops.GetAllProductWorkshops(log, catalogService))
	router.Get("/product-workshops/{id}", getproductworkshops.GetProductWorkshopsByProduct(log, catalogService))

	router.Post("/calculate_raw_material", calculate_raw_material.CalculateRawMaterial(log, rawMaterialService))

	router.Get("/report/products.xlsx", generate_excel.GenerateReportExcel(log, reportService))

	return router
}
