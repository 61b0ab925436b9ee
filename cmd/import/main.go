package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"furniture-production/internal/config"
	"furniture-production/internal/importer"
	"furniture-production/internal/storage/sqlstore"
)

func main() {
	dir := flag.String("dir", "./data", "directory with the *_import.csv exports")
	productTypes := flag.String("product-types", "", "product types file, overrides -dir")
	materials := flag.String("materials", "", "materials file, overrides -dir")
	workshops := flag.String("workshops", "", "workshops file, overrides -dir")
	products := flag.String("products", "", "products file, overrides -dir")
	productWorkshops := flag.String("product-workshops", "", "product workshops file, overrides -dir")
	flag.Parse()

	cfg := config.MustConfig()

	log := slog.New(slog.NewTextHandler(os.Stdout, nil))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	files := importer.DefaultFiles(*dir)
	override(&files.ProductTypes, *productTypes)
	override(&files.Materials, *materials)
	override(&files.Workshops, *workshops)
	override(&files.Products, *products)
	override(&files.ProductWorkshops, *productWorkshops)

	storage, err := sqlstore.New(ctx, cfg.Storage)
	if err != nil {
		log.Error("failed to open db", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer storage.Close()

	if _, err := importer.Run(ctx, log, files, storage); err != nil {
		log.Error("import failed", slog.String("error", err.Error()))
		storage.Close()
		os.Exit(1)
	}
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
