package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"furniture-production/internal/storage"
)

// Column headers of the source exports.
const (
	colProductType     = "Тип продукции"
	colTypeCoefficient = "Коэффициент типа продукции"
	colMaterial        = "Тип материала"
	colLossPercentage  = "Процент потерь сырья"
	colWorkshopName    = "Название цеха"
	colWorkshopType    = "Тип цеха"
	colNumEmployees    = "Количество человек для производства"
	colProductName     = "Наименование продукции"
	colArticle         = "Артикул"
	colMinPartnerCost  = "Минимальная стоимость для партнера"
	colMainMaterial    = "Основной материал"
	colTimeInWorkshop  = "Время изготовления, ч"
)

// Files names the five source exports. Empty entries are skipped.
type Files struct {
	ProductTypes     string
	Materials        string
	Workshops        string
	Products         string
	ProductWorkshops string
}

// DefaultFiles are the export names inside dir.
func DefaultFiles(dir string) Files {
	return Files{
		ProductTypes:     filepath.Join(dir, "Product_type_import.csv"),
		Materials:        filepath.Join(dir, "Material_type_import.csv"),
		Workshops:        filepath.Join(dir, "Workshops_import.csv"),
		Products:         filepath.Join(dir, "Products_import.csv"),
		ProductWorkshops: filepath.Join(dir, "Product_workshops_import.csv"),
	}
}

// Skipped counts rows dropped per table because a key or required number was missing.
type Skipped map[string]int

// Load reads every configured file into one batch.
func Load(files Files) (storage.ImportBatch, Skipped, error) {
	const op = "importer.Load"

	var batch storage.ImportBatch
	skipped := Skipped{}

	steps := []struct {
		table string
		path  string
		parse func(rows []map[string]string) int
	}{
		{"product_types", files.ProductTypes, func(rows []map[string]string) int {
			var n int
			batch.ProductTypes, n = ParseProductTypes(rows)
			return n
		}},
		{"materials", files.Materials, func(rows []map[string]string) int {
			var n int
			batch.Materials, n = ParseMaterials(rows)
			return n
		}},
		{"workshops", files.Workshops, func(rows []map[string]string) int {
			var n int
			batch.Workshops, n = ParseWorkshops(rows)
			return n
		}},
		{"products", files.Products, func(rows []map[string]string) int {
			var n int
			batch.Products, n = ParseProducts(rows)
			return n
		}},
		{"product_workshops", files.ProductWorkshops, func(rows []map[string]string) int {
			var n int
			batch.ProductWorkshops, n = ParseProductWorkshops(rows)
			return n
		}},
	}

	for _, step := range steps {
		if step.path == "" {
			continue
		}

		rows, err := ReadFile(step.path)
		if err != nil {
			return storage.ImportBatch{}, nil, fmt.Errorf("%s: %s: %w", op, step.table, err)
		}

		if n := step.parse(rows); n > 0 {
			skipped[step.table] = n
		}
	}

	return batch, skipped, nil
}

// ReadFile returns the data rows of a ';' separated CSV or the first sheet of an xlsx,
// keyed by trimmed header. Blank rows are dropped.
func ReadFile(path string) ([]map[string]string, error) {
	var (
		records [][]string
		err     error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		records, err = readXLSX(path)
	default:
		records, err = readCSV(path)
	}
	if err != nil {
		return nil, err
	}

	return toMaps(records), nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseCSV(f)
}

// ParseCSV reads ';' separated records; rows may have a varying number of fields.
func ParseCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	return records, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("xlsx has no sheets")
	}

	return f.GetRows(sheets[0])
}

func toMaps(records [][]string) []map[string]string {
	if len(records) == 0 {
		return nil
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	var rows []map[string]string
	for _, rec := range records[1:] {
		row := make(map[string]string, len(header))
		blank := true
		for i, h := range header {
			if i >= len(rec) {
				break
			}
			v := strings.TrimSpace(rec[i])
			if v != "" {
				blank = false
			}
			row[h] = v
		}
		if !blank {
			rows = append(rows, row)
		}
	}

	return rows
}

// ParseNumber normalizes an exported number: "10,5 %", "1 234,00" and "0.8" are all accepted.
func ParseNumber(raw string) (float64, error) {
	v := strings.TrimSpace(raw)
	v = strings.ReplaceAll(v, "%", "")
	v = strings.ReplaceAll(v, "\u00a0", "")
	v = strings.ReplaceAll(v, " ", "")
	v = strings.ReplaceAll(v, ",", ".")

	if v == "" || strings.EqualFold(v, "nan") {
		return 0, fmt.Errorf("empty number %q", raw)
	}

	return strconv.ParseFloat(v, 64)
}

func ParseProductTypes(rows []map[string]string) ([]storage.ProductType, int) {
	var (
		out     []storage.ProductType
		skipped int
	)

	for _, row := range rows {
		name := row[colProductType]
		coef, err := ParseNumber(row[colTypeCoefficient])
		if name == "" || err != nil {
			skipped++
			continue
		}
		out = append(out, storage.ProductType{Name: name, Coefficient: coef})
	}

	return out, skipped
}

func ParseMaterials(rows []map[string]string) ([]storage.Material, int) {
	var (
		out     []storage.Material
		skipped int
	)

	for _, row := range rows {
		name := row[colMaterial]
		loss, err := ParseNumber(row[colLossPercentage])
		if name == "" || err != nil {
			skipped++
			continue
		}
		out = append(out, storage.Material{Name: name, LossPercentage: loss})
	}

	return out, skipped
}

func ParseWorkshops(rows []map[string]string) ([]storage.Workshop, int) {
	var (
		out     []storage.Workshop
		skipped int
	)

	for _, row := range rows {
		name := row[colWorkshopName]
		employees, err := strconv.Atoi(row[colNumEmployees])
		if name == "" || err != nil || employees <= 0 {
			skipped++
			continue
		}
		out = append(out, storage.Workshop{Name: name, Type: row[colWorkshopType], NumEmployees: employees})
	}

	return out, skipped
}

func ParseProducts(rows []map[string]string) ([]storage.ProductInput, int) {
	var (
		out     []storage.ProductInput
		skipped int
	)

	for _, row := range rows {
		name := row[colProductName]
		article, errArticle := strconv.ParseInt(row[colArticle], 10, 64)
		cost, errCost := ParseNumber(row[colMinPartnerCost])
		if name == "" || errArticle != nil || errCost != nil {
			skipped++
			continue
		}
		out = append(out, storage.ProductInput{
			Name:             name,
			Article:          article,
			MinPartnerCost:   cost,
			ProductTypeName:  optional(row[colProductType]),
			MainMaterialName: optional(row[colMainMaterial]),
		})
	}

	return out, skipped
}

func ParseProductWorkshops(rows []map[string]string) ([]storage.ProductWorkshop, int) {
	var (
		out     []storage.ProductWorkshop
		skipped int
	)

	for _, row := range rows {
		product := row[colProductName]
		workshop := row[colWorkshopName]
		hours, err := ParseNumber(row[colTimeInWorkshop])
		if product == "" || workshop == "" || err != nil {
			skipped++
			continue
		}
		out = append(out, storage.ProductWorkshop{ProductName: product, WorkshopName: workshop, Coefficient: hours})
	}

	return out, skipped
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

type BatchWriter interface {
	Import(ctx context.Context, batch storage.ImportBatch) (storage.ImportResult, error)
}

// Run loads files and writes them in one batch. Nothing is written if any file fails to read.
func Run(ctx context.Context, log *slog.Logger, files Files, w BatchWriter) (storage.ImportResult, error) {
	const op = "importer.Run"

	log = log.With(slog.String("op", op))

	batch, skipped, err := Load(files)
	if err != nil {
		return storage.ImportResult{}, fmt.Errorf("%s: %w", op, err)
	}

	for table, n := range skipped {
		log.Warn("rows skipped", slog.String("table", table), slog.Int("count", n))
	}

	res, err := w.Import(ctx, batch)
	if err != nil {
		return storage.ImportResult{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("import finished",
		slog.Int("product_types", res.ProductTypes),
		slog.Int("materials", res.Materials),
		slog.Int("workshops", res.Workshops),
		slog.Int("products", res.Products),
		slog.Int("product_workshops", res.ProductWorkshops),
	)

	return res, nil
}
