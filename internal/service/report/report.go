package report

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"furniture-production/internal/storage"
)

const (
	productsSheet  = "Products"
	workshopsSheet = "Workshops"
)

var (
	productHeaders  = []string{"ID", "Наименование продукции", "Артикул", "Тип продукции", "Основной материал", "Минимальная стоимость для партнера", "Время изготовления, ч"}
	workshopHeaders = []string{"Наименование продукции", "Название цеха", "Время изготовления, ч"}
)

type ReportSource interface {
	ListProducts(ctx context.Context) ([]storage.ProductWithTime, error)
	ListProductWorkshops(ctx context.Context) ([]storage.ProductWorkshop, error)
}

type Service struct {
	source ReportSource
}

func NewService(source ReportSource) *Service {
	return &Service{source: source}
}

// GenerateProductsExcel builds an xlsx workbook with the catalog and its workshop routing.
func (s *Service) GenerateProductsExcel(ctx context.Context) ([]byte, error) {
	const op = "service.report.GenerateProductsExcel"

	var (
		products []storage.ProductWithTime
		links    []storage.ProductWorkshop
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.source.ListProducts(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		links, err = s.source.ListProductWorkshops(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: fetch data: %w", op, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", productsSheet); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if _, err := f.NewSheet(workshopsSheet); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: header style: %w", op, err)
	}

	if err := writeHeader(f, productsSheet, productHeaders, headerStyle); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := writeHeader(f, workshopsSheet, workshopHeaders, headerStyle); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for i, p := range products {
		row := []any{p.ID, p.Name, p.Article, deref(p.ProductTypeName), deref(p.MainMaterialName), p.MinPartnerCost, p.TotalProductionTime}
		if err := f.SetSheetRow(productsSheet, cellName(1, i+2), &row); err != nil {
			return nil, fmt.Errorf("%s: product row %d: %w", op, i, err)
		}
	}

	for i, l := range links {
		row := []any{l.ProductName, l.WorkshopName, l.Coefficient}
		if err := f.SetSheetRow(workshopsSheet, cellName(1, i+2), &row); err != nil {
			return nil, fmt.Errorf("%s: workshop row %d: %w", op, i, err)
		}
	}

	for _, sheet := range []string{productsSheet, workshopsSheet} {
		if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
			return nil, fmt.Errorf("%s: freeze %s: %w", op, sheet, err)
		}
	}
	f.SetColWidth(productsSheet, "B", "G", 24)
	f.SetColWidth(workshopsSheet, "A", "C", 24)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: write: %w", op, err)
	}

	return buf.Bytes(), nil
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) error {
	row := make([]any, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &row); err != nil {
		return fmt.Errorf("header %s: %w", sheet, err)
	}
	return f.SetCellStyle(sheet, "A1", cellName(len(headers), 1), style)
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
