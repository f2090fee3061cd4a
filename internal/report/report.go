// Package report assembles PDF exports from registry data. It is a
// read-only consumer: it queries, it never mutates.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/unidoc/unipdf/v3/creator"
	"go.uber.org/zap"

	"github.com/Rethinkk/pam-registry/internal/models"
	"github.com/Rethinkk/pam-registry/internal/registry"
)

// Kind selects which assets a report covers.
type Kind string

const (
	KindTotal       Kind = "total"
	KindByCategory  Kind = "by-category"
	KindBySelection Kind = "by-selection"
)

// Input selects the report to build.
type Input struct {
	Kind         Kind
	CategoryCode string   // for by-category
	SelectedIDs  []string // for by-selection
}

// Builder renders registry overview PDFs.
type Builder struct {
	svc    *registry.Service
	logger *zap.Logger
}

func NewBuilder(svc *registry.Service, log *zap.Logger) *Builder {
	return &Builder{svc: svc, logger: log}
}

// Build writes the selected report as a PDF.
func (b *Builder) Build(input Input, w io.Writer) error {
	assets, err := b.svc.Assets.QueryAll()
	if err != nil {
		return err
	}

	title := "Total Asset Report"
	switch input.Kind {
	case KindBySelection:
		title = "Selected Assets Report"
		selected := make(map[string]bool, len(input.SelectedIDs))
		for _, id := range input.SelectedIDs {
			selected[id] = true
		}
		assets = filterAssets(assets, func(a models.Asset) bool { return selected[a.ID] })
	case KindByCategory:
		title = "Category Report - " + categoryLabel(input.CategoryCode)
		assets = filterAssets(assets, func(a models.Asset) bool { return a.TypeCode == input.CategoryCode })
	}

	c := creator.New()
	c.SetPageMargins(40, 40, 50, 50)

	heading := c.NewParagraph("PAM - Reporting")
	heading.SetFontSize(18)
	if err := c.Draw(heading); err != nil {
		return err
	}
	sub := c.NewParagraph(title)
	sub.SetFontSize(14)
	if err := c.Draw(sub); err != nil {
		return err
	}
	meta := c.NewParagraph(fmt.Sprintf("Generated: %s - %d items",
		time.Now().Format("2006-01-02 15:04"), len(assets)))
	meta.SetFontSize(10)
	if err := c.Draw(meta); err != nil {
		return err
	}

	if err := b.drawAssetTable(c, assets); err != nil {
		return err
	}

	if err := c.Write(w); err != nil {
		b.logger.Error("Failed to write report", zap.Error(err))
		return err
	}
	b.logger.Info("Report built",
		zap.String("kind", string(input.Kind)),
		zap.Int("assets", len(assets)),
	)
	return nil
}

func (b *Builder) drawAssetTable(c *creator.Creator, assets []models.Asset) error {
	table := c.NewTable(4)
	if err := table.SetColumnWidths(0.28, 0.32, 0.22, 0.18); err != nil {
		return err
	}

	for _, h := range []string{"Number", "Name", "Category", "Created"} {
		cell := table.NewCell()
		cell.SetBackgroundColor(creator.ColorBlack)
		p := c.NewParagraph(h)
		p.SetFontSize(10)
		p.SetColor(creator.ColorWhite)
		if err := cell.SetContent(p); err != nil {
			return err
		}
	}

	for _, a := range assets {
		row := []string{
			a.AssetNumber,
			a.Name,
			categoryLabel(a.TypeCode),
			a.CreatedAt.Format("2006-01-02"),
		}
		for _, v := range row {
			cell := table.NewCell()
			p := c.NewParagraph(v)
			p.SetFontSize(10)
			if err := cell.SetContent(p); err != nil {
				return err
			}
		}
	}
	return c.Draw(table)
}

// CategoriesInUse lists the type codes that actually occur in the register.
func (b *Builder) CategoriesInUse() ([]models.AssetTypeSchema, error) {
	assets, err := b.svc.Assets.QueryAll()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	out := make([]models.AssetTypeSchema, 0)
	for _, a := range assets {
		if seen[a.TypeCode] {
			continue
		}
		seen[a.TypeCode] = true
		if s, ok := models.SchemaByCode(a.TypeCode); ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func categoryLabel(code string) string {
	if s, ok := models.SchemaByCode(code); ok {
		return s.Label
	}
	return code
}

func filterAssets(assets []models.Asset, keep func(models.Asset) bool) []models.Asset {
	out := make([]models.Asset, 0, len(assets))
	for _, a := range assets {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}
