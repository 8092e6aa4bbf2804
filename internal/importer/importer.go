// Package importer loads word lists from spreadsheet or CSV files into the catalogue.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/vytor/wordflow/internal/logger"
	"github.com/vytor/wordflow/internal/models"
)

// Config selects where words are read from. Columns are zero-based.
type Config struct {
	Path              string
	Sheet             string // first sheet when empty; ignored for CSV
	WordColumn        int
	TranslationColumn int
	SkipHeader        bool
}

func DefaultConfig(path string) Config {
	return Config{
		Path:              path,
		WordColumn:        0,
		TranslationColumn: 1,
		SkipHeader:        true,
	}
}

// Result summarizes an import.
type Result struct {
	Rows    int `json:"rows"`
	Skipped int `json:"skipped"`
	Created int `json:"created"`
	Updated int `json:"updated"`
}

// WordImporter stores parsed words, upserting by text.
type WordImporter interface {
	ImportWords(ctx context.Context, words []models.Word) (created, updated int, err error)
}

// Import reads the file described by cfg and hands its words to dst.
func Import(ctx context.Context, dst WordImporter, cfg Config) (*Result, error) {
	log := logger.FromContext(ctx).WithPrefix("importer")
	log.Info("importing words from %s", cfg.Path)

	rows, err := readRows(cfg)
	if err != nil {
		log.Error("failed to read %s: %v", cfg.Path, err)
		return nil, err
	}
	if cfg.SkipHeader && len(rows) > 0 {
		rows = rows[1:]
	}

	res := &Result{Rows: len(rows)}
	words := make([]models.Word, 0, len(rows))
	seen := make(map[string]int, len(rows))
	for _, row := range rows {
		text := strings.TrimSpace(cell(row, cfg.WordColumn))
		if text == "" {
			res.Skipped++
			continue
		}
		w := models.Word{Text: text, Translation: strings.TrimSpace(cell(row, cfg.TranslationColumn))}
		// a repeated word keeps its last translation
		if i, ok := seen[text]; ok {
			words[i] = w
			res.Skipped++
			continue
		}
		seen[text] = len(words)
		words = append(words, w)
	}

	if len(words) > 0 {
		res.Created, res.Updated, err = dst.ImportWords(ctx, words)
		if err != nil {
			return nil, err
		}
	}
	log.Info("import finished: rows=%d, created=%d, updated=%d, skipped=%d", res.Rows, res.Created, res.Updated, res.Skipped)
	return res, nil
}

func readRows(cfg Config) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(cfg.Path)) {
	case ".csv":
		return readCSV(cfg.Path)
	case ".xlsx", ".xlsm":
		return readXLSX(cfg.Path, cfg.Sheet)
	default:
		return nil, fmt.Errorf("unsupported file type %q", filepath.Ext(cfg.Path))
	}
}

func readXLSX(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var rows [][]string
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, row)
	}
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
