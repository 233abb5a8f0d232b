// Package reference lê o conjunto de referência usado no fit offline a partir
// de um arquivo CSV exportado do CRM.
package reference

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/vfg2006/opportunity-loss-api/internal/domain"
	"github.com/vfg2006/opportunity-loss-api/pkg/log"
)

var ErrMissingColumn = errors.New("reference csv: required column missing")

// ParseWarning é um problema não fatal encontrado numa linha
type ParseWarning struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type CSVSource struct {
	path string
}

func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

func (s *CSVSource) ListReferenceOpportunities(ctx context.Context) ([]domain.Opportunity, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening reference csv: %w", err)
	}
	defer f.Close()

	opportunities, warnings, err := ReadOpportunities(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}

	for _, w := range warnings {
		log.L.WithFields(log.Fields{
			"path": s.path,
			"row":  w.Row,
		}).Warn("reference: " + w.Message)
	}

	log.L.WithFields(log.Fields{
		"path":     s.path,
		"rows":     len(opportunities),
		"warnings": len(warnings),
	}).Info("reference: csv loaded")

	return opportunities, nil
}

// ReadOpportunities decodifica o CSV com cabeçalho. BOMs UTF-8 e UTF-16 são
// removidos; colunas desconhecidas são ignoradas. Valores vazios viram null e
// números que não puderem ser lidos também, com um aviso.
func ReadOpportunities(ctx context.Context, r io.Reader) ([]domain.Opportunity, []ParseWarning, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, errors.New("empty file: no header row found")
		}
		return nil, nil, fmt.Errorf("failed to read header row: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}

	// Só as datas são indispensáveis ao fit; linhas com campos categóricos
	// vazios continuam contando para a mediana.
	for _, required := range []string{domain.FieldEngageDate, domain.FieldCloseDate} {
		if _, ok := index[required]; !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	var (
		opportunities []domain.Opportunity
		warnings      []ParseWarning
	)

	rowNum := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowNum++

		if err != nil {
			warnings = append(warnings, ParseWarning{Row: rowNum, Message: fmt.Sprintf("parse error: %v", err)})
			continue
		}

		if rowNum%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, nil, err
			}
		}

		row := csvRow{index: index, record: record}
		o, rowWarnings := row.opportunity()
		for _, msg := range rowWarnings {
			warnings = append(warnings, ParseWarning{Row: rowNum, Message: msg})
		}

		opportunities = append(opportunities, o)
	}

	return opportunities, warnings, nil
}

type csvRow struct {
	index  map[string]int
	record []string
}

func (r csvRow) get(field string) (string, bool) {
	i, ok := r.index[field]
	if !ok || i >= len(r.record) {
		return "", false
	}

	value := strings.TrimSpace(r.record[i])
	return value, value != ""
}

func (r csvRow) str(field string) *string {
	value, ok := r.get(field)
	if !ok {
		return nil
	}
	return &value
}

func (r csvRow) number(field string, warnings *[]string) *float64 {
	value, ok := r.get(field)
	if !ok {
		return nil
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		*warnings = append(*warnings, fmt.Sprintf("invalid %s %q treated as missing", field, value))
		return nil
	}
	return &f
}

func (r csvRow) integer(field string, warnings *[]string) *int {
	f := r.number(field, warnings)
	if f == nil {
		return nil
	}

	i := int(*f)
	return &i
}

func (r csvRow) opportunity() (domain.Opportunity, []string) {
	var warnings []string

	agent, _ := r.get(domain.FieldSalesAgent)
	product, _ := r.get(domain.FieldProduct)

	return domain.Opportunity{
		SalesAgent:      agent,
		Product:         product,
		Sector:          r.str(domain.FieldSector),
		OfficeLocation:  r.str(domain.FieldOfficeLocation),
		SubsidiaryOf:    r.str(domain.FieldSubsidiaryOf),
		Series:          r.str(domain.FieldSeries),
		Manager:         r.str(domain.FieldManager),
		RegionalOffice:  r.str(domain.FieldRegionalOffice),
		DealStage:       r.str(domain.FieldDealStage),
		CloseValue:      r.number(domain.FieldCloseValue, &warnings),
		YearEstablished: r.integer(domain.FieldYearEstablished, &warnings),
		Revenue:         r.number(domain.FieldRevenue, &warnings),
		Employees:       r.integer(domain.FieldEmployees, &warnings),
		SalesPrice:      r.number(domain.FieldSalesPrice, &warnings),
		EngageDate:      r.str(domain.FieldEngageDate),
		CloseDate:       r.str(domain.FieldCloseDate),
	}, warnings
}
