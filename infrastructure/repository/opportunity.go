package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/vfg2006/opportunity-loss-api/infrastructure/database/postgres"
	"github.com/vfg2006/opportunity-loss-api/internal/domain"
	"github.com/vfg2006/opportunity-loss-api/pkg/log"
)

// Colunas lidas do conjunto de referência, na ordem do Scan
var referenceColumns = []string{
	domain.FieldSalesAgent,
	domain.FieldProduct,
	domain.FieldSector,
	domain.FieldOfficeLocation,
	domain.FieldSubsidiaryOf,
	domain.FieldSeries,
	domain.FieldManager,
	domain.FieldRegionalOffice,
	domain.FieldDealStage,
	domain.FieldCloseValue,
	domain.FieldYearEstablished,
	domain.FieldRevenue,
	domain.FieldEmployees,
	domain.FieldSalesPrice,
	"to_char(" + domain.FieldEngageDate + ", 'YYYY-MM-DD')",
	"to_char(" + domain.FieldCloseDate + ", 'YYYY-MM-DD')",
}

// OpportunityRepository lê as oportunidades históricas usadas no fit
type OpportunityRepository interface {
	ListReferenceOpportunities(ctx context.Context) ([]domain.Opportunity, error)
}

type opportunityRepository struct {
	conn  postgres.Queryer
	table string
}

// NewOpportunityRepository espera uma tabela (ou view) já desnormalizada,
// com uma coluna por campo da oportunidade.
func NewOpportunityRepository(conn postgres.Queryer, table string) OpportunityRepository {
	return &opportunityRepository{
		conn:  conn,
		table: table,
	}
}

func buildReferenceQuery(table string) (string, []interface{}, error) {
	return squirrel.
		Select(referenceColumns...).
		From(table).
		OrderBy(domain.FieldEngageDate).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func (r *opportunityRepository) ListReferenceOpportunities(ctx context.Context) ([]domain.Opportunity, error) {
	query, args, err := buildReferenceQuery(r.table)
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", r.table, err)
	}
	defer rows.Close()

	var opportunities []domain.Opportunity
	for rows.Next() {
		o, err := scanOpportunity(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", r.table, err)
		}
		opportunities = append(opportunities, o)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.L.WithFields(log.Fields{
		"table": r.table,
		"rows":  len(opportunities),
	}).Info("repository: reference opportunities loaded")

	return opportunities, nil
}

func scanOpportunity(rows *sql.Rows) (domain.Opportunity, error) {
	var (
		o                                            domain.Opportunity
		salesAgent, product                          sql.NullString
		sector, officeLocation, subsidiaryOf, series sql.NullString
		manager, regionalOffice, dealStage           sql.NullString
		closeValue, revenue, salesPrice              sql.NullFloat64
		yearEstablished, employees                   sql.NullInt64
		engageDate, closeDate                        sql.NullString
	)

	if err := rows.Scan(
		&salesAgent,
		&product,
		&sector,
		&officeLocation,
		&subsidiaryOf,
		&series,
		&manager,
		&regionalOffice,
		&dealStage,
		&closeValue,
		&yearEstablished,
		&revenue,
		&employees,
		&salesPrice,
		&engageDate,
		&closeDate,
	); err != nil {
		return o, err
	}

	o.SalesAgent = salesAgent.String
	o.Product = product.String
	o.Sector = nullString(sector)
	o.OfficeLocation = nullString(officeLocation)
	o.SubsidiaryOf = nullString(subsidiaryOf)
	o.Series = nullString(series)
	o.Manager = nullString(manager)
	o.RegionalOffice = nullString(regionalOffice)
	o.DealStage = nullString(dealStage)
	o.CloseValue = nullFloat(closeValue)
	o.YearEstablished = nullInt(yearEstablished)
	o.Revenue = nullFloat(revenue)
	o.Employees = nullInt(employees)
	o.SalesPrice = nullFloat(salesPrice)
	o.EngageDate = nullString(engageDate)
	o.CloseDate = nullString(closeDate)

	return o, nil
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
