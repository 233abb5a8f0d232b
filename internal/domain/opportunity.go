package domain

// Colunas numéricas e categóricas de uma oportunidade, usando os nomes JSON
// do payload de entrada.
const (
	FieldSalesAgent      = "sales_agent"
	FieldProduct         = "product"
	FieldSector          = "sector"
	FieldOfficeLocation  = "office_location"
	FieldSubsidiaryOf    = "subsidiary_of"
	FieldSeries          = "series"
	FieldManager         = "manager"
	FieldRegionalOffice  = "regional_office"
	FieldDealStage       = "deal_stage"
	FieldCloseValue      = "close_value"
	FieldYearEstablished = "year_established"
	FieldRevenue         = "revenue"
	FieldEmployees       = "employees"
	FieldSalesPrice      = "sales_price"
	FieldEngageDate      = "engage_date"
	FieldCloseDate       = "close_date"
)

// Opportunity representa uma oportunidade de venda candidata à predição.
// Apenas SalesAgent e Product são obrigatórios; todos os demais campos
// aceitam null.
type Opportunity struct {
	SalesAgent      string   `json:"sales_agent" validate:"required"`
	Product         string   `json:"product" validate:"required"`
	Sector          *string  `json:"sector"`
	OfficeLocation  *string  `json:"office_location"`
	SubsidiaryOf    *string  `json:"subsidiary_of"`
	Series          *string  `json:"series"`
	Manager         *string  `json:"manager"`
	RegionalOffice  *string  `json:"regional_office"`
	DealStage       *string  `json:"deal_stage"`
	CloseValue      *float64 `json:"close_value" validate:"omitempty,gte=0"`
	YearEstablished *int     `json:"year_established" validate:"omitempty,gte=1800,lte=2100"`
	Revenue         *float64 `json:"revenue" validate:"omitempty,gte=0"`
	Employees       *int     `json:"employees" validate:"omitempty,gte=0"`
	SalesPrice      *float64 `json:"sales_price" validate:"omitempty,gte=0"`
	EngageDate      *string  `json:"engage_date"` // data inválida vira ausente e é imputada
	CloseDate       *string  `json:"close_date"`
}

// Categorical retorna os campos categóricos preenchidos, indexados pelo nome
// da coluna. Campos nulos ou vazios não aparecem no mapa.
func (o Opportunity) Categorical() map[string]string {
	values := map[string]*string{
		FieldSalesAgent:     &o.SalesAgent,
		FieldProduct:        &o.Product,
		FieldSector:         o.Sector,
		FieldOfficeLocation: o.OfficeLocation,
		FieldSubsidiaryOf:   o.SubsidiaryOf,
		FieldSeries:         o.Series,
		FieldManager:        o.Manager,
		FieldRegionalOffice: o.RegionalOffice,
		FieldDealStage:      o.DealStage,
	}

	out := make(map[string]string, len(values))
	for column, value := range values {
		if value != nil && *value != "" {
			out[column] = *value
		}
	}
	return out
}

// Numeric retorna os campos numéricos preenchidos como float64.
func (o Opportunity) Numeric() map[string]float64 {
	out := make(map[string]float64, 5)
	if o.CloseValue != nil {
		out[FieldCloseValue] = *o.CloseValue
	}
	if o.YearEstablished != nil {
		out[FieldYearEstablished] = float64(*o.YearEstablished)
	}
	if o.Revenue != nil {
		out[FieldRevenue] = *o.Revenue
	}
	if o.Employees != nil {
		out[FieldEmployees] = float64(*o.Employees)
	}
	if o.SalesPrice != nil {
		out[FieldSalesPrice] = *o.SalesPrice
	}
	return out
}
