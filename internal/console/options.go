// Package console implementa o console do operador: um formulário de terminal
// que monta a oportunidade, chama POST /predict e exibe o resultado.
package console

import (
	"github.com/vfg2006/opportunity-loss-api/internal/domain"
)

const (
	unknownOption       = "Unknown"
	notSubsidiaryOption = "Not_Subsidiary"
)

type fieldKind int

const (
	kindChoice fieldKind = iota
	kindFloat
	kindInt
	kindDate
)

// Field descreve uma pergunta do formulário
type Field struct {
	Name     string
	Label    string
	Kind     fieldKind
	Options  []string // apenas kindChoice; o primeiro é o padrão
	Sentinel string   // valor de kindChoice enviado como null
	Default  string
	Min      float64

	// UpToCurrentYear limita o valor ao ano corrente
	UpToCurrentYear bool
}

// As listas são fixas no console e não são consultadas no serviço
var (
	salesAgentOptions = []string{unknownOption, "Anna Snelling", "Boris Faz", "Cassey Cress", "Cecily Lampkin", "Corliss Cosme",
		"Daniell Hammack", "Darcel Schlecht", "Donn Cantrell", "Elease Gluck", "Garret Kinder", "Gladys Colclough",
		"Hayden Neloms", "James Ascencio", "Jonathan Berthelot", "Kami Bicknell", "Kary Hendrixson", "Lajuana Vencill",
		"Markita Hansen", "Marty Freudenburg", "Maureen Marcano", "Moses Frase", "Niesha Huffines", "Reed Clapper",
		"Rosalina Dieter", "Rosie Papadopoulos", "Versie Hillebrand", "Vicki Laflamme", "Violet Mclelland",
		"Wilburn Farren", "Zane Levy"}
	productOptions = []string{unknownOption, "GTK 500", "GTX Basic", "GTX Plus Basic", "GTX Plus Pro", "GTXPro",
		"MG Advanced", "MG Special"}
	sectorOptions = []string{unknownOption, "employment", "entertainment", "finance", "marketing", "medical", "retail",
		"services", "software", "technolgy", "telecommunications"}
	officeLocationOptions = []string{unknownOption, "Belgium", "Brazil", "China", "Germany", "Italy", "Japan", "Jordan",
		"Kenya", "Korea", "Norway", "Panama", "Philipines", "Poland", "Romania", "United States"}
	subsidiaryOfOptions = []string{notSubsidiaryOption, "Acme Corporation", "Bubba Gump", "Golddex", "Inity",
		"Massive Dynamic", "Sonron", "Warephase"}
	seriesOptions         = []string{unknownOption, "GTK", "GTX", "MG"}
	managerOptions        = []string{unknownOption, "Cara Losch", "Celia Rouche", "Dustin Brinkmann", "Melvin Marxen", "Rocco Neubert", "Summer Sewald"}
	regionalOfficeOptions = []string{unknownOption, "Central", "East", "West"}
	dealStageOptions      = []string{unknownOption, "Engaging", "Prospecting"}
)

// Fields é a ordem em que o formulário pergunta cada campo
var Fields = []Field{
	{Name: domain.FieldSalesAgent, Label: "Agente de Vendas", Kind: kindChoice, Options: salesAgentOptions, Sentinel: unknownOption},
	{Name: domain.FieldProduct, Label: "Produto", Kind: kindChoice, Options: productOptions, Sentinel: unknownOption},
	{Name: domain.FieldSector, Label: "Setor", Kind: kindChoice, Options: sectorOptions, Sentinel: unknownOption},
	{Name: domain.FieldOfficeLocation, Label: "Localização do Escritório", Kind: kindChoice, Options: officeLocationOptions, Sentinel: unknownOption},
	{Name: domain.FieldSubsidiaryOf, Label: "Subsidiária de", Kind: kindChoice, Options: subsidiaryOfOptions, Sentinel: notSubsidiaryOption},
	{Name: domain.FieldSeries, Label: "Série do Produto", Kind: kindChoice, Options: seriesOptions, Sentinel: unknownOption},
	{Name: domain.FieldManager, Label: "Gerente", Kind: kindChoice, Options: managerOptions, Sentinel: unknownOption},
	{Name: domain.FieldRegionalOffice, Label: "Escritório Regional", Kind: kindChoice, Options: regionalOfficeOptions, Sentinel: unknownOption},
	{Name: domain.FieldDealStage, Label: "Etapa do Negócio", Kind: kindChoice, Options: dealStageOptions, Sentinel: unknownOption},
	{Name: domain.FieldCloseValue, Label: "Valor de Fechamento", Kind: kindFloat, Default: "0"},
	{Name: domain.FieldYearEstablished, Label: "Ano de Fundação da Empresa", Kind: kindInt, Default: "2000", Min: 1900, UpToCurrentYear: true},
	{Name: domain.FieldRevenue, Label: "Faturamento da Empresa", Kind: kindFloat, Default: "0"},
	{Name: domain.FieldEmployees, Label: "Número de Funcionários", Kind: kindInt, Default: "0"},
	{Name: domain.FieldSalesPrice, Label: "Preço de Venda do Produto", Kind: kindFloat, Default: "0"},
	{Name: domain.FieldEngageDate, Label: "Data de Engajamento (AAAA-MM-DD, vazio = sem data)", Kind: kindDate},
	{Name: domain.FieldCloseDate, Label: "Previsão de Fechamento (AAAA-MM-DD, vazio = sem data)", Kind: kindDate},
}
