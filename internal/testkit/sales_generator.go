package testkit

import (
	"fmt"
	"math/rand"
	"time"
)

// SalesHeaders mirror the columns of the refined NYC rolling-sales exports
var SalesHeaders = []string{
	"BOROUGH",
	"NEIGHBORHOOD",
	"BUILDING CLASS CATEGORY",
	"ADDRESS",
	"ZIP CODE",
	"RESIDENTIAL UNITS",
	"COMMERCIAL UNITS",
	"TOTAL UNITS",
	"GROSS SQUARE\nFEET",
	"YEAR BUILT",
	"SALE PRICE",
	"SALE DATE",
}

// SalesGeneratorConfig configures the sales data generator
type SalesGeneratorConfig struct {
	Year     int   `json:"year"`
	RowCount int   `json:"row_count"`
	Seed     int64 `json:"seed"`
}

// DefaultSalesConfig returns a small year of sales
func DefaultSalesConfig(year int) SalesGeneratorConfig {
	return SalesGeneratorConfig{Year: year, RowCount: 25, Seed: int64(year)}
}

var neighborhoods = []string{"CHELSEA", "HARLEM-CENTRAL", "UPPER EAST SIDE (59-79)", "TRIBECA", "MIDTOWN WEST"}
var categories = []string{"01 ONE FAMILY DWELLINGS", "07 RENTALS - WALKUP APARTMENTS", "13 CONDOS - ELEVATOR APARTMENTS"}
var streets = []string{"WEST 23RD STREET", "LENOX AVENUE", "EAST 72ND STREET", "HUDSON STREET", "8TH AVENUE"}

// SalesDataGenerator generates rows shaped like one year of Manhattan sales
type SalesDataGenerator struct {
	config SalesGeneratorConfig
	rng    *rand.Rand
}

// NewSalesDataGenerator creates a new sales data generator
func NewSalesDataGenerator(config SalesGeneratorConfig) *SalesDataGenerator {
	return &SalesDataGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// GenerateRows returns the header row followed by RowCount data rows
func (g *SalesDataGenerator) GenerateRows() [][]interface{} {
	rows := make([][]interface{}, 0, g.config.RowCount+1)

	header := make([]interface{}, len(SalesHeaders))
	for i, h := range SalesHeaders {
		header[i] = h
	}
	rows = append(rows, header)

	for i := 0; i < g.config.RowCount; i++ {
		rows = append(rows, g.generateSale())
	}
	return rows
}

func (g *SalesDataGenerator) generateSale() []interface{} {
	residential := g.rng.Intn(40)
	commercial := g.rng.Intn(3)
	saleDate := time.Date(g.config.Year, time.Month(1+g.rng.Intn(12)), 1+g.rng.Intn(28), 0, 0, 0, 0, time.UTC)

	return []interface{}{
		1,
		neighborhoods[g.rng.Intn(len(neighborhoods))],
		categories[g.rng.Intn(len(categories))],
		fmt.Sprintf("%d %s", 1+g.rng.Intn(500), streets[g.rng.Intn(len(streets))]),
		10001 + g.rng.Intn(40),
		residential,
		commercial,
		residential + commercial,
		float64(1000+g.rng.Intn(90000)) + 0.5*float64(g.rng.Intn(2)),
		1880 + g.rng.Intn(140),
		250000 + g.rng.Intn(20)*125000,
		saleDate.Format("2006-01-02"),
	}
}

// WriteYear generates one year of sales and saves it as
// refined_<year>_manhattan.xlsx in dir
func (g *SalesDataGenerator) WriteYear(dir string) (string, error) {
	return WriteWorkbook(dir, fmt.Sprintf("refined_%d_manhattan.xlsx", g.config.Year), g.GenerateRows())
}
