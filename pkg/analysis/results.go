// Package analysis summarises the backtest results reported for a generated
// grid, grouping rows into PresetID families.
package analysis

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Results columns.
const (
	ColumnPresetID           = "PresetID"
	ColumnProfitFactor       = "ProfitFactor"
	ColumnWinRate            = "WinRate"
	ColumnNetProfit          = "NetProfit"
	ColumnMaxDrawdownPercent = "MaxDrawdownPercent"
	ColumnSharpeRatio        = "SharpeRatio"
	ColumnTotalTrades        = "TotalTrades"

	ColumnPOIType         = "POIType"
	ColumnUseHTFFilter    = "UseHTFFilter"
	ColumnRiskPerTradePct = "RiskPerTradePct"
	ColumnKSwing          = "K_swing"
	ColumnNBos            = "N_bos"
	ColumnTP2R            = "TP2_R"

	ColumnFamily = "Family"
)

var (
	ErrMissingColumn = errors.New("missing results column")
	ErrNoResults     = errors.New("no results")
)

// RequiredColumns must be present in every results file.
var RequiredColumns = []string{
	ColumnPresetID,
	ColumnProfitFactor,
	ColumnWinRate,
	ColumnNetProfit,
	ColumnMaxDrawdownPercent,
	ColumnSharpeRatio,
	ColumnTotalTrades,
}

// Row is one backtest run. Raw keeps every cell of the line by column name.
// A blank metric cell reads as NaN and is skipped by the averages.
type Row struct {
	PresetID           int
	Family             string
	ProfitFactor       float64
	WinRate            float64
	NetProfit          float64
	MaxDrawdownPercent float64
	SharpeRatio        float64
	TotalTrades        float64
	Raw                map[string]string
}

// Value returns the raw cell of column and whether it is present and non-empty.
func (r Row) Value(column string) (string, bool) {
	value, ok := r.Raw[column]
	return value, ok && value != ""
}

// Float parses column as a number.
func (r Row) Float(column string) (float64, bool) {
	value, ok := r.Value(column)
	if !ok {
		return 0, false
	}
	number, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return number, true
}

// Bool parses column as a boolean, accepting true/false, True/False and 1/0.
func (r Row) Bool(column string) (bool, bool) {
	value, ok := r.Value(column)
	if !ok {
		return false, false
	}
	flag, err := strconv.ParseBool(value)
	if err != nil {
		return false, false
	}
	return flag, true
}

// Results is a loaded results file.
type Results struct {
	Header []string
	Rows   []Row
}

// Has reports whether the results file carried column.
func (r *Results) Has(column string) bool {
	return lo.Contains(r.Header, column)
}

// Classify assigns every row to the first family whose range contains its
// PresetID, or to UnknownFamily.
func (r *Results) Classify(families []Family) {
	for i := range r.Rows {
		r.Rows[i].Family = FamilyOf(families, r.Rows[i].PresetID)
	}
}

// LoadResults reads a results CSV from path.
func LoadResults(path string) (*Results, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	results, err := ReadResults(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return results, nil
}

// ReadResults parses a results CSV. The first line is the header.
func ReadResults(r io.Reader) (*Results, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	lines, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrNoResults
	}

	header := lo.Map(lines[0], func(column string, _ int) string {
		return strings.TrimSpace(strings.TrimPrefix(column, "\ufeff"))
	})
	headerMap := parseHeaders(header)
	for _, column := range RequiredColumns {
		if _, ok := headerMap[column]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, column)
		}
	}

	rows := make([]Row, 0, len(lines)-1)
	for i, line := range lines[1:] {
		row, err := parseRow(line, header, headerMap)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}

	return &Results{Header: header, Rows: rows}, nil
}

func parseHeaders(header []string) map[string]int {
	headerMap := make(map[string]int, len(header))
	for index, column := range header {
		if _, exists := headerMap[column]; !exists {
			headerMap[column] = index
		}
	}
	return headerMap
}

func parseRow(line, header []string, headerMap map[string]int) (Row, error) {
	row := Row{Raw: make(map[string]string, len(header))}
	for index, column := range header {
		if index < len(line) {
			row.Raw[column] = strings.TrimSpace(line[index])
		}
	}

	cell := func(column string) string {
		if index := headerMap[column]; index < len(line) {
			return strings.TrimSpace(line[index])
		}
		return ""
	}

	id, err := strconv.ParseFloat(cell(ColumnPresetID), 64)
	if err != nil {
		return Row{}, fmt.Errorf("%s: %w", ColumnPresetID, err)
	}
	row.PresetID = int(id)

	fields := []struct {
		column string
		target *float64
	}{
		{ColumnProfitFactor, &row.ProfitFactor},
		{ColumnWinRate, &row.WinRate},
		{ColumnNetProfit, &row.NetProfit},
		{ColumnMaxDrawdownPercent, &row.MaxDrawdownPercent},
		{ColumnSharpeRatio, &row.SharpeRatio},
		{ColumnTotalTrades, &row.TotalTrades},
	}
	for _, field := range fields {
		value := cell(field.column)
		if value == "" {
			*field.target = math.NaN()
			continue
		}
		if *field.target, err = strconv.ParseFloat(value, 64); err != nil {
			return Row{}, fmt.Errorf("%s: %w", field.column, err)
		}
	}

	return row, nil
}
