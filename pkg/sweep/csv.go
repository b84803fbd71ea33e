package sweep

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
)

// ColumnCase is the identifier column of the grid.
const ColumnCase = "Case"

// ErrMissingCaseColumn is returned when a grid file has no Case column.
var ErrMissingCaseColumn = errors.New("missing Case column")

// Header is the column layout of the grid and sample preset files.
var Header = []string{
	ColumnCase, "Symbol", ParamKSwing, ParamNBos, ParamLookbackInternal, "M_retest",
	"EqTol", "BOSBufferPoints", "UseKillzones", "UseRoundNumber", "RNDelta",
	ParamRiskPerTradePct, "SL_BufferUSD", "TP1_R", ParamTP2R, "BE_Activate_R",
	"PartialClosePct", "TimeStopMinutes", "MinProgressR", "MaxSpreadUSD",
	"MaxOpenPositions", "UsePendingRetest", "RetestOffsetUSD", "PendingExpirySec",
	"CooldownSec", "ATRScalingPeriod", "SL_ATR_Mult", "Retest_ATR_Mult",
	"MaxSpread_ATR_Mult", "RNDelta_ATR_Mult", "PendingExpiryMinutes",
	"UseHTFFilter", ParamHTFEMAPeriod, ParamEntryOffsetPips,
}

// WriteCases writes the header followed by one row per case. Rows end in
// CRLF, which is what the EA side has always been fed.
func WriteCases(w io.Writer, header []string, cases []Case) error {
	writer := csv.NewWriter(w)
	writer.UseCRLF = true

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, c := range cases {
		if err := writer.Write(c.Record(header)); err != nil {
			return fmt.Errorf("failed to write case %d: %w", c.ID, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// SaveCases writes cases to filePath, replacing any existing file.
func SaveCases(filePath string, header []string, cases []Case) (err error) {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", cerr)
		}
	}()

	return WriteCases(file, header, cases)
}

// ReadCases parses a grid written by WriteCases. Empty cells are left out of
// Params, and Phase is not recoverable from the file.
func ReadCases(r io.Reader) ([]string, []Case, error) {
	lines, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(lines) == 0 {
		return nil, nil, io.ErrUnexpectedEOF
	}

	header := lines[0]
	caseIdx := slices.Index(header, ColumnCase)
	if caseIdx < 0 {
		return nil, nil, ErrMissingCaseColumn
	}

	cases := make([]Case, 0, len(lines)-1)
	for lineNo, line := range lines[1:] {
		id, err := strconv.Atoi(line[caseIdx])
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: invalid case id %q: %w", lineNo+2, line[caseIdx], err)
		}

		params := make(ParameterSet, len(header)-1)
		for i, column := range header {
			if i == caseIdx || line[i] == "" {
				continue
			}
			params[column] = ParseValue(line[i])
		}

		cases = append(cases, Case{ID: id, Params: params})
	}

	return header, cases, nil
}

// LoadCases reads a grid file from disk.
func LoadCases(filePath string) ([]string, []Case, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	return ReadCases(file)
}
