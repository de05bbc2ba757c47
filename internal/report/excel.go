package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/doitintl/idlegw/pkg/types"
)

const summarySheet = "Summary"

// Excel limits sheet names to 31 characters.
const maxSheetName = 31

var summaryColumns = []string{
	"Account_ID", "Region", "VPC_ID", "VPC_Name",
	"Gateway_Type", "Gateway_ID", "Gateway_Name",
	"Total_Periods", "Idle_Periods", "Idle_Percentage",
	"Total_Bytes_In", "Total_Bytes_Out", "Total_Packets_In", "Total_Packets_Out",
	"Total_Connection_Attempts", "Total_Connection_Timeouts", "Port_Allocation_Errors",
	"Max_Active_Connections", "Avg_Active_Connections",
	"Total_Blackhole_Drops_Bytes", "Total_NoRoute_Drops_Bytes",
	"Total_Blackhole_Drops_Packets", "Total_NoRoute_Drops_Packets", "Status",
	"Total_Bytes", "Total_Packets", "Bytes_Per_Second_Avg", "Packets_Per_Second_Avg",
}

var sampleColumns = []string{
	"Gateway_ID", "Metric", "Timestamp", "Sum", "Average", "Maximum", "Minimum",
}

// SaveExcel writes the workbook: a Summary sheet with one row per gateway,
// then one detail sheet per gateway with its raw samples. Columns that do
// not apply to a gateway's kind are left blank, matching the union-of-kinds
// summary layout.
func (r *Report) SaveExcel(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := writeRow(f, summarySheet, 1, toAny(summaryColumns)); err != nil {
		return err
	}
	for i, s := range r.Summaries {
		if err := writeRow(f, summarySheet, i+2, summaryRow(s)); err != nil {
			return err
		}
	}
	autoFitColumns(f, summarySheet)

	for _, s := range r.Summaries {
		if err := r.writeGatewaySheet(f, s); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

func (r *Report) writeGatewaySheet(f *excelize.File, s types.AnalysisSummary) error {
	name := sheetName(f, s.GatewayName)
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", name, err)
	}

	if err := writeRow(f, name, 1, toAny(sampleColumns)); err != nil {
		return err
	}
	row := 2
	for _, sample := range r.Samples {
		if sample.GatewayID != s.GatewayID {
			continue
		}
		cells := []any{
			sample.GatewayID,
			sample.Metric,
			sample.Timestamp.UTC().Format(time.RFC3339),
			sample.Sum,
			sample.Average,
			sample.Maximum,
			sample.Minimum,
		}
		if err := writeRow(f, name, row, cells); err != nil {
			return err
		}
		row++
	}
	autoFitColumns(f, name)

	return nil
}

// sheetName truncates to the Excel limit, strips characters Excel rejects,
// and disambiguates collisions with a numeric suffix.
func sheetName(f *excelize.File, base string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, base)
	if name == "" {
		name = "Gateway"
	}
	if len(name) > maxSheetName {
		name = name[:maxSheetName]
	}

	candidate := name
	for n := 2; ; n++ {
		if idx, _ := f.GetSheetIndex(candidate); idx < 0 {
			return candidate
		}
		suffix := fmt.Sprintf("_%d", n)
		trimmed := name
		if len(trimmed)+len(suffix) > maxSheetName {
			trimmed = trimmed[:maxSheetName-len(suffix)]
		}
		candidate = trimmed + suffix
	}
}

func summaryRow(s types.AnalysisSummary) []any {
	row := []any{
		s.AccountID, s.Region, s.VPCID, s.VPCName,
		string(s.GatewayType), s.GatewayID, s.GatewayName,
		s.TotalPeriods, s.IdlePeriods, s.IdlePercentage,
		s.TotalBytesIn, s.TotalBytesOut, s.TotalPacketsIn, s.TotalPacketsOut,
	}
	if s.GatewayType == types.KindNAT {
		row = append(row,
			s.TotalConnectionAttempts, s.TotalConnectionTimeouts, s.PortAllocationErrors,
			s.MaxActiveConnections, s.AvgActiveConnections,
			nil, nil, nil, nil, nil,
		)
	} else {
		row = append(row,
			nil, nil, nil, nil, nil,
			s.BlackholeDropBytes, s.NoRouteDropBytes,
			s.BlackholeDropPackets, s.NoRouteDropPackets, s.Status,
		)
	}
	return append(row,
		s.TotalBytes, s.TotalPackets, s.BytesPerSecondAvg, s.PacketsPerSecondAvg,
	)
}

func writeRow(f *excelize.File, sheet string, row int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d of %q: %w", row, sheet, err)
	}
	return nil
}

// autoFitColumns approximates column auto-fit: widest cell content plus
// padding, capped at 50.
func autoFitColumns(f *excelize.File, sheet string) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return
	}

	widths := make(map[int]int)
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			continue
		}
		width := float64(w + 2)
		if width > 50 {
			width = 50
		}
		f.SetColWidth(sheet, col, col, width)
	}
}

func toAny(in []string) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
