package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/launch-watch/internal/domain"
	"github.com/spec-kit/launch-watch/internal/repository"
)

var (
	exportLimit    int
	exportNoHeader bool
)

// exportCmd dumps the sheet
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the configured sheet as CSV to stdout",
	Long: `Export opens the sheet selected by SHEET_BACKEND and writes every row in append order.

The memory backend is process local, so exporting it always yields only the header.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		handles, closeHandles, err := repository.Connect(ctx, cfg, logger)
		defer closeHandles()
		if err != nil {
			return err
		}
		sheet, err := repository.OpenSheet(cfg.Sheet, handles)
		if err != nil {
			return err
		}
		logger.Debug("exporting sheet", zap.String("sheet", sheet.Name()), zap.Int("limit", exportLimit))
		return exportSheet(ctx, cmd.OutOrStdout(), sheet, exportLimit, !exportNoHeader)
	},
}

func exportSheet(ctx context.Context, out io.Writer, sheet repository.LeadSheet, limit int, header bool) error {
	rows, err := sheet.Rows(ctx, limit)
	if err != nil {
		return fmt.Errorf("read sheet %s: %w", sheet.Name(), err)
	}

	w := csv.NewWriter(out)
	if header {
		if err := w.Write(domain.Header); err != nil {
			return err
		}
	}
	for i, row := range rows {
		if _, err := domain.LeadFromRow(row); err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
