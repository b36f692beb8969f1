package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"increa_invoicing/internal/domain/entities"
	"increa_invoicing/internal/infrastructure/logger"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// loadExport reads the projects named by the --file flag.
func loadExport(cmd *cobra.Command) ([]entities.Project, error) {
	path, _ := cmd.Flags().GetString("file")

	var in io.Reader
	if path == "-" {
		in = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open export: %w", err)
		}
		defer f.Close()
		in = f
	}
	return decodeExport(in)
}

// exportRow is one record of the project listing. The amount is kept raw so
// exports that quote it or carry placeholders still load.
type exportRow struct {
	ID          string          `json:"id"`
	FileNumber  string          `json:"file_number"`
	Name        string          `json:"name"`
	Department  string          `json:"department"`
	Client      string          `json:"client"`
	BaseAmount  json.RawMessage `json:"base_amount"`
	Status      string          `json:"status"`
	IssueDate   string          `json:"issue_date"`
	PaymentDate string          `json:"payment_date"`
	Notes       string          `json:"notes"`
}

// parseExportAmount accepts a JSON number or a quoted decimal.
func parseExportAmount(raw json.RawMessage) (decimal.Decimal, bool) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return decimal.Zero, true
	}
	s = strings.TrimSpace(strings.Trim(s, `"`))
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// decodeExport converts the API project listing back into projects.
// Records with an unknown department or status are kept; the reports leave
// them out of the affected buckets.
func decodeExport(r io.Reader) ([]entities.Project, error) {
	log := logger.WithComponent("export")

	var rows []exportRow
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode export: %w", err)
	}

	projects := make([]entities.Project, 0, len(rows))
	for i, row := range rows {
		p := entities.Project{
			ID:         row.ID,
			FileNumber: row.FileNumber,
			Name:       row.Name,
			Department: entities.Department(row.Department),
			Client:     row.Client,
			Status:     entities.ProjectStatus(row.Status),
			Notes:      row.Notes,
		}
		if d, ok := entities.ParseDepartment(row.Department); ok {
			p.Department = d
		}
		if s, ok := entities.ParseProjectStatus(row.Status); ok {
			p.Status = s
		}
		amount, ok := parseExportAmount(row.BaseAmount)
		if !ok {
			log.Warn().Int("row", i).Str("base_amount", string(row.BaseAmount)).Msg("unparseable base amount, using zero")
		}
		p.SetBaseAmount(amount)

		if row.IssueDate != "" {
			d, err := entities.ParseDate(row.IssueDate)
			if err != nil {
				log.Warn().Int("row", i).Str("issue_date", row.IssueDate).Msg("unparseable issue date")
			} else {
				p.IssueDate = d
			}
		}
		if row.PaymentDate != "" {
			if d, err := entities.ParseDate(row.PaymentDate); err == nil {
				p.PaymentDate = &d
			}
		}
		projects = append(projects, p)
	}
	log.Debug().Int("projects", len(projects)).Msg("export loaded")
	return projects, nil
}
