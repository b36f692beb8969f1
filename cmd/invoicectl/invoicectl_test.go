package main

import (
	"bytes"
	"strings"
	"testing"

	"increa_invoicing/internal/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const export = `[
  {"id":"a","file_number":"E-1","name":"Puente","department":"civil_works","client":"Ayto","base_amount":1000,"status":"paid","issue_date":"2025-03-03","payment_date":"2025-04-01"},
  {"id":"b","file_number":"E-2","name":"Nave","department":"Industrial","client":"Acme","base_amount":500,"status":"Enviada","issue_date":"2025-03-20"},
  {"id":"c","file_number":"E-3","name":"Modelo","department":"bim","client":"Acme","base_amount":100,"status":"pending","issue_date":"not-a-date"}
]`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(export))
	cmd.SetArgs(append(args, "--file", "-"))
	err := cmd.Execute()
	return out.String(), err
}

func TestDecodeExport(t *testing.T) {
	projects, err := decodeExport(strings.NewReader(export))
	require.NoError(t, err)
	require.Len(t, projects, 3)

	assert.Equal(t, entities.DepartmentCivilWorks, projects[0].Department)
	assert.Equal(t, "1210.00", projects[0].TotalAmount.StringFixed(2))
	require.NotNil(t, projects[0].PaymentDate)
	assert.Equal(t, entities.ProjectStatusSent, projects[1].Status)
	assert.True(t, projects[2].IssueDate.IsZero(), "bad dates are left empty")

	_, err = decodeExport(strings.NewReader("{"))
	assert.Error(t, err)
}

func TestDecodeExport_LenientAmounts(t *testing.T) {
	in := `[
		{"id":"q","file_number":"EXP-010","department":"BIM","status":"paid","base_amount":"1000.00","issue_date":"2025-04-01"},
		{"id":"na","file_number":"EXP-011","department":"BIM","status":"pending","base_amount":"n/a","issue_date":"2025-04-02"},
		{"id":"nil","file_number":"EXP-012","department":"BIM","status":"pending","issue_date":"2025-04-03"}
	]`

	projects, err := decodeExport(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, projects, 3)

	assert.Equal(t, "1000.00", projects[0].BaseAmount.StringFixed(2))
	assert.Equal(t, "1210.00", projects[0].TotalAmount.StringFixed(2))
	assert.Equal(t, "na", projects[1].ID)
	assert.True(t, projects[1].BaseAmount.IsZero())
	assert.True(t, projects[1].TotalAmount.IsZero())
	assert.True(t, projects[2].TotalAmount.IsZero())
}

func TestReportCmd_Monthly(t *testing.T) {
	out, err := run(t, "report", "--mode", "monthly", "--year", "2025")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 13)
	assert.Contains(t, lines[0], "PAGADA")
	assert.Contains(t, lines[3], "Mar")
	assert.Contains(t, lines[3], "1210.00")
	assert.Contains(t, lines[3], "605.00")
	assert.Contains(t, lines[3], "1815.00")
}

func TestReportCmd_Department(t *testing.T) {
	out, err := run(t, "report", "--mode", "departamento")
	require.NoError(t, err)
	assert.Contains(t, out, "Obra Civil")
	assert.Contains(t, out, "121.00")
}

func TestReportCmd_InvalidFlags(t *testing.T) {
	out, err := run(t, "report", "--mode", "hourly")
	assert.Error(t, err)
	assert.NotContains(t, out, "Error:", "main reports command errors once")

	_, err = run(t, "report", "--year", "12")
	assert.Error(t, err)
}

func TestDepartmentsCmd(t *testing.T) {
	out, err := run(t, "departments")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[1], "Obra Civil")
	assert.Contains(t, lines[1], "100.00%")
}

func TestSummaryCmd(t *testing.T) {
	out, err := run(t, "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "Proyectos")
	assert.Contains(t, out, "1936.00")
	assert.Contains(t, out, "726.00")
}

func TestLoadExport_MissingFile(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"summary", "--file", "/does/not/exist.json"})
	assert.Error(t, cmd.Execute())
}
