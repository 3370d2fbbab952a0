package commands_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SscSPs/mof_report_service/internal/commands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const templatesYAML = `
templates:
  NONLIFE:
    BALANCE_SHEET:
      - {line_code: "1", code: "110", formula: "DUNO(110)"}
      - {line_code: "2", code: "130", formula: "DUNO(130)+DUCO(130)"}
      - {line_code: "3", code: "270", is_total_line: true, formula: "[110]+[130]"}
      - {line_code: "4", code: "411", formula: "-DUCO(411)"}
      - {line_code: "5", code: "421", formula: "-DUNO(421)-DUCO(421)"}
      - {line_code: "6", code: "440", is_total_line: true, formula: "[411]+[421]"}
    PL01:
      - {line_code: "1", code: "01", formula: "-PhatSinhCO"}
      - {line_code: "2", code: "02", formula: "-PhatSinhNO"}
      - {line_code: "3", code: "50", is_total_line: true, formula: "[01]-[02]"}
    PL02:
      - {line_code: "1", code: "60", is_total_line: true, formula: "[01]-[02]"}
    CF01:
      - {line_code: "1", code: "01", formula: "PL(50)"}
charts:
  u-1:
    - {code: "111", account_sm: "111", account_bs: "110"}
    - {code: "131", account_sm: "131", account_bs: "130"}
    - {code: "411", account_sm: "411", account_bs: "411"}
    - {code: "421", account_sm: "421", account_bs: "421"}
    - {code: "511", account_sm: "511", account_pl: "01"}
    - {code: "642", account_sm: "642", account_pl: "02"}
    - {code: "911", account_sm: "911"}
`

// capital in January, a credit sale and a cash expense in March, then the
// closing entries through 911
const glCSV = `So cai thang 3
TK No,CREDIT_ACC,DEBIT_AMT,CREDIT_AMT,INVOICE_DATE
111,411,1000,,10/01/2024
411,111,,1000,10/01/2024
131,511,500,,05/03/2024
511,131,,500,05/03/2024
642,111,200,,06/03/2024
111,642,,200,06/03/2024
511,911,500,,31/03/2024
911,511,,500,31/03/2024
911,642,200,,31/03/2024
642,911,,200,31/03/2024
911,421,300,,31/03/2024
421,911,,300,31/03/2024
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := commands.NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func reportArgs(dir, gl string) []string {
	return []string{"report",
		"--gl", gl,
		"--templates", filepath.Join(dir, "templates.yaml"),
		"--company-type", "NONLIFE",
		"--year", "2024",
		"--period-code", "MONTHLY",
		"--period-value", "3",
		"--user", "acme",
		"--user-id", "u-1",
		"--out", filepath.Join(dir, "out"),
		"--map", "DEBIT_ACC=TK No",
	}
}

func TestReport_WritesStatements(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "templates.yaml", templatesYAML)
	gl := writeFile(t, dir, "GL_20240401093000.csv", glCSV)

	out, err := runCLI(t, reportArgs(dir, gl)...)
	require.NoError(t, err, out)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "trial_balance"))
	assert.True(t, strings.HasPrefix(lines[4], "cf01"))

	bs := filepath.Join(dir, "out", "report-software", "mof", "acme", "financial_reports", "acme_BCTC_2024MONTHLY3_BALANCE_SHEET.parquet")
	assert.Contains(t, out, bs)
	_, err = os.Stat(bs)
	require.NoError(t, err)

	imported := filepath.Join(dir, "out", "report-software", "mof", "acme", "analysis_data", "acme_GL_DATA_IMPORT_20240401093000.parquet")
	_, err = os.Stat(imported)
	require.NoError(t, err)

	// the closing trial balance seeds the next period
	tb := strings.TrimSpace(strings.TrimPrefix(lines[0], "trial_balance"))
	next := reportArgs(dir, gl)
	next[12] = "4"
	next = append(next, "--opening", tb)
	out, err = runCLI(t, next...)
	require.NoError(t, err, out)
	assert.NotContains(t, out, "warning")
	assert.Contains(t, out, "acme_BCTC_2024MONTHLY4_BALANCE_SHEET.parquet")
}

func TestReport_RejectsInvalidData(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "templates.yaml", templatesYAML)
	gl := writeFile(t, dir, "GL.csv", strings.Replace(glCSV, "111,411,1000,", "111,411,abc,", 1))

	_, err := runCLI(t, reportArgs(dir, gl)...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Data validation failed")
	assert.Contains(t, err.Error(), "DEBIT_AMT")
}

func TestReport_RejectsUnknownMapping(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "templates.yaml", templatesYAML)
	gl := writeFile(t, dir, "GL.csv", glCSV)

	args := append(reportArgs(dir, gl), "--map", "POLICY_ID=So HD")
	_, err := runCLI(t, args...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POLICY_ID")
}
