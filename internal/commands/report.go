package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/SscSPs/mof_report_service/internal/adapters/parquetio"
	"github.com/SscSPs/mof_report_service/internal/adapters/storage/localstore"
	"github.com/SscSPs/mof_report_service/internal/apperrors"
	"github.com/SscSPs/mof_report_service/internal/core/domain"
	"github.com/SscSPs/mof_report_service/internal/core/services"
	"github.com/SscSPs/mof_report_service/internal/core/statements"
	"github.com/SscSPs/mof_report_service/internal/dto"
	"github.com/SscSPs/mof_report_service/internal/ingest"
	"github.com/SscSPs/mof_report_service/internal/middleware"
	"github.com/SscSPs/mof_report_service/internal/repositories/file"
	"github.com/SscSPs/mof_report_service/internal/repositories/snapshot"
	"github.com/spf13/cobra"
)

const glTemplateName = "GL_DATA"

type reportOptions struct {
	gl          string
	templates   string
	companyType string
	year        int
	periodCode  string
	periodValue int
	opening     string
	out         string
	user        string
	userID      string
	reportCode  string
	ordering    string
	closingNet  bool
	prefix      string
	columns     map[string]string
}

func newReportCommand(newLogger func(*cobra.Command) *slog.Logger) *cobra.Command {
	opts := reportOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Import a GL export and derive the financial statements into a local directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.userID == "" {
				opts.userID = opts.user
			}
			ctx := middleware.WithLogger(cmd.Context(), newLogger(cmd))
			return runReport(ctx, opts, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.gl, "gl", "", "general-ledger export, CSV or XLSX (required)")
	flags.StringVar(&opts.templates, "templates", "", "YAML file with report templates and charts of accounts (required)")
	flags.StringVar(&opts.companyType, "company-type", "", "company type selecting the templates (required)")
	flags.IntVar(&opts.year, "year", 0, "report year (required)")
	flags.StringVar(&opts.periodCode, "period-code", "", "MONTHLY, QUARTERLY or YEARLY (required)")
	flags.IntVar(&opts.periodValue, "period-value", 0, "month, quarter or half within the year (required)")
	flags.StringVar(&opts.opening, "opening", "", "closing trial balance parquet of the previous period")
	flags.StringVar(&opts.out, "out", "out", "directory that receives the snapshots and reports")
	flags.StringVar(&opts.user, "user", "", "user name used in artifact names (required)")
	flags.StringVar(&opts.userID, "user-id", "", "user id selecting the chart of accounts (default --user)")
	flags.StringVar(&opts.reportCode, "report-code", "BCTC", "report code used in artifact names")
	flags.StringVar(&opts.ordering, "ordering", string(statements.OrderingPriority), "evaluation order of total lines: priority or topological")
	flags.BoolVar(&opts.closingNet, "closing-net-details", false, "fill balance sheet detail lines without DUNO/DUCO terms from the closing net of their code")
	flags.StringVar(&opts.prefix, "prefix", services.DefaultStoragePrefix, "key prefix inside the output directory")
	flags.StringToStringVar(&opts.columns, "map", nil, "GL header for a standard column, e.g. DEBIT_ACC=\"TK No\"")
	for _, name := range []string{"gl", "templates", "company-type", "year", "period-code", "period-value", "user"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

// ledgerSettings maps the GL headers onto the ledger columns. Headers default
// to the standard names.
func ledgerSettings(columns map[string]string) ([]ingest.ColumnSetting, error) {
	notNull := false
	settings := []ingest.ColumnSetting{
		{StandardName: domain.ColumnDebitAccount, DataType: "text", AllowNull: &notNull},
		{StandardName: domain.ColumnCreditAccount, DataType: "text", AllowNull: &notNull},
		{StandardName: domain.ColumnDebitAmount, DataType: "double"},
		{StandardName: domain.ColumnCreditAmount, DataType: "double"},
		{StandardName: domain.ColumnInvoiceDate, DataType: "date"},
	}
	known := make(map[string]bool, len(settings))
	for i := range settings {
		s := &settings[i]
		known[s.StandardName] = true
		s.VariableType = ingest.VariableTypeInfo
		s.ImportName = s.StandardName
		if header, ok := columns[s.StandardName]; ok {
			s.ImportName = header
		}
	}

	var unknown []string
	for name := range columns {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("%w: --map names unknown ledger columns %v", apperrors.ErrValidation, unknown)
	}
	return settings, nil
}

// localFile reads uploads from disk so the import pipeline runs offline.
type localFile struct{}

func (localFile) Fetch(_ context.Context, name string) (*ingest.File, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return &ingest.File{Name: filepath.Base(name), Ext: ingest.Extension(name), Data: data}, nil
}

func runReport(ctx context.Context, opts reportOptions, stdout io.Writer) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	settings, err := ledgerSettings(opts.columns)
	if err != nil {
		return err
	}
	ordering, err := statements.ParseOrdering(opts.ordering)
	if err != nil {
		return err
	}
	templates, err := file.LoadTemplateRepository(opts.templates)
	if err != nil {
		return err
	}
	store, err := localstore.New(opts.out)
	if err != nil {
		return err
	}
	snapshots := snapshot.NewSnapshotRepository(store)

	importer := services.NewDataImportService(snapshots,
		services.WithFileFetcher(localFile{}),
		services.WithImportStoragePrefix(opts.prefix),
	)
	importReq := dto.ImportDataRequest{JSONSettings: dto.ImportSettings{
		URL:          opts.gl,
		NameFunc:     "mof_cli",
		UserName:     opts.user,
		TemplateName: glTemplateName,
		SettingCols:  settings,
	}}

	report, err := importer.ValidateData(ctx, importReq)
	if err != nil {
		return err
	}
	if !report.IsValid() {
		return errors.New(report.Message())
	}
	imported, err := importer.ImportData(ctx, importReq)
	if err != nil {
		return err
	}
	logger.Info("GL imported", slog.String("key", imported.S3Key), slog.Int("rows", imported.Rows))

	req := dto.FinancialStatementRequest{
		UserID:            opts.userID,
		UserName:          opts.user,
		ReportCode:        opts.reportCode,
		ReportYear:        opts.year,
		ReportPeriodCode:  opts.periodCode,
		ReportPeriodValue: opts.periodValue,
		TypeCompany:       opts.companyType,
		GLDataSettings: dto.GLDataSettings{
			TableName:    imported.S3Key,
			TemplateName: glTemplateName,
			ValidStatus:  dto.StatusValidated,
			SettingCols: dto.SettingCols{VarSingleSettings: []dto.SingleVariableSetting{{
				DebitAccount:  []dto.AccountColumnSetting{{Cols: domain.ColumnDebitAccount, ValidMapping: dto.StatusValidated}},
				CreditAccount: []dto.AccountColumnSetting{{Cols: domain.ColumnCreditAccount, ValidMapping: dto.StatusValidated}},
			}}},
		},
	}

	if opts.opening != "" {
		data, err := os.ReadFile(opts.opening)
		if err != nil {
			return fmt.Errorf("failed to read opening balance: %w", err)
		}
		key := path.Join(opts.prefix, opts.user, "opening_balance", filepath.Base(opts.opening))
		if err := store.Put(ctx, key, data, parquetio.ContentType); err != nil {
			return err
		}
		req.BeginingTrialBalance = &dto.OpeningBalanceSettings{TableName: key, ValidStatus: dto.StatusCompleted}
	}

	reports := services.NewFinancialReportService(templates, snapshots,
		services.WithOrdering(ordering),
		services.WithBalanceSheetClosingNet(opts.closingNet),
		services.WithStoragePrefix(opts.prefix),
	)
	run, err := reports.Run(ctx, req)
	if err != nil {
		return err
	}

	for _, f := range run.SavedFiles {
		fmt.Fprintf(stdout, "%-14s %s\n", f.Type, filepath.Join(opts.out, filepath.FromSlash(f.Key)))
	}
	if !run.Summary.HasOpeningBalance && opts.opening != "" {
		fmt.Fprintln(stdout, "warning: the opening balance could not be read and was ignored")
	}
	return nil
}
