package main

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/officehr-backend-go/internal/pkg/storage"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(payrollCmd)
	payrollCmd.AddCommand(payrollGenerateCmd)

	now := time.Now()
	payrollGenerateCmd.Flags().Int("month", int(now.Month()), "Month to generate (1-12)")
	payrollGenerateCmd.Flags().Int("year", now.Year(), "Year to generate")
	payrollGenerateCmd.Flags().String("employee", "", "Generate a single employee instead of every active one")
}

var payrollCmd = &cobra.Command{
	Use:   "payroll",
	Short: "Payroll operations",
}

var payrollGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate salary records for a month",
	Long: `Generate salary records for a month. Without --employee every active
employee is processed and employees that already have a record are skipped.`,
	RunE: runPayrollGenerate,
}

func runPayrollGenerate(cmd *cobra.Command, args []string) error {
	month, _ := cmd.Flags().GetInt("month")
	year, _ := cmd.Flags().GetInt("year")
	employeeID, _ := cmd.Flags().GetString("employee")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := connect(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		return err
	}
	svc, err := newServices(cfg, db, fileStorage)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if employeeID != "" {
		record, err := svc.payroll.GenerateSalary(cmd.Context(), systemIdentity, payroll.GenerateSalaryRequest{
			EmployeeID: employeeID,
			Month:      month,
			Year:       year,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Generated %s: net %s\n", record.EmployeeID, record.NetSalary.StringFixed(2))
		return nil
	}

	result, err := svc.payroll.GenerateBatch(cmd.Context(), systemIdentity, payroll.GenerateBatchRequest{Month: month, Year: year})
	if err != nil {
		return err
	}
	for _, record := range result.Generated {
		fmt.Fprintf(out, "Generated %s: net %s\n", record.EmployeeID, record.NetSalary.StringFixed(2))
	}
	for _, skipped := range result.Skipped {
		fmt.Fprintf(out, "Skipped %s: %s\n", skipped.EmployeeID, skipped.Reason)
	}
	fmt.Fprintf(out, "%04d-%02d: %d generated, %d skipped\n", year, month, len(result.Generated), len(result.Skipped))
	return nil
}
