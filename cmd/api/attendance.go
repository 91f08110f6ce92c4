package main

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/officehr-backend-go/internal/pkg/storage"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(attendanceCmd)
	attendanceCmd.AddCommand(markAbsentCmd)

	markAbsentCmd.Flags().String("date", "", "Date to mark, YYYY-MM-DD (default yesterday)")
}

var attendanceCmd = &cobra.Command{
	Use:   "attendance",
	Short: "Attendance operations",
}

var markAbsentCmd = &cobra.Command{
	Use:   "mark-absent",
	Short: "Record absences for active employees without attendance on a date",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, _ := cmd.Flags().GetString("date")
		if date == "" {
			date = time.Now().AddDate(0, 0, -1).Format("2006-01-02")
		}

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

		result, err := svc.attendance.MarkAbsent(cmd.Context(), systemIdentity, attendance.MarkAbsentRequest{Date: date})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d marked absent\n", result.Date, result.Marked)
		return nil
	},
}
