// schedctl is an operations CLI that runs scheduling passes and reports
// against the local database, without going through the HTTP API.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/arnavshah/jobshop-scheduler-go/pkg/database"
	"github.com/arnavshah/jobshop-scheduler-go/pkg/engine"
	"github.com/arnavshah/jobshop-scheduler-go/pkg/store"
)

func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	root := &cobra.Command{
		Use:   "schedctl",
		Short: "Job-shop scheduler operations CLI",
	}
	root.AddCommand(autoScheduleCmd(), utilizationCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newEngine() (*engine.Engine, *store.Store) {
	db := database.InitDB()
	s := store.New(db)
	return engine.New(s), s
}

func autoScheduleCmd() *cobra.Command {
	var lookahead int
	cmd := &cobra.Command{
		Use:   "autoschedule",
		Short: "Assign every unscheduled job to its best available slot",
		RunE: func(cmd *cobra.Command, args []string) error {
			db := database.InitDB()
			s := store.New(db)
			var opts []engine.Option
			if lookahead > 0 {
				opts = append(opts, engine.WithLookahead(lookahead))
			}
			eng := engine.New(s, opts...)

			report, err := eng.AutoScheduleAll()
			if err != nil {
				return err
			}

			for _, outcome := range report.Outcomes {
				if outcome.Scheduled {
					fmt.Printf("scheduled  %-12s %s\n", outcome.JobID, outcome.Title)
				} else {
					fmt.Printf("failed     %-12s %s: %s\n", outcome.JobID, outcome.Title, outcome.Reason)
				}
			}
			fmt.Printf("\n%d scheduled, %d failed\n", report.Scheduled, report.Failed)
			return nil
		},
	}
	cmd.Flags().IntVar(&lookahead, "days", 0, "lookahead horizon in days (default 14)")
	return cmd
}

func utilizationCmd() *cobra.Command {
	var fromStr, toStr string
	cmd := &cobra.Command{
		Use:   "utilization",
		Short: "Report committed vs. available hours per staff member",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, s := newEngine()

			from, err := time.Parse("2006-01-02", fromStr)
			if err != nil {
				return fmt.Errorf("--from must be YYYY-MM-DD: %w", err)
			}
			to, err := time.Parse("2006-01-02", toStr)
			if err != nil {
				return fmt.Errorf("--to must be YYYY-MM-DD: %w", err)
			}

			staff, err := s.ListStaff()
			if err != nil {
				return err
			}

			fmt.Printf("%-20s %10s %10s %8s\n", "STAFF", "SCHEDULED", "CAPACITY", "UTIL")
			for _, member := range staff {
				report, err := eng.ComputeUtilization(member, from, to)
				if err != nil {
					return err
				}
				flag := ""
				if report.IsOverCapacity {
					flag = "  OVER"
				}
				fmt.Printf("%-20s %9.1fh %9.1fh %7.0f%%%s\n",
					member.Name, report.ScheduledHours, report.TotalCapacityHours, report.Utilization, flag)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&fromStr, "from", time.Now().Format("2006-01-02"), "range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toStr, "to", time.Now().AddDate(0, 0, 6).Format("2006-01-02"), "range end (YYYY-MM-DD)")
	return cmd
}
