package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample categories, job types, companies and jobs",
	Long: `Load a demo data set through the regular services.

Creates a staff account (testuser / testpass123), eight categories, five job
types, five companies and eight active postings that expire in 30 days.
Entries that already exist are left untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		container := NewContainer(cfg)
		defer container.Close()

		sum, err := container.Seeder.Run(cmd.Context())
		if err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(),
			"created %d categories, %d job types, %d companies, %d jobs (new user: %t)\n",
			sum.Categories, sum.JobTypes, sum.Companies, sum.Jobs, sum.User)
		return nil
	},
}
