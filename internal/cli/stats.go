package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/forgeledger/forgeledger/internal/daemon"
	"github.com/forgeledger/forgeledger/internal/domain"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the weekly activity and category breakdown",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	week, err := d.Ledger.WeeklyStats(time.Now())
	if err != nil {
		return err
	}

	fmt.Println("Last 7 days:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tXP\tENTRIES")
	for _, day := range week {
		fmt.Fprintf(w, "%s\t%d\t%d\n", day.Date, day.XP, day.Entries)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	totals, err := d.Ledger.CategoryBreakdown()
	if err != nil {
		return err
	}

	fmt.Println("\nPoints by category:")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, cat := range []domain.Category{
		domain.CatLesson, domain.CatMilestone, domain.CatStreak, domain.CatCommunity,
	} {
		fmt.Fprintf(w, "%s\t%d\n", cat, totals[cat])
	}
	return w.Flush()
}
