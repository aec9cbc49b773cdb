package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/forgeledger/forgeledger/internal/daemon"
)

func init() {
	achievementsCmd.Flags().IntVar(&achievementsLimit, "limit", 20, "Maximum entries to show")
	rootCmd.AddCommand(achievementsCmd)
}

var achievementsLimit int

var achievementsCmd = &cobra.Command{
	Use:     "achievements",
	Aliases: []string{"log"},
	Short:   "Show the achievement log, newest first",
	RunE:    runAchievements,
}

func runAchievements(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	entries, err := d.Ledger.Achievements(achievementsLimit)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No achievements yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tTITLE\tPOINTS\tCATEGORY")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
			e.EarnedAt.Format("2006-01-02 15:04"), e.Title, e.Points, e.Category)
	}
	return w.Flush()
}
