package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/forgeledger/forgeledger/internal/daemon"
)

func init() {
	rootCmd.AddCommand(checkinCmd)
}

var checkinCmd = &cobra.Command{
	Use:   "checkin",
	Short: "Record today's activity for the streak",
	RunE:  runCheckin,
}

func runCheckin(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	res, err := d.Ledger.CheckIn(time.Now())
	if err != nil {
		return err
	}

	if !res.Advanced {
		fmt.Printf("Already checked in today. Streak: %d day(s).\n", res.Streak.CurrentDays)
		return nil
	}

	fmt.Printf("Checked in. Streak: %d day(s) (longest %d).\n",
		res.Streak.CurrentDays, res.Streak.LongestDays)
	if res.Milestone != nil {
		fmt.Printf("Milestone: %s (+%d XP)\n", res.Milestone.Title, res.Milestone.Points)
	}
	return nil
}
