package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/forgeledger/forgeledger/internal/daemon"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current level, XP, and streak",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	sum, err := d.Ledger.Summary()
	if err != nil {
		return err
	}

	fmt.Printf("Level %d\n", sum.Level)
	fmt.Printf("  %s %3.0f%%\n", xpBar(sum.ProgressPct), sum.ProgressPct)
	fmt.Printf("  %d XP total, %d XP to level %d\n", sum.XP, sum.XPToNext, sum.Level+1)
	fmt.Println()

	if sum.Streak.CurrentDays > 0 {
		fmt.Printf("Streak:       %d day(s) (longest %d)\n",
			sum.Streak.CurrentDays, sum.Streak.LongestDays)
	} else {
		fmt.Println("Streak:       none — check in to start one")
	}
	fmt.Printf("Badges:       %d\n", sum.BadgeCount)
	fmt.Printf("Achievements: %d\n", sum.AchievementCount)
	return nil
}

const barWidth = 30 // Characters for the XP bar

// xpBar renders level progress like [=============>................].
func xpBar(pct float64) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	filled := int(pct / 100 * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	empty := barWidth - filled

	var bar string
	if filled == barWidth {
		bar = strings.Repeat("=", filled)
	} else if filled > 0 {
		bar = strings.Repeat("=", filled-1) + ">" + strings.Repeat(".", empty)
	} else {
		bar = strings.Repeat(".", barWidth)
	}
	return "[" + bar + "]"
}
