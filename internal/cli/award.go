package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/forgeledger/forgeledger/internal/daemon"
)

func init() {
	rootCmd.AddCommand(awardCmd)
}

var awardCmd = &cobra.Command{
	Use:   "award AMOUNT [REASON...]",
	Short: "Award XP for completed work",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAward,
}

func runAward(cmd *cobra.Command, args []string) error {
	amount, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q", args[0])
	}
	reason := strings.Join(args[1:], " ")

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	res, err := d.Ledger.AddPoints(amount, reason)
	if err != nil {
		return err
	}

	fmt.Printf("+%d XP (total %d)\n", amount, res.XP)
	if res.LeveledUp {
		fmt.Printf("Level up! You are now level %d.\n", res.Level)
	}
	return nil
}
