package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/forgeledger/forgeledger/internal/daemon"
	"github.com/forgeledger/forgeledger/internal/domain"
)

func init() {
	earnBadgeCmd.Flags().StringVar(&earnBadgeName, "name", "", "Display name (defaults to the ID)")
	earnBadgeCmd.Flags().StringVar(&earnBadgeDesc, "description", "", "Badge description")
	earnBadgeCmd.Flags().StringVar(&earnBadgeCategory, "category", string(domain.CatCommunity), "Badge category")
	badgesCmd.AddCommand(earnBadgeCmd)
	rootCmd.AddCommand(badgesCmd)
}

var badgesCmd = &cobra.Command{
	Use:   "badges",
	Short: "List earned badges",
	RunE:  runBadges,
}

func runBadges(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	badges, err := d.Ledger.Badges()
	if err != nil {
		return err
	}

	if len(badges) == 0 {
		fmt.Println("No badges yet. Keep learning!")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tEARNED")
	for _, b := range badges {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			b.ID, b.Name, b.Category, b.EarnedAt.Format("2006-01-02"))
	}
	return w.Flush()
}

var (
	earnBadgeName     string
	earnBadgeDesc     string
	earnBadgeCategory string
)

var earnBadgeCmd = &cobra.Command{
	Use:   "earn ID",
	Short: "Grant a badge by ID",
	Args:  cobra.ExactArgs(1),
	RunE:  runEarnBadge,
}

func runEarnBadge(cmd *cobra.Command, args []string) error {
	id := args[0]
	name := earnBadgeName
	if name == "" {
		name = id
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	earned, err := d.Ledger.EarnBadge(domain.Badge{
		ID:          id,
		Name:        name,
		Description: earnBadgeDesc,
		Category:    domain.Category(earnBadgeCategory),
	})
	if err != nil {
		return err
	}

	if earned {
		fmt.Printf("Badge earned: %s\n", name)
	} else {
		fmt.Printf("Badge %s was already earned.\n", id)
	}
	return nil
}
