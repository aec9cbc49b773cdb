package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/forgeledger/forgeledger/internal/daemon"
)

func init() {
	eventsCmd.AddCommand(eventsAckCmd)
	rootCmd.AddCommand(eventsCmd)
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List pending celebration events",
	RunE:  runEvents,
}

func runEvents(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	events, err := d.Ledger.PendingEvents(50)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		fmt.Println("No pending events.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tTITLE")
	for _, e := range events {
		fmt.Fprintf(w, "%d\t%s\t%s\n", e.ID, e.Type, e.Title)
	}
	return w.Flush()
}

var eventsAckCmd = &cobra.Command{
	Use:   "ack ID",
	Short: "Mark an event as shown",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventsAck,
}

func runEventsAck(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid event id %q", args[0])
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.Ledger.MarkEventShown(id); err != nil {
		return err
	}
	fmt.Printf("Event %d acknowledged.\n", id)
	return nil
}
