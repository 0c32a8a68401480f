package cmd

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/cipherlab/internal/flags"
	"github.com/ziadkadry99/cipherlab/internal/tour"
)

var tourCmd = &cobra.Command{
	Use:   "tour",
	Short: "Inspect and reset guided tour progress",
}

var tourListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded tour completions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		database, store, err := openFlags(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		list, err := store.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No tours recorded yet.")
			return nil
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "KEY\tCOMPLETED\tAT")
		for _, f := range list {
			at := "-"
			if f.CompletedAt != nil {
				at = f.CompletedAt.Local().Format("2006-01-02 15:04")
			}
			fmt.Fprintf(w, "%s\t%v\t%s\n", f.Key, f.Completed, at)
		}
		return w.Flush()
	},
}

var tourResetCmd = &cobra.Command{
	Use:   "reset [key]",
	Short: "Forget a tour completion so it auto-starts again",
	Long:  `Removes the completion flag for the given tour key (the configured cipher page tour by default), or every flag with --all.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		database, store, err := openFlags(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		if all, _ := cmd.Flags().GetBool("all"); all {
			n, err := store.ResetAll(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reset %d tour(s).\n", n)
			return nil
		}

		key := cfg.Tour.StorageKey
		if len(args) == 1 {
			key = args[0]
		}
		err = store.Reset(cmd.Context(), key)
		if errors.Is(err, flags.ErrNotFound) {
			fmt.Fprintf(cmd.OutOrStdout(), "Tour %s was not completed yet.\n", key)
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Reset tour %s.\n", key)
		return nil
	},
}

var tourStepsCmd = &cobra.Command{
	Use:   "steps",
	Short: "Print the steps of the cipher page tour",
	Run: func(cmd *cobra.Command, args []string) {
		for i, s := range tour.CipherPageTour() {
			target := s.Target
			if target == "" {
				target = "(center)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d. %-16s %s\n", i+1, target, s.Title)
		}
	},
}

func init() {
	tourResetCmd.Flags().Bool("all", false, "reset every recorded tour")
	tourCmd.AddCommand(tourListCmd, tourResetCmd, tourStepsCmd)
	rootCmd.AddCommand(tourCmd)
}
