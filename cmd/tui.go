package cmd

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/cipherlab/internal/clock"
	"github.com/ziadkadry99/cipherlab/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui [cipher]",
	Short: "Open the terminal playground",
	Long:  `Opens a cipher page in the terminal, with the same animation, lessons and guided tour as the web playground.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTUI,
}

func init() {
	tuiCmd.Flags().Bool("no-tour", false, "do not start the guided tour automatically")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cipherID := cfg.DefaultCipher
	if len(args) == 1 {
		if _, err := lookupCipher(args[0]); err != nil {
			return err
		}
		cipherID = args[0]
	}
	noTour, _ := cmd.Flags().GetBool("no-tour")

	// Diagnostics would draw over the alt screen.
	if verbose {
		f, err := tea.LogToFile("cipherlab-tui.log", "tui")
		if err != nil {
			return err
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	database, flagStore, err := openFlags(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	lib, err := loadLessons(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return tui.Run(ctx, tui.Options{
		Clock:         clock.Real{},
		Speed:         cfg.Speed,
		DefaultCipher: cipherID,
		Lessons:       lib,
		Flags:         flagStore,
		TourKey:       cfg.Tour.StorageKey,
		AutoStart:     cfg.Tour.AutoStart && !noTour,
		ClosePoll:     cfg.Tour.ClosePoll(),
	})
}
