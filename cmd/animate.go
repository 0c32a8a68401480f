package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/cipherlab/internal/ciphers"
	"github.com/ziadkadry99/cipherlab/internal/clock"
	"github.com/ziadkadry99/cipherlab/internal/progress"
	"github.com/ziadkadry99/cipherlab/internal/session"
)

var animateCmd = &cobra.Command{
	Use:   "animate <cipher> [text]",
	Short: "Animate a transform in the terminal",
	Long:  `Runs the step animation for one transform, reporting each revealed unit as it happens, and prints the result.`,
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runAnimate,
}

func init() {
	animateCmd.Flags().StringP("key", "k", "", "key material (defaults to the cipher's example key)")
	animateCmd.Flags().String("mode", "encrypt", "encrypt or decrypt")
	animateCmd.Flags().Float64("speed", 0, "tick interval factor (overrides config; 0.5 is twice as fast)")
	rootCmd.AddCommand(animateCmd)
}

func runAnimate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	c, err := lookupCipher(args[0])
	if err != nil {
		return err
	}
	info := c.Info()

	modeFlag, _ := cmd.Flags().GetString("mode")
	mode, err := ciphers.ParseMode(modeFlag)
	if err != nil {
		return err
	}
	speed, _ := cmd.Flags().GetFloat64("speed")
	if speed <= 0 {
		speed = cfg.Speed
	}

	sess := session.New("cli", c, clock.Real{}, speed)
	defer sess.Close()
	if len(args) == 2 {
		sess.SetInput(args[1])
	}
	if key, _ := cmd.Flags().GetString("key"); key != "" {
		sess.SetKey(key)
	}
	sess.SetMode(mode)

	v := sess.View()
	if v.Validation != "" {
		return fmt.Errorf("%s: %s", info.Name, v.Validation)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reporter := progress.NewReporter(info.Name)
	reporter.Start(v.State.Total)

	done := make(chan session.View, 1)
	sess.OnChange(func(v session.View) {
		reporter.Update(max(v.State.ActiveIndex, 0), truncate(v.Explanation, 60))
		if verbose && v.Explanation != "" {
			fmt.Fprintf(os.Stderr, "  %s\n", v.Explanation)
		}
		if v.State.Done || v.State.Error != "" {
			select {
			case done <- v:
			default:
			}
		}
	})
	if err := sess.Start(); err != nil {
		return fmt.Errorf("starting animation: %w", err)
	}

	select {
	case v = <-done:
	case <-ctx.Done():
		sess.Pause()
		reporter.Finish()
		return errors.New("interrupted")
	}
	reporter.Finish()

	if v.State.Error != "" {
		return errors.New(v.State.Error)
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(v.State.Output, ""))
	return nil
}
