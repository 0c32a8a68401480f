package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var lessonsCmd = &cobra.Command{
	Use:   "lessons",
	Short: "Browse the cipher lessons",
}

var lessonsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every lesson",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		lib, err := loadLessons(cfg)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, l := range lib.List() {
			fmt.Fprintf(out, "%-16s %s\n", l.Slug, l.Title)
			if verbose {
				fmt.Fprintf(out, "%-16s %s (%s)\n", "", truncate(l.Summary, 100), l.Source)
			}
		}
		return nil
	},
}

var lessonsRenderCmd = &cobra.Command{
	Use:   "render <slug>",
	Short: "Print a lesson as markdown or HTML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		lib, err := loadLessons(cfg)
		if err != nil {
			return err
		}
		lesson, ok := lib.Get(args[0])
		if !ok {
			return fmt.Errorf("unknown lesson %q\nRun `cipherlab lessons list` to see them", args[0])
		}

		if asHTML, _ := cmd.Flags().GetBool("html"); asHTML {
			html, err := lib.Render(lesson.Slug)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), html)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), lesson.Body)
		return nil
	},
}

func init() {
	lessonsRenderCmd.Flags().Bool("html", false, "render to HTML instead of printing markdown")
	lessonsCmd.AddCommand(lessonsListCmd, lessonsRenderCmd)
	rootCmd.AddCommand(lessonsCmd)
}
