package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/cipherlab/internal/ciphers"
)

var ciphersCmd = &cobra.Command{
	Use:   "ciphers",
	Short: "List the available ciphers",
	RunE: func(cmd *cobra.Command, args []string) error {
		all := ciphers.All()
		infos := make([]ciphers.Info, len(all))
		for i, c := range all {
			infos[i] = c.Info()
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(infos)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tFAMILY\tKEY")
		for _, info := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", info.ID, info.Name, info.Family, truncate(info.KeyHint, 50))
		}
		return w.Flush()
	},
}

func init() {
	ciphersCmd.Flags().Bool("json", false, "output as JSON")
	rootCmd.AddCommand(ciphersCmd)
}
