package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/cipherlab/internal/ciphers"
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt <cipher> [text]",
	Short: "Encrypt text in one shot",
	Long:  `Encrypts text with the given cipher. The text and key default to the cipher's example values.`,
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransform(cmd, args, ciphers.Encrypt)
	},
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt <cipher> <text>",
	Short: "Decrypt text in one shot",
	Long:  `Decrypts text with the given cipher and key.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransform(cmd, args, ciphers.Decrypt)
	},
}

func init() {
	for _, c := range []*cobra.Command{encryptCmd, decryptCmd} {
		c.Flags().StringP("key", "k", "", "key material (defaults to the cipher's example key)")
		c.Flags().Bool("explain", false, "print the working for every unit")
		c.Flags().Bool("json", false, "output the result as JSON")
		rootCmd.AddCommand(c)
	}
}

type transformJSON struct {
	Cipher string   `json:"cipher"`
	Mode   string   `json:"mode"`
	Input  string   `json:"input"`
	Key    string   `json:"key"`
	Output string   `json:"output"`
	Units  []string `json:"units"`
}

func runTransform(cmd *cobra.Command, args []string, mode ciphers.Mode) error {
	c, err := lookupCipher(args[0])
	if err != nil {
		return err
	}
	info := c.Info()

	input := info.DefaultInput
	if len(args) == 2 {
		input = args[1]
	}
	key, _ := cmd.Flags().GetString("key")
	if key == "" {
		key = info.DefaultKey
	}
	explain, _ := cmd.Flags().GetBool("explain")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	units, err := ciphers.TransformUnits(c, input, key, mode)
	if err != nil {
		return fmt.Errorf("%s %s: %w", info.Name, mode, err)
	}
	output := strings.Join(units, "")

	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(transformJSON{
			Cipher: info.ID,
			Mode:   string(mode),
			Input:  input,
			Key:    key,
			Output: output,
			Units:  units,
		})
	}

	if explain {
		src := c.Units(input, key, mode)
		for i := range src {
			line := ciphers.Explain(c, src, i, key, mode)
			if line == "" {
				line = fmt.Sprintf("%s -> %s", src[i], units[i])
			}
			fmt.Fprintf(os.Stderr, "  %3d. %s\n", i+1, line)
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}
