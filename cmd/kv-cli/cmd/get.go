package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var getShowEncoding bool

// getCmd represents the get command.
var getCmd = &cobra.Command{
	Use:          "get <key>",
	Short:        "Prints the value of a key.",
	Long:         `Prints the value of a key. Fails when the key is not present.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		store, closeStore, err := openStore(newLogger())
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := closeStore(); closeErr != nil && err == nil {
				err = closeErr
			}
		}()

		value, err := store.Get(args[0])
		if err != nil {
			return err
		}
		if getShowEncoding {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", value.Encoding, value)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().BoolVarP(
		&getShowEncoding,
		"show-encoding",
		"s",
		false,
		"Print the encoding in front of the value.",
	)
}
