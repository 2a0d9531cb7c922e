package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// listCmd represents the list command.
var listCmd = &cobra.Command{
	Use:          "list",
	Short:        "Prints all keys with their encoding and value.",
	Long:         `Prints all keys with their encoding and value. Keys are sorted in ascending byte order.`,
	Args:         cobra.NoArgs,
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

		for _, key := range store.Keys() {
			value, err := store.Get(key)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", key, value.Encoding, value)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
