package cmd

import (
	"github.com/spf13/cobra"

	"github.com/backbone81/walkv/pkg/kv"
)

var setEncoding string

// setCmd represents the set command.
var setCmd = &cobra.Command{
	Use:          "set <key> <value>",
	Short:        "Sets the value of a key.",
	Long:         `Sets the value of a key. The value is parsed according to the encoding.`,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		encoding, err := kv.ParseEncoding(setEncoding)
		if err != nil {
			return err
		}
		value, err := kv.ParseValue(encoding, args[1])
		if err != nil {
			return err
		}

		store, closeStore, err := openStore(newLogger())
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := closeStore(); closeErr != nil && err == nil {
				err = closeErr
			}
		}()

		return store.Set(args[0], value)
	},
}

func init() {
	rootCmd.AddCommand(setCmd)

	setCmd.Flags().StringVarP(
		&setEncoding,
		"encoding",
		"e",
		"string",
		"The encoding of the value. Valid values are string, integer, float.",
	)
}
