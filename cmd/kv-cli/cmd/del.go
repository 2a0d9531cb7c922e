package cmd

import (
	"github.com/spf13/cobra"
)

// delCmd represents the del command.
var delCmd = &cobra.Command{
	Use:          "del <key>...",
	Short:        "Removes keys.",
	Long:         `Removes keys. Removing a key which is not present succeeds and is still recorded in the log.`,
	Args:         cobra.MinimumNArgs(1),
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

		for _, key := range args {
			if err := store.Delete(key); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(delCmd)
}
