package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/backbone81/walkv/internal/encoding"
	"github.com/backbone81/walkv/internal/logfile"
)

var describeFrames bool

type identity struct {
	magic   byte
	version byte
}

// describeCmd represents the describe command.
var describeCmd = &cobra.Command{
	Use:          "describe",
	Short:        "Provides detailed information about the log file.",
	Long:         `Provides detailed information about the log file. The log is only read, nothing is replayed or repaired.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		reader, err := logfile.OpenReader(filePath)
		if err != nil {
			return err
		}
		defer func() {
			if err := reader.Close(); err != nil {
				fmt.Println(err)
			}
		}()

		out := cmd.OutOrStdout()
		var sets, deletes int
		identities := make(map[identity]int)
		keys := make(map[string]struct{})
		for reader.Next() {
			frame := reader.Value()
			identities[identity{magic: frame.Magic, version: frame.Version}]++
			switch frame.Operation {
			case encoding.OperationSet:
				sets++
				keys[string(frame.Key)] = struct{}{}
			case encoding.OperationDelete:
				deletes++
				delete(keys, string(frame.Key))
			}

			if describeFrames {
				value := encoding.Value{Encoding: frame.Encoding, Bytes: frame.Value}
				fmt.Fprintf(out, "%10d  %-6s  %q  %s  %s\n", reader.FrameOffset(), frame.Operation, frame.Key, frame.Encoding, value)
			}
		}
		if describeFrames {
			fmt.Fprintln(out)
		}

		fmt.Fprintf(out, "File:          %s\n", reader.FilePath())
		fmt.Fprintf(out, "Valid Bytes:   %d\n", reader.Offset())
		fmt.Fprintf(out, "Frames:        %d\n", sets+deletes)
		fmt.Fprintf(out, "Set Frames:    %d\n", sets)
		fmt.Fprintf(out, "Delete Frames: %d\n", deletes)
		fmt.Fprintf(out, "Live Keys:     %d\n", len(keys))
		for id, count := range identities {
			fmt.Fprintf(out, "Identity:      magic 0x%02x version 0x%02x (%d frames)\n", id.magic, id.version, count)
		}
		if err := reader.Err(); err != nil {
			return fmt.Errorf("log is readable up to byte %d: %w", reader.Offset(), err)
		}
		fmt.Fprintf(out, "Tail Bytes:    %d\n", reader.TailLength())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)

	describeCmd.Flags().BoolVar(
		&describeFrames,
		"frames",
		false,
		"Print every frame with its offset, operation, key, encoding and value.",
	)
}
