package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/gofrs/flock"
	"github.com/phuslu/log"
	"github.com/spf13/cobra"

	"github.com/backbone81/walkv/pkg/kv"
)

var (
	filePath      string
	magic         uint8
	logVersion    uint8
	syncPolicy    string
	indexType     string
	identityCheck bool
	logLevel      string
)

// errLocked is returned when another process holds the lock of the log file.
var errLocked = errors.New("log file is in use by another process")

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "kv-cli",
	Short: "A tool for interacting with key-value stores.",
	Long: `A tool for interacting with key-value stores.

Every mutation is appended to a single log file which is replayed completely whenever the store is opened.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(
		&filePath,
		"file",
		"f",
		"kvstore.log",
		"The log file of the store.",
	)

	rootCmd.PersistentFlags().Uint8Var(
		&magic,
		"magic",
		0xAA,
		"The magic byte identifying the store.",
	)

	rootCmd.PersistentFlags().Uint8Var(
		&logVersion,
		"log-version",
		0x01,
		"The version byte identifying the store.",
	)

	rootCmd.PersistentFlags().StringVar(
		&syncPolicy,
		"sync",
		"none",
		"The sync policy for appending to the log file. Valid values are none, immediate.",
	)

	rootCmd.PersistentFlags().StringVar(
		&indexType,
		"index",
		"map",
		"The data structure holding the keys in memory. Valid values are map, btree, art.",
	)

	rootCmd.PersistentFlags().BoolVar(
		&identityCheck,
		"identity-check",
		false,
		"Refuse logs holding frames written with a different magic or version.",
	)

	rootCmd.PersistentFlags().StringVar(
		&logLevel,
		"log-level",
		"info",
		"The minimum level of log messages. Valid values are trace, debug, info, warn, error.",
	)
}

// newLogger returns the logger configured by the command line flags.
func newLogger() *log.Logger {
	return &log.Logger{
		Level: log.ParseLevel(logLevel),
		Writer: &log.ConsoleWriter{
			ColorOutput: log.IsTerminal(os.Stderr.Fd()),
			Writer:      os.Stderr,
		},
	}
}

// storeOptions maps the command line flags onto store options.
func storeOptions(logger *log.Logger) ([]kv.Option, error) {
	var withSyncPolicy kv.Option
	switch syncPolicy {
	case "none":
		withSyncPolicy = kv.WithSyncPolicy(kv.SyncPolicyTypeNone)
	case "immediate":
		withSyncPolicy = kv.WithSyncPolicy(kv.SyncPolicyTypeImmediate)
	default:
		return nil, fmt.Errorf("unsupported sync policy %q", syncPolicy)
	}

	var withIndexType kv.Option
	switch indexType {
	case "map":
		withIndexType = kv.WithIndexType(kv.IndexTypeMap)
	case "btree":
		withIndexType = kv.WithIndexType(kv.IndexTypeBTree)
	case "art":
		withIndexType = kv.WithIndexType(kv.IndexTypeART)
	default:
		return nil, fmt.Errorf("unsupported index type %q", indexType)
	}

	return []kv.Option{
		kv.WithLogger(logger),
		withSyncPolicy,
		withIndexType,
		kv.WithIdentityCheck(identityCheck),
	}, nil
}

// openStore locks the log file against other processes and opens the store. The returned function closes the store
// and releases the lock.
func openStore(logger *log.Logger) (*kv.Store, func() error, error) {
	options, err := storeOptions(logger)
	if err != nil {
		return nil, nil, err
	}

	fileLock := flock.New(filePath + ".lock")
	locked, err := fileLock.TryLock()
	if err != nil {
		return nil, nil, fmt.Errorf("locking %q: %w", fileLock.Path(), err)
	}
	if !locked {
		return nil, nil, fmt.Errorf("%w: %q", errLocked, filePath)
	}

	store, err := kv.Open(filePath, magic, logVersion, options...)
	if err != nil {
		if unlockErr := fileLock.Unlock(); unlockErr != nil {
			return nil, nil, errors.Join(err, unlockErr)
		}
		return nil, nil, err
	}
	return store, func() error {
		return errors.Join(store.Close(), fileLock.Unlock())
	}, nil
}
