// basiscfg is a thin command-line collaborator for the config store:
// it opens the file named by --file, performs one get/set/del/dump
// operation, and writes back only when the operation changed something.
package main

import (
	"fmt"
	"os"
	"strconv"

	config "github.com/27escape/App-Basis"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	configFile   string
	configFormat string
	dryRun       bool

	successPrint = color.New(color.FgGreen).FprintfFunc()
	errorPrint   = color.New(color.FgRed).FprintfFunc()
)

var rootCmd = &cobra.Command{
	Use:   "basiscfg",
	Short: "Inspect and edit a configuration file",
	Long: `Inspect and edit a path-addressable configuration file.

Paths use '/', ':' or '.' interchangeably as separators:

  basiscfg --file app.yaml get server/port
  basiscfg --file app.yaml set server.port 9090
  basiscfg --file app.yaml del server:tls
  basiscfg --file app.yaml dump`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var getCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Print the value at a path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := openConfig()
		if err != nil {
			return err
		}

		value := cfg.Get(args[0])
		if value == nil {
			errorPrint(os.Stderr, "%s is not set\n", args[0])
			os.Exit(1)
		}
		fmt.Println(value)
		return nil
	},
}

var setCmd = &cobra.Command{
	Use:   "set <path> <value>",
	Short: "Set the value at a path and store the file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := openConfig()
		if err != nil {
			return err
		}

		if err := cfg.Set(args[0], parseScalar(args[1])); err != nil {
			return err
		}
		return storeConfig(cfg)
	},
}

var delCmd = &cobra.Command{
	Use:   "del <path>",
	Short: "Delete the value at a path and store the file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := openConfig()
		if err != nil {
			return err
		}

		if err := cfg.Delete(args[0]); err != nil {
			return err
		}
		return storeConfig(cfg)
	},
}

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Write the whole tree to stdout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := openConfig()
		if err != nil {
			return err
		}
		return cfg.Dump(os.Stdout)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "file", "f", "", "configuration file to operate on")
	rootCmd.PersistentFlags().StringVar(&configFormat, "format", "", "force a format (yaml, toml, json, jsonc)")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, "never write the file back")
	rootCmd.MarkPersistentFlagRequired("file")

	rootCmd.AddCommand(getCmd, setCmd, delCmd, dumpCmd)
}

// openConfig builds a Config from the persistent flags. Parse failures
// are fatal here: silently editing on top of an empty tree would clobber
// the broken file on store.
func openConfig() (*config.Config, error) {
	opts := []config.Option{config.WithStrictParse()}
	if configFormat != "" {
		opts = append(opts, config.WithFormat(configFormat))
	}
	if dryRun {
		opts = append(opts, config.WithNoStore())
	}
	return config.New(configFile, opts...)
}

func storeConfig(cfg *config.Config) error {
	stored, err := cfg.Store()
	if err != nil {
		return err
	}
	switch {
	case stored:
		successPrint(os.Stdout, "wrote %s\n", cfg.Filename())
	case dryRun:
		fmt.Println("dry run, nothing written")
	default:
		fmt.Println("no change, nothing written")
	}
	return nil
}

// parseScalar types a command-line value the way the file formats
// would: bool, integer, float, then string.
func parseScalar(s string) any {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		errorPrint(os.Stderr, "basiscfg: %v\n", err)
		os.Exit(1)
	}
}
