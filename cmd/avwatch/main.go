package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/avwatch/avwatch/internal/avdict"
	"github.com/avwatch/avwatch/internal/config"
	"github.com/avwatch/avwatch/internal/hostscan"
	"github.com/avwatch/avwatch/internal/logging"
	"github.com/avwatch/avwatch/internal/report"
	"github.com/spf13/cobra"
)

var (
	version  = "0.1.0"
	cfgFile  string
	dictPath string
	jsonOut  bool
)

var rootCmd = &cobra.Command{
	Use:   "avwatch",
	Short: "Security-product presence scanner",
	Long:  `avwatch checks a host's running processes and registered services against a reference dictionary of known antivirus/EDR vendor services.`,
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan this host for known security-vendor services",
	Run: func(cmd *cobra.Command, args []string) {
		runScan()
	},
}

var checkCmd = &cobra.Command{
	Use:   "check <name>...",
	Short: "Check executable or service names against the dictionary",
	Long: `Check looks up the given executable file names or Windows service names
in the dictionary and prints every matching vendor/service pair.
Use "-" to read names from stdin, one per line. Names matching nothing
produce no output and no error.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runCheck(args)
	},
}

var vendorsCmd = &cobra.Command{
	Use:   "vendors",
	Short: "List the dictionary's vendors and services",
	Run: func(cmd *cobra.Command, args []string) {
		runVendors()
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <path>",
	Short: "Validate a dictionary file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runValidate(args[0])
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("avwatch v%s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is /etc/avwatch/avwatch.yaml)")
	rootCmd.PersistentFlags().StringVar(&dictPath, "dictionary", "", "dictionary file (default is the built-in table)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "emit JSON instead of text")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(vendorsCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads config, initializes logging, and resolves the dictionary.
// The --dictionary flag wins over dictionary_path in the config file.
func setup() (*config.Config, *avdict.Dictionary) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	for _, verr := range cfg.Validate() {
		fmt.Fprintf(os.Stderr, "config warning: %v\n", verr)
	}

	var logOut io.Writer
	if cfg.LogFile != "" {
		rw, err := logging.NewRotatingWriter(cfg.LogFile, cfg.LogMaxSizeMB, 3)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		logOut = rw
	}
	logging.Init(cfg.LogFormat, cfg.LogLevel, logOut)

	path := dictPath
	if path == "" {
		path = cfg.DictionaryPath
	}
	if path == "" {
		return cfg, avdict.Default()
	}

	dict, err := avdict.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load dictionary: %v\n", err)
		os.Exit(1)
	}
	return cfg, dict
}

func runScan() {
	cfg, dict := setup()

	rep := hostscan.Scan(context.Background(), dict, hostscan.Options{
		Timeout: time.Duration(cfg.ScanTimeoutSeconds) * time.Second,
	})

	var err error
	if jsonOut || cfg.Output == "json" {
		err = report.WriteJSON(os.Stdout, rep)
	} else {
		err = report.WriteScanText(os.Stdout, rep)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCheck(args []string) {
	cfg, dict := setup()

	observed, err := gatherNames(args, os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read names: %v\n", err)
		os.Exit(1)
	}

	matches := dict.Match(observed)
	if jsonOut || cfg.Output == "json" {
		err = report.WriteJSON(os.Stdout, matches)
	} else {
		err = report.WriteMatchesText(os.Stdout, matches)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runVendors() {
	cfg, dict := setup()

	var err error
	if jsonOut || cfg.Output == "json" {
		err = report.WriteJSON(os.Stdout, dict.Vendors())
	} else {
		err = report.WriteVendorsText(os.Stdout, dict)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runValidate(path string) {
	dict, err := avdict.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		os.Exit(1)
	}
	fmt.Printf("%s: ok (%d vendors, %d services)\n", path, dict.NumVendors(), dict.NumServices())
}

// gatherNames expands a "-" argument into lines read from r.
func gatherNames(args []string, r io.Reader) ([]string, error) {
	var names []string
	for _, arg := range args {
		if arg != "-" {
			names = append(names, arg)
			continue
		}
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			if line := scanner.Text(); line != "" {
				names = append(names, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}
	return names, nil
}
