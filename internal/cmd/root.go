// Package cmd provides the command-line interface for AdmitCrawl.
// It handles command parsing, configuration loading, and crawler execution.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/masahif/admitcrawl/internal/config"
	"github.com/masahif/admitcrawl/internal/crawler"
	"github.com/masahif/admitcrawl/internal/logging"
	"github.com/masahif/admitcrawl/internal/storage"
)

var (
	cfgFile   string
	version   string
	buildTime string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "admitcrawl [URL]",
	Short: "An incremental crawler for public admissions-result listings",
	Long: `AdmitCrawl walks a paginated admissions-result listing, enriches each
entry from its detail page, and accumulates deduplicated records in a
JSON file. The output file is also the resume state: a second run picks
up where the previous one stopped and never duplicates records.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCrawler,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets version information for the CLI
func SetVersionInfo(v, bt string) {
	version = v
	buildTime = bt
	rootCmd.Version = fmt.Sprintf("%s (built %s)", version, buildTime)
}

func init() {
	cobra.OnInitialize(initConfig)

	// Configuration file flag
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./admitcrawl.yml)")

	// Configuration management flags
	rootCmd.Flags().Bool("show-config", false, "Display current configuration in YAML format and exit")

	// Crawling flags
	rootCmd.Flags().IntP("target", "n", 30000, "Stop once this many records exist (0=unlimited)")
	rootCmd.Flags().IntP("page-limit", "p", 0, "Stop after N listing pages (0=unlimited)")
	rootCmd.Flags().StringP("output", "o", "./applicant_data.json", "Path to the JSON record file")
	rootCmd.Flags().Bool("ignore-robots", false, "Skip the robots.txt check")

	// HTTP flags
	rootCmd.Flags().StringP("user-agent", "u", "AdmitCrawl/1.0", "HTTP User-Agent header")
	rootCmd.Flags().DurationP("timeout", "t", 15*time.Second, "HTTP request timeout")
	rootCmd.Flags().Duration("connect-timeout", 3*time.Second, "HTTP connect (dial) timeout")

	// Pacing flags
	rootCmd.Flags().DurationP("delay", "r", 500*time.Millisecond, "Politeness delay between listing pages")
	rootCmd.Flags().Duration("detail-delay", 100*time.Millisecond, "Delay between detail-page fetches")
	rootCmd.Flags().IntP("detail-concurrency", "c", 4, "Number of detail enrichment workers")

	// Logging flags
	rootCmd.Flags().String("log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.Flags().String("log-file", "", "Optional log file path")

	// Bind flags to viper
	bindFlags := []struct {
		viperKey string
		flagName string
	}{
		{"target_size", "target"},
		{"page_limit", "page-limit"},
		{"output_path", "output"},
		{"ignore_robots", "ignore-robots"},
		{"user_agent", "user-agent"},
		{"request_timeout", "timeout"},
		{"connect_timeout", "connect-timeout"},
		{"request_delay", "delay"},
		{"detail_delay", "detail-delay"},
		{"detail_concurrency", "detail-concurrency"},
		{"log_level", "log-level"},
		{"log_file", "log-file"},
	}

	for _, bind := range bindFlags {
		if err := viper.BindPFlag(bind.viperKey, rootCmd.Flags().Lookup(bind.flagName)); err != nil {
			// Log the error but continue - non-critical for operation
			fmt.Fprintf(os.Stderr, "Warning: failed to bind flag %s: %v\n", bind.flagName, err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for config in current directory
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("admitcrawl")
	}

	viper.AutomaticEnv() // read in environment variables that match
	viper.SetEnvPrefix("AC")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

func generateUserAgent() string {
	if version != "" && version != "dev" {
		return fmt.Sprintf("AdmitCrawl/%s", version)
	}
	return "AdmitCrawl/dev"
}

func showCurrentConfig(cfg *config.CrawlConfig) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Configuration validation failed: %v\n", err)
		fmt.Fprintf(os.Stderr, "Displaying configuration anyway...\n\n")
	}

	yamlData, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration to YAML: %w", err)
	}

	fmt.Printf("# Current AdmitCrawl Configuration\n")
	fmt.Printf("# Generated at: %s\n", time.Now().Format(time.RFC3339))
	fmt.Printf("# Configuration file search paths: ./admitcrawl.yml\n")
	fmt.Printf("# Environment variables prefix: AC_\n\n")

	fmt.Print(string(yamlData))

	fmt.Printf("\n# Configuration source priority:\n")
	fmt.Printf("# 1. Command-line arguments (highest priority)\n")
	fmt.Printf("# 2. Environment variables (AC_ prefix)\n")
	fmt.Printf("# 3. Configuration file (admitcrawl.yml)\n")
	fmt.Printf("# 4. Default values (lowest priority)\n")

	return nil
}

func runCrawler(cmd *cobra.Command, args []string) error {
	// Handle --show-config flag first
	showConfig, _ := cmd.Flags().GetBool("show-config")

	cfg := config.DefaultConfig()

	// Override with viper values
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// A positional URL beats the configured source
	if len(args) > 0 {
		cfg.SourceURL = args[0]
	}

	// Update User-Agent with dynamic version if not explicitly set
	if !cmd.Flags().Changed("user-agent") && cfg.UserAgent == "AdmitCrawl/1.0" {
		cfg.UserAgent = generateUserAgent()
	}

	// Handle --show-config: display current configuration and exit
	if showConfig {
		return showCurrentConfig(cfg)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Set up logging before anything that logs
	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(cfg.LogLevel)
	logCfg.FilePath = cfg.LogFile
	if err := logging.SetDefault(*logCfg); err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}

	// Create output directory if it doesn't exist
	outDir := filepath.Dir(cfg.OutputPath)
	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	fmt.Printf("Starting crawler with configuration:\n")
	fmt.Printf("  Source URL: %s\n", cfg.SourceURL)
	fmt.Printf("  Target Size: %d\n", cfg.TargetSize)
	fmt.Printf("  Output: %s\n", cfg.OutputPath)
	fmt.Printf("  Request Delay: %v\n", cfg.RequestDelay)
	fmt.Printf("  Detail Concurrency: %d\n", cfg.DetailConcurrency)
	fmt.Printf("  Ignore Robots: %t\n", cfg.IgnoreRobots)

	store := storage.NewJSONStore(cfg.OutputPath)

	c, err := crawler.New(cfg, store, nil)
	if err != nil {
		return fmt.Errorf("failed to initialize crawler: %w", err)
	}

	// Interrupt aborts outstanding fetches; accepted records are still flushed
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	stats, err := c.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Records: %d -> %d (+%d new, %d pages fetched)\n",
		stats.RecordsBefore, stats.RecordsAfter, stats.NewRecords(), stats.PagesFetched)
	return nil
}
