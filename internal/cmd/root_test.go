package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestSetVersionInfo(t *testing.T) {
	version := "1.2.3"
	buildTime := "2023-12-01T10:00:00Z"

	SetVersionInfo(version, buildTime)

	expected := "1.2.3 (built 2023-12-01T10:00:00Z)"
	if rootCmd.Version != expected {
		t.Errorf("Expected version %s, got %s", expected, rootCmd.Version)
	}
}

func TestExecute(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	os.Args = []string{"admitcrawl", "--help"}
	if err := Execute(); err != nil {
		t.Logf("Execute with help returned: %v", err)
	}
}

func TestInitConfig(t *testing.T) {
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yaml")

	configContent := `
target_size: 500
request_delay: 2s
user_agent: "TestAgent/1.0"
`

	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	cfgFile = configFile
	initConfig()

	if viper.ConfigFileUsed() != configFile {
		t.Errorf("Expected config file %s, got %s", configFile, viper.ConfigFileUsed())
	}
	if got := viper.GetInt("target_size"); got != 500 {
		t.Errorf("Expected target_size 500 from config file, got %d", got)
	}

	// Reset for other tests
	cfgFile = ""
	viper.Reset()
}

func TestRootCmd(t *testing.T) {
	if rootCmd.Use != "admitcrawl [URL]" {
		t.Errorf("Expected use 'admitcrawl [URL]', got %s", rootCmd.Use)
	}

	if rootCmd.RunE == nil {
		t.Error("RunE should be set to runCrawler")
	}
}

func TestFlagBinding(t *testing.T) {
	flags := rootCmd.Flags()

	expectedFlags := []string{
		"target",
		"page-limit",
		"output",
		"ignore-robots",
		"user-agent",
		"timeout",
		"connect-timeout",
		"delay",
		"detail-delay",
		"detail-concurrency",
		"log-level",
		"log-file",
		"show-config",
	}

	for _, flagName := range expectedFlags {
		if flags.Lookup(flagName) == nil {
			t.Errorf("Expected flag %s to be defined", flagName)
		}
	}

	persistentFlags := rootCmd.PersistentFlags()
	if persistentFlags.Lookup("config") == nil {
		t.Error("Expected persistent flag 'config' to be defined")
	}
}

func TestGenerateUserAgent(t *testing.T) {
	origVersion := version
	defer func() { version = origVersion }()

	version = "2.1.0"
	if got := generateUserAgent(); got != "AdmitCrawl/2.1.0" {
		t.Errorf("Expected AdmitCrawl/2.1.0, got %s", got)
	}

	version = "dev"
	if got := generateUserAgent(); got != "AdmitCrawl/dev" {
		t.Errorf("Expected AdmitCrawl/dev, got %s", got)
	}
}
