// Package config provides configuration management for the crawler.
// It defines configuration structures and default values for crawling parameters.
package config

import "time"

// CrawlConfig holds crawler configuration
type CrawlConfig struct {
	// Basic crawling parameters
	SourceURL    string `mapstructure:"source_url" yaml:"source_url"`       // Listing root to crawl
	TargetSize   int    `mapstructure:"target_size" yaml:"target_size"`     // Stop once this many records exist (0=unlimited)
	PageLimit    int    `mapstructure:"page_limit" yaml:"page_limit"`       // Stop after N listing pages (0=unlimited)
	OutputPath   string `mapstructure:"output_path" yaml:"output_path"`     // Path to the JSON record file (resume input and output)
	IgnoreRobots bool   `mapstructure:"ignore_robots" yaml:"ignore_robots"` // Skip the robots.txt check

	// HTTP behavior
	UserAgent      string        `mapstructure:"user_agent" yaml:"user_agent"`           // HTTP User-Agent header
	ConnectTimeout time.Duration `mapstructure:"connect_timeout" yaml:"connect_timeout"` // Dial timeout
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"` // Whole-request timeout

	// Pacing
	RequestDelay      time.Duration `mapstructure:"request_delay" yaml:"request_delay"`           // Politeness interval between listing pages
	DetailDelay       time.Duration `mapstructure:"detail_delay" yaml:"detail_delay"`             // Interval between detail fetches (pool-wide)
	DetailConcurrency int           `mapstructure:"detail_concurrency" yaml:"detail_concurrency"` // Detail enrichment workers

	// Logging
	LogLevel string `mapstructure:"log_level" yaml:"log_level"` // debug, info, warn, error
	LogFile  string `mapstructure:"log_file" yaml:"log_file"`   // Optional log file path
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *CrawlConfig {
	return &CrawlConfig{
		SourceURL:         "https://www.thegradcafe.com/survey/",
		TargetSize:        30000,
		OutputPath:        "./applicant_data.json",
		UserAgent:         "AdmitCrawl/1.0",
		ConnectTimeout:    3 * time.Second,
		RequestTimeout:    15 * time.Second,
		RequestDelay:      500 * time.Millisecond,
		DetailDelay:       100 * time.Millisecond,
		DetailConcurrency: 4,
		LogLevel:          "info",
	}
}

// Validate checks if the configuration is valid
func (c *CrawlConfig) Validate() error {
	if c.SourceURL == "" {
		return ErrEmptySourceURL
	}

	if c.TargetSize < 0 {
		return ErrInvalidTargetSize
	}

	if c.ConnectTimeout <= 0 || c.RequestTimeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.DetailConcurrency <= 0 {
		return ErrInvalidConcurrency
	}

	// Keep a floor on the politeness interval toward the source server.
	if c.RequestDelay < 100*time.Millisecond {
		c.RequestDelay = 100 * time.Millisecond
	}

	if c.OutputPath == "" {
		return ErrEmptyOutputPath
	}

	return nil
}
