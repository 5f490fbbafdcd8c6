package config

import (
	"fmt"
	"os"

	"github.com/docker/go-units"
)

const (
	EnvOutputDir    = "IMAGEGEN_OUTPUT_DIR"
	EnvMaxImageSize = "IMAGEGEN_MAX_IMAGE_SIZE"
)

// StorageConfig controls where and how generated images are written
type StorageConfig struct {
	// OutputDir receives images saved without an explicit output_path.
	// Default: "" (the working directory)
	OutputDir       string `toml:"output_dir"`
	MaxImageSize    string `toml:"max_image_size"`
	maxImageSizeVal int64
}

// MaxImageSizeBytes returns the parsed decoded-size limit
func (c *StorageConfig) MaxImageSizeBytes() int64 {
	return c.maxImageSizeVal
}

// Finalize applies defaults, loads environment overrides, and validates the section
func (c *StorageConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies non-zero values from overlay
func (c *StorageConfig) Merge(overlay *StorageConfig) {
	if overlay.OutputDir != "" {
		c.OutputDir = overlay.OutputDir
	}
	if overlay.MaxImageSize != "" {
		c.MaxImageSize = overlay.MaxImageSize
	}
}

func (c *StorageConfig) loadDefaults() {
	if c.MaxImageSize == "" {
		c.MaxImageSize = "50MB"
	}
}

func (c *StorageConfig) loadEnv() {
	if v := os.Getenv(EnvOutputDir); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv(EnvMaxImageSize); v != "" {
		c.MaxImageSize = v
	}
}

func (c *StorageConfig) validate() error {
	size, err := units.FromHumanSize(c.MaxImageSize)
	if err != nil {
		return fmt.Errorf("invalid max_image_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_image_size must be positive")
	}
	c.maxImageSizeVal = size
	return nil
}
