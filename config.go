package jsondoc

import (
	"log/slog"
	"os"
)

// Config holds the settings of a Processor.
type Config struct {
	// Limits
	MaxJSONSize     int64 // Largest input accepted by Parse and ParseFile
	MaxNestingDepth int   // Deepest container nesting accepted by the parser
	MaxHandles      int   // Capacity of the default handle table

	// Default flags, used when a call does not pass its own
	ReadFlags  ReadFlag
	WriteFlags WriteFlag

	// File access
	FileRoot         string      // Sandbox root; relative names resolve under it
	ValidateFilePath bool        // Reject traversal, null bytes and system paths
	CreateDirs       bool        // Create missing parent directories on write
	FilePerm         os.FileMode // Permission bits for files written by ToFile

	// RandomSeed seeds the generator behind SortRandom. Zero seeds from the
	// clock.
	RandomSeed int64

	// Workers bounds the goroutine pool used by ParseFiles.
	Workers int

	// Handles is the handle table the processor registers its JSON handle
	// type with. Nil creates a private HandleTable of MaxHandles slots.
	Handles HandleSystem

	Logger *slog.Logger
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		MaxJSONSize:      DefaultMaxJSONSize,
		MaxNestingDepth:  DefaultMaxNestingDepth,
		MaxHandles:       DefaultMaxHandles,
		ReadFlags:        ReadNoFlag,
		WriteFlags:       WriteNoFlag,
		ValidateFilePath: true,
		CreateDirs:       false,
		FilePerm:         DefaultFilePerm,
		Workers:          DefaultWorkers,
	}
}

// ValidateConfig validates configuration values and applies corrections
func ValidateConfig(config *Config) error {
	if config == nil {
		return newOperationError("validate_config", "config cannot be nil", ErrOperationFailed)
	}
	if config.MaxHandles > MaxHandles {
		return newOperationError("validate_config", "MaxHandles exceeds the handle index space", ErrOperationFailed)
	}

	// Apply defaults for invalid values
	if config.MaxJSONSize <= 0 {
		config.MaxJSONSize = DefaultMaxJSONSize
	}
	if config.MaxNestingDepth <= 0 {
		config.MaxNestingDepth = DefaultMaxNestingDepth
	}
	if config.MaxHandles <= 0 {
		config.MaxHandles = DefaultMaxHandles
	}
	if config.FilePerm == 0 {
		config.FilePerm = DefaultFilePerm
	}
	if config.Workers <= 0 {
		config.Workers = DefaultWorkers
	}
	return nil
}

// Clone creates a copy of the configuration
func (c *Config) Clone() *Config {
	if c == nil {
		return DefaultConfig()
	}
	clone := *c
	return &clone
}

// Validate validates the configuration and applies corrections
func (c *Config) Validate() error {
	return ValidateConfig(c)
}

// ParseOptions tunes a single parse call.
type ParseOptions struct {
	// Flags replaces the processor's default read flags when non-zero.
	Flags ReadFlag
	// Mutable copies the parsed document into an editable one.
	Mutable bool
}

// DefaultParseOptions returns options for a read-only parse with the
// processor's default flags.
func DefaultParseOptions() *ParseOptions {
	return &ParseOptions{}
}

// PointerOptions tunes pointer writes.
type PointerOptions struct {
	// CreateParents creates missing intermediate containers: objects for
	// key segments, arrays for index segments.
	CreateParents bool
}

// DefaultPointerOptions returns options with parent creation enabled.
func DefaultPointerOptions() *PointerOptions {
	return &PointerOptions{CreateParents: true}
}

func pointerOptions(opts []*PointerOptions) *PointerOptions {
	if len(opts) > 0 && opts[0] != nil {
		return opts[0]
	}
	return DefaultPointerOptions()
}
