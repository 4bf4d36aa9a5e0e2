package configloader

import "github.com/bukvar/bukvar/pkg/config"

// merge combines two configurations, with override taking precedence over
// base. Scalars: override replaces base when set (non-zero). Slices:
// override replaces base entirely when non-nil. Booleans are OR'd, since
// the zero value (false) cannot be distinguished from "unset" — a config
// file or env var can only turn a flag on, never force it back off over a
// higher-precedence source.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	if override.Pretty {
		result.Pretty = override.Pretty
	}
	if override.Validate {
		result.Validate = override.Validate
	}
	if override.Sourcemap {
		result.Sourcemap = override.Sourcemap
	}
	if override.Streaming {
		result.Streaming = override.Streaming
	}
	if override.Verbose {
		result.Verbose = override.Verbose
	}

	return &result
}

// MergeAll merges multiple configurations in order, with later configs
// taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
