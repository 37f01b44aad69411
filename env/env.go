//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

// Package env implements global environment for the PA-2PC system.
package env

import (
	"crypto/rand"
	"fmt"
	"io"
	"runtime"
)

// Config defines the global system configuration for the PA-2PC
// system. It configures system operation for all modules. Config
// must not be modified after being passed to any module. It is safe
// for concurrent use by multiple modules as they do not modify it.
type Config struct {
	// Rand is the source of entropy. If nil, crypto/rand is used.
	Rand io.Reader

	// Workers bounds the number of concurrent repetition workers. If
	// zero, the number of CPUs is used.
	Workers int

	// Verbose enables diagnostic output.
	Verbose bool
}

// GetRandom returns the source of entropy for seeds, masks, labels,
// and other cryptography operations.
func (config *Config) GetRandom() io.Reader {
	if config != nil && config.Rand != nil {
		return config.Rand
	}
	return rand.Reader
}

// GetWorkers returns the size of the worker pool.
func (config *Config) GetWorkers() int {
	if config != nil && config.Workers > 0 {
		return config.Workers
	}
	return runtime.NumCPU()
}

// Debugf prints a diagnostic message if verbose output is enabled.
func (config *Config) Debugf(format string, a ...interface{}) {
	if config == nil || !config.Verbose {
		return
	}
	fmt.Printf(format, a...)
}
