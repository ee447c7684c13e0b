package threaded

import "github.com/gregl83/threaded/core"

// Re-export commonly used types from the core package for convenience.
// This allows users to import only the threaded package for most use cases.

// Job is the unit of work: a zero-argument, zero-result closure.
type Job = core.Job

// Config holds optional pool collaborators (logger, metrics, panic handling).
type Config = core.PoolConfig

// Logger is the structured logging interface used by the pool.
type Logger = core.Logger

// Field is a key-value pair for structured logging.
type Field = core.Field

// F creates a logging field.
var F = core.F

// DefaultConfig returns a Config with default collaborators.
var DefaultConfig = core.DefaultPoolConfig
