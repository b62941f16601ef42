package ports

import "github.com/bft-labs/postboard/pkg/log"

// Logger is the structured logger used across internal packages.
type Logger = log.Logger

// Field is a structured log field.
type Field = log.Field

// Field constructors.
var (
	String   = log.String
	Int      = log.Int
	Duration = log.Duration
	Err      = log.Err
)
