// Package domain contains the core model for katzefix.
//
// The domain does not depend on YAML parsing, the CLI or the filesystem.
// Infra adapters map into/from these types.
package domain
