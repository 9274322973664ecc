// Package core defines the shared language of querydef.
//
// This package contains:
//   - Statements and their parameter declarations
//   - The StatementSource interface implemented by statement file parsers
//
// The Golden Rule: pkg/core imports ONLY pkg/ordered and stdlib.
// All other packages depend on core, not the reverse.
package core
