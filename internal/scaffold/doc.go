// Package scaffold creates a starter fsx.yaml from an embedded template.
package scaffold
