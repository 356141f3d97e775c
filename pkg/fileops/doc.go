// Package fileops provides the filesystem checks rshackmcp performs before
// handing paths to rs-hack.
//
// rs-hack itself resolves every Rust source path and glob it receives, so
// tool parameters such as "src/**/*.rs" are never inspected here. The checks
// in this package cover the few paths the server owns:
//
//   - the configured working directory (ValidateDirectory)
//   - batch specification files forwarded to "rs-hack batch"
//     (ValidateFileAccess, ValidateFileSizeLimit)
//   - "~/" shortcuts in configuration values (ExpandPath)
//
// # Example: Batch Spec Pre-flight
//
//	if err := fileops.ValidateFileAccess(specPath); err != nil {
//	    return fmt.Errorf("batch spec: %w", err)
//	}
//	if err := fileops.ValidateFileSizeLimit(specPath, 1<<20); err != nil {
//	    return fmt.Errorf("batch spec: %w", err)
//	}
package fileops
