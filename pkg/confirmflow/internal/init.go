// Package internal contains the shared infrastructure for the confirmflow
// framework: logging here, and configuration, message catalog, icons, paging,
// input decoding and the SDL screen in subpackages.
// Types and functions in this package are not part of the public API.
package internal
