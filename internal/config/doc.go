// Package config defines the format-agnostic definition model for a board,
// along with the Loader interface implemented by format-specific adapters
// (HCL, YAML).
//
// The model is a passive description of what the caller wrote: nothing in it
// is validated beyond syntax. All semantic validation happens later, when
// the model is replayed through the fluent builders, so a defective file
// produces the same complete defect ledger as defective builder calls.
package config
