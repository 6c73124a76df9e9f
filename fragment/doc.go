// Package fragment implements the documentation fragment tree that view and
// resource metadata is written in: ordered mappings ([Map]), sequences
// ([]any), scalars, and named references ([Ref]) resolved late against a
// [Resolver].
//
// Fragments are combined with [Merge], pruned with [Filter], and have their
// references replaced with [Resolve]. All three return fresh trees and never
// modify their inputs.
package fragment
