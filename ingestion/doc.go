// Package ingestion provides pipeline orchestration for importing the poem dataset.
//
// The Pipeline type manages the import workflow, including:
//   - Fingerprinting the source documents and skipping unchanged imports
//   - Converting dataset records and deriving line counts
//   - Resolving compact morphology against the lexicon
//   - Validating every poem and replacing the stored catalog
//
// Conversion is performed concurrently on a worker pool; results are
// reassembled in dataset order before anything is written. A single invalid
// poem fails the whole import and leaves the stored catalog untouched.
package ingestion
