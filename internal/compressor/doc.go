// Package compressor implements the multi-stage prompt compression pipeline.
//
// A prompt flows through strictly sequential stages, each a pure function of
// its input text plus configuration:
//
//  1. Filler removal: configured regex patterns and literal filler words are
//     stripped, along with a leading politeness preamble.
//  2. Normalization: an idempotent tidy pass fixing spacing, punctuation
//     duplication, and capitalization.
//  3. Smart reduction: each word gets a heuristic importance score and the
//     lowest-scoring words are removed up to an adaptive target fraction,
//     never touching hard-preserved words (question words, negations,
//     numbers, acronyms, identifiers).
//  4. Extractive selection: sentences are embedded and the ones most similar
//     to the whole document are kept, in document order.
//  5. Aggressive fallback: when the stages above produced no net token
//     reduction, configured last-resort patterns or a generic trailing-clause
//     strip are tried.
//  6. Validation: cosine similarity between original and compressed text
//     flags quality failures without blocking output.
//
// The embedding encoder is optional at runtime. Every stage that uses it
// degrades to pass-through behavior when it is unavailable; only the token
// counter is a hard requirement, injected via the TokenCounter interface.
package compressor
