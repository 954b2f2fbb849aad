// Package symbols turns foreign source text into the set of top-level
// declared symbols, dispatching by file extension to a language profile.
//
// Each profile degrades gracefully through up to three tiers: a native
// parser where one exists in Go, a grammar-based declaration-header parser,
// and a keyword heuristic as last resort. A file that fails every available
// tier is reported as a parse failure for that file alone; it never aborts
// a validation run.
//
// Known limitation: only top-level declarations are recognized. Block
// scoped bindings and re-exports are invisible to every tier.
package symbols
