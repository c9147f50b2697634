// Package llm talks to the classification service and turns its free-text
// responses into typed waste classifications.
//
// The package has three layers: Client implementations handle the HTTP
// round-trip and return the raw reply text; ParseResponse isolates and
// validates the JSON payload embedded in that text; Classifier ties the two
// together with the bin-type fallback resolver, caching, and rate limiting.
package llm
