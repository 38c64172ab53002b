// Package rider holds the dispatch view of delivery riders: identity, activity
// and the load-annotated Candidate used by the least-loaded assignment policy.
package rider
