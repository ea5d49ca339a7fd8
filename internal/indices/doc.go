// Package indices implements the metric engines run over a normalized
// dataset: regional contamination (ICR), temporal change (TCT), depth
// correlation, data completeness, sampling-method diversity, and the
// composite risk index (IGRM) that blends three of them.
//
// Every engine is a pure function of the dataset and the policy [Weights].
// Engines never share mutable state. Only [ComputeIGRM] reads other engines'
// results, and only by (ocean, region) key.
//
// Region groups treat a missing ocean or region as a key of its own, ordered
// after every named key. Tables sorted by a metric use a stable sort over that
// key order, so ties are deterministic.
package indices
