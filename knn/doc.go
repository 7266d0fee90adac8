// Package knn finds the k feature records nearest to a center record by
// Euclidean distance. The search is exhaustive: every candidate vector is
// extracted, measured against the center and ranked, nearest first, with
// ties kept in candidate order.
//
// Records without usable features are skipped, as are candidates that fail
// to load; only a center that cannot be loaded fails the search.
package knn
