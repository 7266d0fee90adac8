// Package index defines a minimal abstraction for vector indexes that can be
// built from feature vectors and queried for the k nearest neighbours.
// The bruteforce implementation scans every vector.
package index
