// Package bruteforce provides a vector index that answers kNN queries by
// computing the distance from the query to every indexed vector and sorting.
// The distance step can fan out over a bounded number of goroutines without
// changing the result order.
package bruteforce
