// Package vector holds the numeric side of audiosim:
//   - Euclidean distance functions (L2Distance, L2DistanceF32)
//   - BLOB encoding of feature values and frames
//   - SQLiteStore: a feature catalog that serves records as a source.Source
//   - Schema helpers and Import to build a catalog from another source
package vector
