// Package engine opens database/sql connections on the modernc.org/sqlite
// driver so the feature catalog and its tests share one driver setup.
package engine
