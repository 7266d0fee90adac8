// Package feature parses precomputed audio feature records and extracts the
// numeric vectors used for similarity search. A record is a JSON object of
// the form {"data":[{"values":[meta, f1, f2, ...]}]}; the Layout describes
// which frame is inspected and how many leading values are metadata.
package feature
