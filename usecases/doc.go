// Package usecases holds the pure transformations that turn store and catalog
// data into screen-ready view models. Nothing here performs I/O; inputs are
// never mutated and every function returns fresh slices and maps.
package usecases
