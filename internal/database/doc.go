// Package database provides the catalog's persistence layer.
//
// The root package owns the gorm connection and schema migration. The
// authors and books subpackages hold the per-entity repositories; each
// takes the *gorm.DB handle explicitly so callers control the connection
// lifecycle.
package database
