package db

import "context"

type FeastDatabase interface {
	Projects() ProjectInterface

	// Objects returns the store of objects of the kind.
	Objects(kind Kind) ObjectInterface

	Schema() SchemaInterface
	Close() error
}

type SchemaInterface interface {
	// Version returns the schema version of the database. 0 means "no schema".
	Version(ctx context.Context) (int, error)

	// Upgrade applies schema versions newer than the current one.
	Upgrade(ctx context.Context) error
}
