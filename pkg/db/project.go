package db

import (
	"context"
	"time"
)

// DataStore is a data store descriptor, kept as its JSON document.
type DataStore []byte

// Project is a record of a project.
type Project struct {
	Name         string
	Description  string
	Provider     string
	OfflineStore DataStore
	OnlineStore  DataStore

	// Flags is a JSON object.
	Flags     []byte
	IsDefault bool

	CreatedTime     time.Time
	LastUpdatedTime time.Time
}

type ProjectInterface interface {
	// Get returns the project.
	//
	// # Returns
	//
	// - Project
	//
	// - error: ErrMissing when the project is not found.
	Get(ctx context.Context, name string) (Project, error)

	// List returns all projects ordered by name.
	List(ctx context.Context) ([]Project, error)

	// Create registers a new project. CreatedTime and LastUpdatedTime are set to now.
	//
	// # Returns
	//
	// - Project: registered one.
	//
	// - error: ErrConflict when the project exists.
	Create(ctx context.Context, project Project) (Project, error)

	// Update replaces the project, keeping its CreatedTime.
	//
	// # Returns
	//
	// - Project: updated one.
	//
	// - error: ErrMissing when the project is not found.
	Update(ctx context.Context, project Project) (Project, error)

	// Delete removes the project.
	//
	// The project can be deleted only when it has no objects except the
	// sentinel entity, which is removed together.
	//
	// # Returns
	//
	// - error: ErrMissing when the project is not found,
	// or ErrProjectNotEmpty when it still has objects.
	Delete(ctx context.Context, name string) error
}
