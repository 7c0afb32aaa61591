package registry

import (
	"errors"
	"fmt"
)

// ErrRegistryNotFound is returned when the registry document has never been written.
var ErrRegistryNotFound = errors.New("registry not found")

// ErrRegistryConflict is returned when the registry document was replaced by
// another writer after it was read.
var ErrRegistryConflict = errors.New("registry has been modified by another writer")

// ErrObjectNotFound matches every "<kind> not found" error of this package
// with errors.Is.
var ErrObjectNotFound = errors.New("object not found")

type EntityNotFoundError struct {
	Name    string
	Project string
}

func (e *EntityNotFoundError) Error() string {
	return fmt.Sprintf("entity %s does not exist in project %s", e.Name, e.Project)
}

func (e *EntityNotFoundError) Is(target error) bool {
	return target == ErrObjectNotFound
}

type FeatureViewNotFoundError struct {
	Name    string
	Project string
}

func (e *FeatureViewNotFoundError) Error() string {
	return fmt.Sprintf("feature view %s does not exist in project %s", e.Name, e.Project)
}

func (e *FeatureViewNotFoundError) Is(target error) bool {
	return target == ErrObjectNotFound
}

type FeatureServiceNotFoundError struct {
	Name    string
	Project string
}

func (e *FeatureServiceNotFoundError) Error() string {
	return fmt.Sprintf("feature service %s does not exist in project %s", e.Name, e.Project)
}

func (e *FeatureServiceNotFoundError) Is(target error) bool {
	return target == ErrObjectNotFound
}
