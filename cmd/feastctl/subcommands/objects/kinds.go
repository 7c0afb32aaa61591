package objects

import (
	"context"

	"github.com/azure/feast-azure/cmd/feastctl/subcommands/internal/manifest"
	"github.com/azure/feast-azure/pkg/feast/core"
	"github.com/azure/feast-azure/pkg/featurestore"
)

// Kind binds operations of featurestore.Client on one kind of objects.
type Kind[T any] struct {
	Kind manifest.Kind

	// Noun is the name of the kind in messages.
	Noun string

	// Unwrap takes the object out of a manifest entry. It returns false for other kinds.
	Unwrap func(featurestore.Object) (*T, bool)

	Apply  func(fs *featurestore.Client, ctx context.Context, obj *T, refresh bool) error
	Create func(fs *featurestore.Client, ctx context.Context, obj *T, refresh bool) error
	Update func(fs *featurestore.Client, ctx context.Context, obj *T, refresh bool) error
	Delete func(fs *featurestore.Client, ctx context.Context, name string, refresh bool) error
	Get    func(fs *featurestore.Client, ctx context.Context, name string, refresh bool) (*T, error)
	List   func(fs *featurestore.Client, ctx context.Context, refresh bool) ([]*T, error)
}

var Entity = Kind[core.Entity]{
	Kind: manifest.KindEntity,
	Noun: "entity",
	Unwrap: func(o featurestore.Object) (*core.Entity, bool) {
		e, ok := o.(featurestore.EntityObject)
		return e.Entity, ok
	},
	Apply:  (*featurestore.Client).ApplyEntity,
	Create: (*featurestore.Client).CreateEntity,
	Update: (*featurestore.Client).UpdateEntity,
	Delete: (*featurestore.Client).DeleteEntity,
	Get:    (*featurestore.Client).GetEntity,
	List:   (*featurestore.Client).ListEntities,
}

var FeatureView = Kind[core.FeatureView]{
	Kind: manifest.KindFeatureView,
	Noun: "feature view",
	Unwrap: func(o featurestore.Object) (*core.FeatureView, bool) {
		fv, ok := o.(featurestore.FeatureViewObject)
		return fv.FeatureView, ok
	},
	Apply:  (*featurestore.Client).ApplyFeatureView,
	Create: (*featurestore.Client).CreateFeatureView,
	Update: (*featurestore.Client).UpdateFeatureView,
	Delete: (*featurestore.Client).DeleteFeatureView,
	Get:    (*featurestore.Client).GetFeatureView,
	List:   (*featurestore.Client).ListFeatureViews,
}

var FeatureService = Kind[core.FeatureService]{
	Kind: manifest.KindFeatureService,
	Noun: "feature service",
	Unwrap: func(o featurestore.Object) (*core.FeatureService, bool) {
		fs, ok := o.(featurestore.FeatureServiceObject)
		return fs.FeatureService, ok
	},
	Apply:  (*featurestore.Client).ApplyFeatureService,
	Create: (*featurestore.Client).CreateFeatureService,
	Update: (*featurestore.Client).UpdateFeatureService,
	Delete: (*featurestore.Client).DeleteFeatureService,
	Get:    (*featurestore.Client).GetFeatureService,
	List:   (*featurestore.Client).ListFeatureServices,
}
