package postgres

import (
	"context"
	"io/fs"

	kdb "github.com/azure/feast-azure/pkg/db"
	kpgobj "github.com/azure/feast-azure/pkg/db/postgres/object"
	kpool "github.com/azure/feast-azure/pkg/db/postgres/pool"
	kpgproj "github.com/azure/feast-azure/pkg/db/postgres/project"
	kpgschema "github.com/azure/feast-azure/pkg/db/postgres/schema"
	xe "github.com/azure/feast-azure/pkg/errors"
	"github.com/jackc/pgx/v4/pgxpool"
)

type feastDBPostgres struct {
	pool     kpool.Pool
	projects kdb.ProjectInterface
	objects  map[kdb.Kind]kdb.ObjectInterface
	schema   kdb.SchemaInterface
}

type Config struct {
	// SchemaRepository is the directory tree of schema versions.
	//
	// When nil, the builtin one is used.
	SchemaRepository fs.FS
}

func DefaultConfig() Config {
	return Config{}
}

type Option func(*Config) *Config

func WithSchemaRepository(repository fs.FS) Option {
	return func(c *Config) *Config {
		c.SchemaRepository = repository
		return c
	}
}

// New connects to the database at url.
func New(
	ctx context.Context,
	url string,
	options ...Option,
) (kdb.FeastDatabase, error) {
	pool, err := pgxpool.Connect(ctx, url)
	if err != nil {
		return nil, xe.Wrap(err)
	}

	c := DefaultConfig()
	for _, option := range options {
		c = *option(&c)
	}

	return Wrap(kpool.Wrap(pool), c), nil
}

// Wrap builds FeastDatabase on the pool.
func Wrap(p kpool.Pool, c Config) kdb.FeastDatabase {
	repository := c.SchemaRepository
	if repository == nil {
		repository = kpgschema.Builtin()
	}

	objects := map[kdb.Kind]kdb.ObjectInterface{}
	for _, k := range []kdb.Kind{kdb.KindEntity, kdb.KindFeatureView, kdb.KindFeatureService} {
		objects[k] = kpgobj.New(p, k)
	}

	return &feastDBPostgres{
		pool:     p,
		projects: kpgproj.New(p),
		objects:  objects,
		schema:   kpgschema.New(p, repository),
	}
}

func (f *feastDBPostgres) Projects() kdb.ProjectInterface {
	return f.projects
}

// Objects returns the store of the kind. Unknown kinds give nil.
func (f *feastDBPostgres) Objects(kind kdb.Kind) kdb.ObjectInterface {
	return f.objects[kind]
}

func (f *feastDBPostgres) Schema() kdb.SchemaInterface {
	return f.schema
}

func (f *feastDBPostgres) Close() error {
	f.pool.Close()
	return nil
}
