package schema

import (
	"cmp"
	"context"
	"embed"
	"io/fs"
	"path"
	"slices"
	"strconv"
	"strings"

	kpgerr "github.com/azure/feast-azure/pkg/db/postgres/errors"
	kpool "github.com/azure/feast-azure/pkg/db/postgres/pool"
	xe "github.com/azure/feast-azure/pkg/errors"
	"github.com/jackc/pgerrcode"
)

//go:embed repository
var builtin embed.FS

// Builtin is the schema repository shipped with this package.
func Builtin() fs.FS {
	sub, err := fs.Sub(builtin, "repository")
	if err != nil {
		panic(err)
	}
	return sub
}

type pgSchema struct {
	pool       kpool.Pool
	repository fs.FS
}

// New creates a new Schema.
//
// # Args
//
// - pool
//
// - repository: The schema repository.
// Each directory named with a number holds SQL files of the version.
func New(pool kpool.Pool, repository fs.FS) *pgSchema {
	return &pgSchema{pool: pool, repository: repository}
}

type version struct {
	Version int
	Root    string
}

func (v version) Apply(ctx context.Context, repository fs.FS, conn kpool.Queryer) error {
	return fs.WalkDir(repository, v.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".sql") {
			return nil
		}

		query, err := fs.ReadFile(repository, p)
		if err != nil {
			return err
		}
		if _, err := conn.Exec(ctx, string(query)); err != nil {
			return xe.WrapWithNote(p, err)
		}
		return nil
	})
}

func (s *pgSchema) Version(ctx context.Context) (int, error) {
	var version *int
	if err := s.pool.QueryRow(
		ctx, `SELECT max("version") FROM "schema_version"`,
	).Scan(&version); err != nil {
		if kpgerr.Code(err) == pgerrcode.UndefinedTable {
			return 0, nil
		}
		return -1, err
	}
	if version == nil {
		return 0, nil
	}
	return *version, nil
}

func (s *pgSchema) Upgrade(ctx context.Context) error {
	schemaVersions, err := s.versions()
	if err != nil {
		return err
	}

	currentVersion, err := s.Version(ctx)
	if err != nil {
		return err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, v := range schemaVersions {
		if v.Version <= currentVersion {
			continue
		}
		if err := v.Apply(ctx, s.repository, tx); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM "schema_version"`); err != nil {
			return err
		}
		if _, err := tx.Exec(
			ctx, `INSERT INTO "schema_version" ("version") VALUES ($1)`, v.Version,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// versions lookup the schema from the schema repository.
//
// # Returns
//
// - []version: The list of schema versions, sorted by version number.
//
// - error: The error if any.
func (s *pgSchema) versions() ([]version, error) {
	dir, err := fs.ReadDir(s.repository, ".")
	if err != nil {
		return nil, err
	}

	schemaVersions := make([]version, 0, len(dir))
	for _, entry := range dir {
		if !entry.IsDir() {
			continue
		}
		v, err := strconv.Atoi(entry.Name())
		if err != nil {
			continue
		}
		schemaVersions = append(schemaVersions, version{
			Version: v,
			Root:    path.Clean(entry.Name()),
		})
	}
	slices.SortFunc(
		schemaVersions,
		func(i, j version) int { return cmp.Compare(i.Version, j.Version) },
	)

	return schemaVersions, nil
}
