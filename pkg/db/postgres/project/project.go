package project

import (
	"context"
	"errors"
	"time"

	kdb "github.com/azure/feast-azure/pkg/db"
	kpgerr "github.com/azure/feast-azure/pkg/db/postgres/errors"
	kpool "github.com/azure/feast-azure/pkg/db/postgres/pool"
	"github.com/azure/feast-azure/pkg/feast/core"
	"github.com/jackc/pgx/v4"
)

type projectPG struct { // implements kdb.ProjectInterface
	pool kpool.Pool
	now  func() time.Time
}

type Option func(*projectPG) *projectPG

func WithClock(now func() time.Time) Option {
	return func(p *projectPG) *projectPG {
		p.now = now
		return p
	}
}

func New(pool kpool.Pool, options ...Option) *projectPG {
	p := &projectPG{pool: pool, now: time.Now}
	for _, opt := range options {
		p = opt(p)
	}
	return p
}

var _ kdb.ProjectInterface = &projectPG{}

const columns = `"name", "description", "provider", "offline_store", "online_store", "flags", "is_default", "created_time", "last_updated_time"`

func scan(row pgx.Row) (kdb.Project, error) {
	var p kdb.Project
	var offline, online, flags []byte
	if err := row.Scan(
		&p.Name, &p.Description, &p.Provider, &offline, &online, &flags,
		&p.IsDefault, &p.CreatedTime, &p.LastUpdatedTime,
	); err != nil {
		return kdb.Project{}, err
	}
	p.OfflineStore = offline
	p.OnlineStore = online
	p.Flags = flags
	p.CreatedTime = p.CreatedTime.UTC()
	p.LastUpdatedTime = p.LastUpdatedTime.UTC()
	return p, nil
}

// nil for empty documents, to store SQL NULL.
func jsonb(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return b
}

func (p *projectPG) Get(ctx context.Context, name string) (kdb.Project, error) {
	proj, err := scan(p.pool.QueryRow(
		ctx, `SELECT `+columns+` FROM "project" WHERE "name" = $1`, name,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return kdb.Project{}, kpgerr.Missing{Table: "project", Identity: name}
	}
	return proj, err
}

func (p *projectPG) List(ctx context.Context) ([]kdb.Project, error) {
	rows, err := p.pool.Query(ctx, `SELECT `+columns+` FROM "project" ORDER BY "name"`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ret := []kdb.Project{}
	for rows.Next() {
		proj, err := scan(rows)
		if err != nil {
			return nil, err
		}
		ret = append(ret, proj)
	}
	return ret, rows.Err()
}

func (p *projectPG) Create(ctx context.Context, proj kdb.Project) (kdb.Project, error) {
	now := p.now().UTC()
	created, err := scan(p.pool.QueryRow(
		ctx,
		`INSERT INTO "project" (`+columns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING `+columns,
		proj.Name, proj.Description, proj.Provider,
		jsonb(proj.OfflineStore), jsonb(proj.OnlineStore), jsonb(proj.Flags),
		proj.IsDefault, now,
	))
	if err != nil {
		if kpgerr.IsUniqueViolation(err) {
			return kdb.Project{}, kpgerr.Conflict{Table: "project", Identity: proj.Name, Cause: err}
		}
		return kdb.Project{}, err
	}
	return created, nil
}

func (p *projectPG) Update(ctx context.Context, proj kdb.Project) (kdb.Project, error) {
	now := p.now().UTC()
	updated, err := scan(p.pool.QueryRow(
		ctx,
		`UPDATE "project" SET
			"description" = $2, "provider" = $3,
			"offline_store" = $4, "online_store" = $5, "flags" = $6,
			"is_default" = $7, "last_updated_time" = $8
		WHERE "name" = $1
		RETURNING `+columns,
		proj.Name, proj.Description, proj.Provider,
		jsonb(proj.OfflineStore), jsonb(proj.OnlineStore), jsonb(proj.Flags),
		proj.IsDefault, now,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return kdb.Project{}, kpgerr.Missing{Table: "project", Identity: proj.Name}
	}
	return updated, err
}

func (p *projectPG) Delete(ctx context.Context, name string) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var found string
	if err := tx.QueryRow(
		ctx, `SELECT "name" FROM "project" WHERE "name" = $1 FOR UPDATE`, name,
	).Scan(&found); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return kpgerr.Missing{Table: "project", Identity: name}
		}
		return err
	}

	var blocking bool
	if err := tx.QueryRow(
		ctx,
		`SELECT EXISTS (
			SELECT 1 FROM "object"
			WHERE "project" = $1 AND NOT ("kind" = $2 AND "name" = $3)
		)`,
		name, kdb.KindEntity.String(), core.DummyEntityName,
	).Scan(&blocking); err != nil {
		return err
	}
	if blocking {
		return kdb.ErrProjectNotEmpty
	}

	// objects left (the sentinel entity) are removed by cascade.
	if _, err := tx.Exec(ctx, `DELETE FROM "project" WHERE "name" = $1`, name); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
