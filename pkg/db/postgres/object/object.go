package object

import (
	"context"
	"errors"
	"time"

	kdb "github.com/azure/feast-azure/pkg/db"
	kpgerr "github.com/azure/feast-azure/pkg/db/postgres/errors"
	kpool "github.com/azure/feast-azure/pkg/db/postgres/pool"
	"github.com/jackc/pgx/v4"
)

type objectPG struct { // implements kdb.ObjectInterface
	kind kdb.Kind
	pool kpool.Pool
	now  func() time.Time
}

type Option func(*objectPG) *objectPG

func WithClock(now func() time.Time) Option {
	return func(o *objectPG) *objectPG {
		o.now = now
		return o
	}
}

// New returns the store of objects of the kind.
func New(pool kpool.Pool, kind kdb.Kind, options ...Option) *objectPG {
	o := &objectPG{kind: kind, pool: pool, now: time.Now}
	for _, opt := range options {
		o = opt(o)
	}
	return o
}

var _ kdb.ObjectInterface = &objectPG{}

const columns = `"kind", "project", "name", "proto", "created_time", "last_updated_time"`

func scan(row pgx.Row) (kdb.Object, error) {
	var o kdb.Object
	var kind string
	if err := row.Scan(
		&kind, &o.Project, &o.Name, &o.Proto, &o.CreatedTime, &o.LastUpdatedTime,
	); err != nil {
		return kdb.Object{}, err
	}
	o.Kind = kdb.Kind(kind)
	o.CreatedTime = o.CreatedTime.UTC()
	o.LastUpdatedTime = o.LastUpdatedTime.UTC()
	return o, nil
}

func (o *objectPG) Kind() kdb.Kind {
	return o.kind
}

func (o *objectPG) missing(project, name string) error {
	return kpgerr.Missing{Table: "object", Identity: o.kind.String() + ":" + project + "/" + name}
}

func (o *objectPG) Get(ctx context.Context, project string, name string) (kdb.Object, error) {
	obj, err := scan(o.pool.QueryRow(
		ctx,
		`SELECT `+columns+` FROM "object" WHERE "kind" = $1 AND "project" = $2 AND "name" = $3`,
		o.kind.String(), project, name,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return kdb.Object{}, o.missing(project, name)
	}
	return obj, err
}

func (o *objectPG) List(ctx context.Context, project string) ([]kdb.Object, error) {
	rows, err := o.pool.Query(
		ctx,
		`SELECT `+columns+` FROM "object" WHERE "kind" = $1 AND "project" = $2 ORDER BY "seq"`,
		o.kind.String(), project,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ret := []kdb.Object{}
	for rows.Next() {
		obj, err := scan(rows)
		if err != nil {
			return nil, err
		}
		ret = append(ret, obj)
	}
	return ret, rows.Err()
}

func (o *objectPG) Create(ctx context.Context, obj kdb.Object) (kdb.Object, error) {
	now := o.now().UTC()
	created, err := scan(o.pool.QueryRow(
		ctx,
		`INSERT INTO "object" (`+columns+`) VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING `+columns,
		o.kind.String(), obj.Project, obj.Name, obj.Proto, now,
	))
	switch {
	case err == nil:
		return created, nil
	case kpgerr.IsUniqueViolation(err):
		return kdb.Object{}, kpgerr.Conflict{
			Table: "object", Identity: o.kind.String() + ":" + obj.Project + "/" + obj.Name, Cause: err,
		}
	case kpgerr.IsForeignKeyViolation(err):
		return kdb.Object{}, kpgerr.Missing{Table: "project", Identity: obj.Project}
	default:
		return kdb.Object{}, err
	}
}

func (o *objectPG) Update(ctx context.Context, obj kdb.Object) (kdb.Object, error) {
	now := o.now().UTC()
	updated, err := scan(o.pool.QueryRow(
		ctx,
		`UPDATE "object" SET "proto" = $4, "last_updated_time" = $5
		WHERE "kind" = $1 AND "project" = $2 AND "name" = $3
		RETURNING `+columns,
		o.kind.String(), obj.Project, obj.Name, obj.Proto, now,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return kdb.Object{}, o.missing(obj.Project, obj.Name)
	}
	return updated, err
}

func (o *objectPG) Upsert(ctx context.Context, obj kdb.Object) (kdb.Object, error) {
	now := o.now().UTC()
	upserted, err := scan(o.pool.QueryRow(
		ctx,
		`INSERT INTO "object" (`+columns+`) VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT ("kind", "project", "name")
		DO UPDATE SET "proto" = EXCLUDED."proto", "last_updated_time" = EXCLUDED."last_updated_time"
		RETURNING `+columns,
		o.kind.String(), obj.Project, obj.Name, obj.Proto, now,
	))
	if kpgerr.IsForeignKeyViolation(err) {
		return kdb.Object{}, kpgerr.Missing{Table: "project", Identity: obj.Project}
	}
	return upserted, err
}

func (o *objectPG) Delete(ctx context.Context, project string, name string) error {
	tag, err := o.pool.Exec(
		ctx,
		`DELETE FROM "object" WHERE "kind" = $1 AND "project" = $2 AND "name" = $3`,
		o.kind.String(), project, name,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return o.missing(project, name)
	}
	return nil
}
