package projects

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Project is one persisted unit: a named, owned list of cards. The card list
// is opaque to the server; it round-trips as JSONB.
type Project struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Cards        json.RawMessage `json:"cards"`
	ExportName   *string         `json:"exportName,omitempty"`
	LastModified time.Time       `json:"lastModified"`
}

// DB is the subset of pgxpool.Pool the repo issues statements through.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Repo struct {
	db DB
}

func NewRepo(db DB) *Repo {
	return &Repo{db: db}
}

// List returns all projects owned by userID, most recently modified first.
func (r *Repo) List(ctx context.Context, userID string) ([]Project, error) {
	const q = `
select id, name, cards, export_name, last_modified
from projects
where user_id = $1
order by last_modified desc;
`
	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Project, 0, 16)
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Cards, &p.ExportName, &p.LastModified); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Upsert inserts or updates a project. The WHERE clause on the conflict arm
// scopes updates to rows the caller owns: an upsert against another user's id
// affects zero rows and reports no error. Repeating an identical upsert is
// observably a no-op apart from the last_modified stamp.
func (r *Repo) Upsert(ctx context.Context, userID string, p Project) error {
	const q = `
insert into projects (id, user_id, name, cards, export_name, last_modified)
values ($1, $2, $3, $4, $5, now())
on conflict (id) do update set
    name = excluded.name,
    cards = excluded.cards,
    export_name = excluded.export_name,
    last_modified = now()
where projects.user_id = $2;
`
	_, err := r.db.Exec(ctx, q, p.ID, userID, p.Name, p.Cards, p.ExportName)
	return err
}

// Delete removes a project by id, scoped to the caller. Deleting an absent or
// foreign id is a no-op, not an error.
func (r *Repo) Delete(ctx context.Context, userID, id string) error {
	const q = `
delete from projects
where id = $1 and user_id = $2;
`
	_, err := r.db.Exec(ctx, q, id, userID)
	return err
}
