package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"photoshare-api/models"
)

// noopPool satisfies gorm's connection interfaces without a server. In
// dry-run mode only BeginTx is ever called on it.
type noopPool struct{}

// noopTx is the transaction handed out by noopPool.
type noopTx struct {
	noopPool
}

var errNoDatabase = errors.New("no database in dry-run tests")

func (*noopPool) PrepareContext(context.Context, string) (*sql.Stmt, error) {
	return nil, errNoDatabase
}

func (*noopPool) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, errNoDatabase
}

func (*noopPool) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, errNoDatabase
}

func (*noopPool) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (*noopPool) BeginTx(context.Context, *sql.TxOptions) (gorm.ConnPool, error) {
	return &noopTx{}, nil
}

func (*noopTx) Commit() error { return nil }

func (*noopTx) Rollback() error { return nil }

type recordedSQL struct {
	SQL  string
	Vars []interface{}
}

// newDryRunDB returns a postgres-dialect gorm handle that builds statements
// without running them, and the list every built statement is appended to.
func newDryRunDB(t *testing.T) (*gorm.DB, *[]recordedSQL) {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: &noopPool{}}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	if err != nil {
		t.Fatalf("gorm.Open() error = %v", err)
	}

	recorded := &[]recordedSQL{}
	record := func(tx *gorm.DB) {
		*recorded = append(*recorded, recordedSQL{
			SQL:  tx.Statement.SQL.String(),
			Vars: append([]interface{}(nil), tx.Statement.Vars...),
		})
	}
	if err := db.Callback().Query().After("gorm:query").Register("test:record_query", record); err != nil {
		t.Fatalf("register query callback: %v", err)
	}
	if err := db.Callback().Update().After("gorm:update").Register("test:record_update", record); err != nil {
		t.Fatalf("register update callback: %v", err)
	}
	return db, recorded
}

func findSQL(t *testing.T, recorded []recordedSQL, prefix string) recordedSQL {
	t.Helper()
	for _, r := range recorded {
		if strings.HasPrefix(r.SQL, prefix) {
			return r
		}
	}
	t.Fatalf("no statement starting with %q in %+v", prefix, recorded)
	return recordedSQL{}
}

func hasVar(vars []interface{}, want interface{}) bool {
	for _, v := range vars {
		if wt, ok := want.(time.Time); ok {
			if vt, ok := v.(time.Time); ok && vt.Equal(wt) {
				return true
			}
			continue
		}
		if v == want {
			return true
		}
	}
	return false
}

func TestFriendshipRepository_TransitionSQL(t *testing.T) {
	db, recorded := newDryRunDB(t)
	repo := NewFriendshipRepository(db)

	reopenedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	next := &models.Friendship{
		ID:          "f1",
		RequesterID: "alice",
		RecipientID: "bob",
		Status:      models.FriendshipStatusPending,
		CreatedAt:   reopenedAt,
		UpdatedAt:   reopenedAt,
	}
	if _, err := repo.Transition(context.Background(), next, models.FriendshipStatusDeclined); err != nil {
		t.Fatalf("Transition() error = %v", err)
	}

	update := findSQL(t, *recorded, `UPDATE "friendships"`)
	for _, fragment := range []string{`"created_at"=`, `"updated_at"=`, `"status"=`, "id = $", "status = $"} {
		if !strings.Contains(update.SQL, fragment) {
			t.Errorf("SQL %q missing %q", update.SQL, fragment)
		}
	}

	tests := []struct {
		name string
		want interface{}
	}{
		{"id", "f1"},
		{"guard status", models.FriendshipStatusDeclined},
		{"new status", models.FriendshipStatusPending},
		{"requester", "alice"},
		{"timestamps", reopenedAt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !hasVar(update.Vars, tt.want) {
				t.Errorf("vars %v missing %v", update.Vars, tt.want)
			}
		})
	}
}

func TestReactionRepository_WithLockedPhotoSQL(t *testing.T) {
	db, recorded := newDryRunDB(t)
	repo := NewReactionRepository(db)

	called := false
	err := repo.WithLockedPhoto(context.Background(), "p1", func(tx ReactionTx, _ *models.Photo) error {
		called = true
		return tx.SaveStats("p1", models.ReactionStats{Like: 1, Total: 1})
	})
	if err != nil {
		t.Fatalf("WithLockedPhoto() error = %v", err)
	}
	if !called {
		t.Fatal("fn was not run")
	}

	lock := findSQL(t, *recorded, "SELECT")
	if !strings.Contains(lock.SQL, `FROM "photos"`) || !strings.HasSuffix(strings.TrimSpace(lock.SQL), "FOR UPDATE") {
		t.Errorf("lock SQL = %q, want a SELECT on photos ending in FOR UPDATE", lock.SQL)
	}
	if !hasVar(lock.Vars, "p1") {
		t.Errorf("lock vars %v missing photo id", lock.Vars)
	}

	stats := findSQL(t, *recorded, `UPDATE "photos"`)
	if !strings.Contains(stats.SQL, `"reaction_total"=`) {
		t.Errorf("stats SQL = %q", stats.SQL)
	}
}

func TestReactionRepository_ListReactedPhotoIDsSQL(t *testing.T) {
	db, recorded := newDryRunDB(t)
	repo := NewReactionRepository(db)

	if _, err := repo.ListReactedPhotoIDs(context.Background(), "u1"); err != nil {
		t.Fatalf("ListReactedPhotoIDs() error = %v", err)
	}
	q := findSQL(t, *recorded, "SELECT")
	if !strings.Contains(q.SQL, `DISTINCT "photo_id"`) || !strings.Contains(q.SQL, `FROM "reactions"`) {
		t.Errorf("SQL = %q", q.SQL)
	}
	if !hasVar(q.Vars, "u1") {
		t.Errorf("vars %v missing user id", q.Vars)
	}
}
