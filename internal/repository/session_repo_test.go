package repository

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"settingshub/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockRepo(t *testing.T) (*SessionSQLite, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewSessionSQLite(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

func TestSessionSQLite_Save(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name           string
		session        models.Session
		mockExpect     func(sqlmock.Sqlmock)
		wantErr        bool
		errContainsStr string
	}{
		{
			name:    "success",
			session: models.Session{ID: "s1", Token: "tok", CreatedAt: now},
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(upsertSessionSQL)).
					WithArgs("s1", "tok", now.UTC()).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name:    "exec error",
			session: models.Session{ID: "s2", Token: "tok2", CreatedAt: now},
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(upsertSessionSQL)).
					WithArgs("s2", "tok2", now.UTC()).
					WillReturnError(errors.New("db exec failed"))
			},
			wantErr:        true,
			errContainsStr: "insert session",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, cleanup := newMockRepo(t)
			defer cleanup()
			tc.mockExpect(mock)

			err := repo.Save(context.Background(), tc.session)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				if !strings.Contains(err.Error(), tc.errContainsStr) {
					t.Fatalf("error %q does not contain %q", err, tc.errContainsStr)
				}
				return
			}
			if err != nil {
				t.Fatalf("save: %v", err)
			}
		})
	}
}

func TestSessionSQLite_Get(t *testing.T) {
	now := time.Now().UTC()

	t.Run("found", func(t *testing.T) {
		repo, mock, cleanup := newMockRepo(t)
		defer cleanup()

		rows := sqlmock.NewRows([]string{"id", "token", "created_at"}).
			AddRow("s1", "tok", now)
		mock.ExpectQuery(regexp.QuoteMeta(selectSessionSQL)).
			WithArgs("s1").
			WillReturnRows(rows)

		s, err := repo.Get(context.Background(), "s1")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if s == nil || s.Token != "tok" {
			t.Fatalf("unexpected session: %+v", s)
		}
	})

	t.Run("not found returns nil, nil", func(t *testing.T) {
		repo, mock, cleanup := newMockRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectSessionSQL)).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"id", "token", "created_at"}))

		s, err := repo.Get(context.Background(), "missing")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if s != nil {
			t.Fatalf("expected nil session, got %+v", s)
		}
	})

	t.Run("query error", func(t *testing.T) {
		repo, mock, cleanup := newMockRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectSessionSQL)).
			WithArgs("s1").
			WillReturnError(errors.New("db down"))

		if _, err := repo.Get(context.Background(), "s1"); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestSessionSQLite_Delete(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(deleteSessionSQL)).
		WithArgs("s1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestSessionSQLite_DeleteExpired(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	cutoff := time.Now()
	mock.ExpectExec(regexp.QuoteMeta(deleteExpiredSessionSQL)).
		WithArgs(cutoff.UTC()).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteExpired(context.Background(), cutoff)
	if err != nil {
		t.Fatalf("delete expired: %v", err)
	}
	if n != 3 {
		t.Fatalf("rows affected: got %d, want 3", n)
	}
}
