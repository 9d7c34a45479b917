package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventease/internal/domain"
)

func TestBlobStore_Get(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		key     string
		mock    func(mock sqlmock.Sqlmock)
		want    string
		wantErr bool
		errIs   error
	}{
		{
			name: "success",
			key:  domain.KeyEvents,
			mock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"value"}).AddRow([]byte(`{"e1":{}}`))
				mock.ExpectQuery(`SELECT value`).
					WithArgs(domain.KeyEvents).
					WillReturnRows(rows)
			},
			want: `{"e1":{}}`,
		},
		{
			name: "missing key returns ErrKeyNotFound",
			key:  "nope",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT value`).
					WithArgs("nope").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: true,
			errIs:   domain.ErrKeyNotFound,
		},
		{
			name: "db error",
			key:  domain.KeyLikes,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT value`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.mock(mock)

			store := NewBlobStore(db)
			got, err := store.Get(ctx, tt.key)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					assert.ErrorIs(t, err, tt.errIs)
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, string(got))
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBlobStore_Set(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO kv_blobs`).
		WithArgs(domain.KeyUsersDB, []byte(`[]`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	store := NewBlobStore(db)
	require.NoError(t, store.Set(ctx, domain.KeyUsersDB, []byte(`[]`)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlobStore_Delete(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM kv_blobs`).
		WithArgs(domain.KeySessionUser).
		WillReturnResult(sqlmock.NewResult(0, 1))

	store := NewBlobStore(db)
	require.NoError(t, store.Delete(ctx, domain.KeySessionUser))
	assert.NoError(t, mock.ExpectationsWereMet())
}
