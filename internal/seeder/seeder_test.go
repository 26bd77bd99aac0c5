package seeder

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"

	"adminSeeder/internal/db"
	"adminSeeder/internal/password"
	"adminSeeder/internal/testutil"
	"adminSeeder/models"
	"adminSeeder/repository"
)

var admin = Account{Username: "dortusnimely", Password: "dortusnimely", Role: models.RoleAdmin}

type fakeUsers struct {
	got []*models.User
	err error
}

func (f *fakeUsers) Upsert(_ context.Context, u *models.User) error {
	f.got = append(f.got, u)
	return f.err
}

func newTestSeeder(users UserUpserter, out *bytes.Buffer) *Seeder {
	return &Seeder{Users: users, Out: out, Log: zap.NewNop(), Cost: bcrypt.MinCost}
}

func TestRun_Success(t *testing.T) {
	users := &fakeUsers{}
	var out bytes.Buffer

	err := newTestSeeder(users, &out).Run(context.Background(), "chief", "pw", models.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, users.got, 1)

	u := users.got[0]
	assert.Equal(t, "chief", u.Username)
	assert.Equal(t, models.RoleAdmin, u.Role)
	ok, err := password.Verify(u.PasswordHash, "pw")
	require.NoError(t, err)
	assert.True(t, ok)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Password hash: "+u.PasswordHash, lines[0])
	assert.Equal(t, `✓ Admin user "chief" created successfully`, lines[1])
	assert.Equal(t, "✓ Role: admin", lines[2])
}

func TestRun_LogsNothingAtInfo(t *testing.T) {
	testCases := []struct {
		name  string
		users *fakeUsers
		lines int
	}{
		{name: "success", users: &fakeUsers{}, lines: 3},
		{name: "write failure", users: &fakeUsers{err: errors.New("disk I/O error")}, lines: 2},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.InfoLevel)
			var out bytes.Buffer
			s := &Seeder{Users: tc.users, Out: &out, Log: zap.New(core), Cost: bcrypt.MinCost}

			_ = s.Run(context.Background(), "chief", "pw", models.RoleAdmin)
			assert.Zero(t, logs.Len(), "console lines must be the only output")
			assert.Equal(t, tc.lines, strings.Count(out.String(), "\n"))
		})
	}
}

func TestRun_NonAdminRoleWording(t *testing.T) {
	testCases := []struct {
		role string
		want string
	}{
		{role: models.RoleAdmin, want: `✓ Admin user "sam" created successfully`},
		{role: models.RoleOfficer, want: `✓ User "sam" created successfully`},
		{role: models.RoleSupervisor, want: `✓ User "sam" created successfully`},
	}
	for _, tc := range testCases {
		t.Run(tc.role, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, newTestSeeder(&fakeUsers{}, &out).Run(context.Background(), "sam", "pw", tc.role))

			lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
			require.Len(t, lines, 3)
			assert.Equal(t, tc.want, lines[1])
			assert.Equal(t, "✓ Role: "+tc.role, lines[2])
		})
	}
}

func TestRun_WriteFailure(t *testing.T) {
	cause := errors.New("disk I/O error")
	users := &fakeUsers{err: cause}
	var out bytes.Buffer

	err := newTestSeeder(users, &out).Run(context.Background(), "chief", "pw", models.RoleAdmin)
	assert.ErrorIs(t, err, cause)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Password hash: $2a$"))
	assert.Equal(t, "Error: disk I/O error", lines[1])
	assert.NotContains(t, out.String(), "✓")
}

func TestRun_HashFailure(t *testing.T) {
	users := &fakeUsers{}
	var out bytes.Buffer

	err := newTestSeeder(users, &out).Run(context.Background(), "chief", strings.Repeat("x", 100), models.RoleAdmin)
	assert.ErrorIs(t, err, password.ErrTooLong)
	assert.Empty(t, users.got)
	assert.True(t, strings.HasPrefix(out.String(), "Error: "))
}

func TestNew_Defaults(t *testing.T) {
	s := New(&fakeUsers{}, nil)
	assert.NotNil(t, s.Log)
	assert.NotNil(t, s.Out)
	assert.Equal(t, password.DefaultCost, s.Cost)
}

// migratedFile returns the path of a file database with the schema applied.
func migratedFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "police_cases.db")
	d, err := db.OpenAndMigrate(path)
	require.NoError(t, err)
	require.NoError(t, d.Close())
	return path
}

func seedFile(t *testing.T, path string, out *bytes.Buffer) error {
	t.Helper()
	d, err := db.Open(path)
	require.NoError(t, err)
	return SeedAndClose(context.Background(), d, admin, out, zap.NewNop(), bcrypt.MinCost)
}

func TestSeedAndClose_EmptyTable(t *testing.T) {
	path := migratedFile(t)
	var out bytes.Buffer

	require.NoError(t, seedFile(t, path, &out))

	d, err := db.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	assert.Equal(t, 1, testutil.CountUsers(t, d, admin.Username))
	u, err := repository.NewUserRepository(d).GetByUsername(context.Background(), admin.Username)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, models.RoleAdmin, u.Role)

	ok, err := password.Verify(u.PasswordHash, admin.Password)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, out.String(), "Password hash: "+u.PasswordHash)
}

func TestSeedAndClose_TwiceKeepsOneRow(t *testing.T) {
	path := migratedFile(t)
	var first, second bytes.Buffer

	require.NoError(t, seedFile(t, path, &first))
	require.NoError(t, seedFile(t, path, &second))
	assert.NotEqual(t, first.String(), second.String(), "each run salts afresh")

	d, err := db.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	assert.Equal(t, 1, testutil.CountUsers(t, d, admin.Username))

	u, err := repository.NewUserRepository(d).GetByUsername(context.Background(), admin.Username)
	require.NoError(t, err)
	assert.Contains(t, second.String(), u.PasswordHash, "second run's hash wins")
}

func TestSeedAndClose_MissingTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blank.db")
	var out bytes.Buffer

	var err error
	assert.NotPanics(t, func() { err = seedFile(t, path, &out) })
	assert.ErrorIs(t, err, repository.ErrWriteFailed)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "Error: "))
	assert.Contains(t, lines[1], "no such table")
}

func TestSeedAndClose_ClosesOnEveryPath(t *testing.T) {
	t.Parallel()

	upsert := regexp.QuoteMeta(`INSERT OR REPLACE INTO users (username, password_hash, role) VALUES (?, ?, ?)`)

	testCases := []struct {
		name    string
		setup   func(sqlmock.Sqlmock)
		wantErr bool
	}{
		{
			name: "success",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectExec(upsert).WillReturnResult(sqlmock.NewResult(1, 1))
				m.ExpectCommit()
				m.ExpectClose()
			},
		},
		{
			name: "locked database",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectExec(upsert).WillReturnError(errors.New("database is locked"))
				m.ExpectRollback()
				m.ExpectClose()
			},
			wantErr: true,
		},
		{
			name: "close error is only logged",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectExec(upsert).WillReturnResult(sqlmock.NewResult(1, 1))
				m.ExpectCommit()
				m.ExpectClose().WillReturnError(errors.New("close failed"))
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			d, mock, err := sqlmock.New()
			require.NoError(t, err)
			tc.setup(mock)

			var out bytes.Buffer
			err = SeedAndClose(context.Background(), d, admin, &out, nil, bcrypt.MinCost)
			if tc.wantErr {
				assert.ErrorIs(t, err, repository.ErrWriteFailed)
				assert.Contains(t, out.String(), "Error: write failed: database is locked")
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
