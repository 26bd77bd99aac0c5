// Package seeder writes the bootstrap administrator account.
package seeder

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"adminSeeder/internal/password"
	"adminSeeder/models"
	"adminSeeder/repository"
)

// UserUpserter persists a user, replacing any row with the same username.
type UserUpserter interface {
	Upsert(ctx context.Context, u *models.User) error
}

// Seeder hashes a password and upserts one user row.
// Console lines go to Out; diagnostics go to Log.
type Seeder struct {
	Users UserUpserter
	Out   io.Writer
	Log   *zap.Logger
	Cost  int
}

// New returns a Seeder printing to stdout at the default bcrypt cost.
func New(users UserUpserter, log *zap.Logger) *Seeder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Seeder{Users: users, Out: os.Stdout, Log: log, Cost: password.DefaultCost}
}

// Run seeds (username, password, role). On failure it prints a single
// "Error: <cause>" line and returns the error; it never panics.
func (s *Seeder) Run(ctx context.Context, username, plain, role string) error {
	if s.Log == nil {
		s.Log = zap.NewNop()
	}
	if s.Out == nil {
		s.Out = os.Stdout
	}
	cost := s.Cost
	if cost == 0 {
		cost = password.DefaultCost
	}
	hash, err := password.HashWithCost(plain, cost)
	if err != nil {
		return s.fail(username, err)
	}
	fmt.Fprintf(s.Out, "Password hash: %s\n", hash)

	u := &models.User{Username: username, PasswordHash: hash, Role: role}
	if err := s.Users.Upsert(ctx, u); err != nil {
		return s.fail(username, err)
	}

	// At the default level the console lines are the only output.
	s.Log.Debug("user seeded", zap.String("username", username), zap.String("role", role), zap.Int("cost", cost))
	fmt.Fprintf(s.Out, "✓ %s %q created successfully\n", accountLabel(role), username)
	fmt.Fprintf(s.Out, "✓ Role: %s\n", role)
	return nil
}

// Account is the user written by SeedAndClose.
type Account struct {
	Username string
	Password string
	Role     string
}

// SeedAndClose seeds acct into d and releases d on every exit path.
func SeedAndClose(ctx context.Context, d *sql.DB, acct Account, out io.Writer, log *zap.Logger, cost int) error {
	if log == nil {
		log = zap.NewNop()
	}
	defer func() {
		if err := d.Close(); err != nil {
			log.Warn("close db", zap.Error(err))
		}
	}()
	s := &Seeder{Users: repository.NewUserRepository(d), Out: out, Log: log, Cost: cost}
	return s.Run(ctx, acct.Username, acct.Password, acct.Role)
}

// accountLabel names the account kind in the success line.
func accountLabel(role string) string {
	if role == models.RoleAdmin {
		return "Admin user"
	}
	return "User"
}

func (s *Seeder) fail(username string, err error) error {
	s.Log.Debug("seed user failed", zap.String("username", username), zap.Error(err))
	fmt.Fprintf(s.Out, "Error: %v\n", err)
	return err
}
