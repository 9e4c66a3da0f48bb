package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"

	"campusai/internal/auth"
	"campusai/internal/config"
	"campusai/internal/db"
	apperrors "campusai/internal/errors"
	"campusai/internal/logger"
	"campusai/internal/repository"
	"campusai/internal/service"
)

// SeedUser is one entry of the seed file.
type SeedUser struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	RollNo   string `json:"rollNo"`
	Password string `json:"password"`
}

// Result counts what a seed run did.
type Result struct {
	Created  int
	Existing int
	Rejected int
}

func main() {
	file := flag.String("file", "users.json", "JSON array of {name, role, rollNo, password}")
	flag.Parse()

	cfg := config.Load()
	log := logger.New(&logger.Config{Level: cfg.LogLevel, JSON: cfg.LogJSON, Output: os.Stdout})
	log.Info("starting seed", "file", *file, "db", cfg.DBPath)

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal("open seed file", "err", err)
	}
	defer f.Close()

	users, err := readSeedUsers(f)
	if err != nil {
		log.Fatal("read seed file", "err", err)
	}

	gormDB, err := db.NewSQLite(cfg.DBPath, log)
	if err != nil {
		log.Fatal("connect to database", "err", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal("run migrations", "err", err)
	}

	hasher, err := auth.NewBcryptHasher(auth.DefaultCost)
	if err != nil {
		log.Fatal("init hasher", "err", err)
	}
	authService := service.NewAuthService(repository.NewUserRepository(gormDB), hasher, service.NewRollNoValidator())

	res, err := seedUsers(logger.ContextWithLogger(context.Background(), log), log, authService, users)
	if err != nil {
		log.Fatal("seed failed", "err", err)
	}
	log.Info("seed completed", "created", res.Created, "existing", res.Existing, "rejected", res.Rejected)
}

func readSeedUsers(r io.Reader) ([]SeedUser, error) {
	var users []SeedUser
	if err := json.NewDecoder(r).Decode(&users); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}
	return users, nil
}

// seedUsers registers each user through the signup path. Duplicates and
// invalid entries are counted and skipped; any other error stops the run.
func seedUsers(ctx context.Context, log *charmlog.Logger, svc service.AuthService, users []SeedUser) (Result, error) {
	var res Result
	for i, u := range users {
		_, err := svc.Signup(ctx, service.SignupInput{
			Name:     u.Name,
			Role:     u.Role,
			RollNo:   u.RollNo,
			Password: u.Password,
		})
		switch {
		case err == nil:
			res.Created++
		case errors.Is(err, apperrors.ErrDuplicateKey):
			res.Existing++
		case errors.Is(err, apperrors.ErrMissingField),
			errors.Is(err, apperrors.ErrInvalidRollNo),
			errors.Is(err, apperrors.ErrPasswordTooLong):
			log.Warn("skipping invalid entry", "index", i, "roll_no", u.RollNo, "err", err)
			res.Rejected++
		default:
			return res, fmt.Errorf("seed entry %d (%s): %w", i, u.RollNo, err)
		}
	}
	return res, nil
}
