// Command makeadmin promotes an existing account to the admin role.  It is
// the only way a user becomes an admin: public registration always creates
// customers, and the dashboard cannot escalate roles.
//
//	makeadmin -email ops@example.com
//
// Promoting an account that is already an admin succeeds without change.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/rvillanueva/resort-backoffice/internal/config"
	"github.com/rvillanueva/resort-backoffice/internal/database"
	"github.com/rvillanueva/resort-backoffice/internal/model"
	"github.com/rvillanueva/resort-backoffice/internal/repository"
	"github.com/rvillanueva/resort-backoffice/internal/service"
)

func main() {
	email := flag.String("email", "", "email of the account to promote")
	flag.Parse()
	if *email == "" {
		fmt.Fprintln(os.Stderr, "usage: makeadmin -email <address>")
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(database.Options{
		User: cfg.DBUser, Pass: cfg.DBPass,
		Host: cfg.DBHost, Port: cfg.DBPort, Name: cfg.DBName,
		MaxOpenConns:    cfg.DBMaxOpen,
		MaxIdleConns:    cfg.DBMaxIdle,
		ConnMaxLifetime: time.Duration(cfg.DBConnTTLMin) * time.Minute,
	})
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := repository.NewUserRepo(db)
	u, err := users.GetByEmail(ctx, *email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			fmt.Fprintf(os.Stderr, "no account with email %s\n", *email)
			os.Exit(1)
		}
		log.Fatalf("lookup: %v", err)
	}
	if u.Role == model.RoleAdmin {
		fmt.Printf("%s is already an admin\n", u.Email)
		return
	}
	if err := users.UpdateRole(ctx, u.ID, model.RoleAdmin); err != nil {
		log.Fatalf("promote: %v", err)
	}
	// Best-effort audit trail; promotion stands even if the broker is down.
	_ = service.RecordActivity(ctx, nil, fmt.Sprintf("Promoted %s to admin", u.Email))
	fmt.Printf("%s (%s) is now an admin\n", u.FullName, u.Email)
}
