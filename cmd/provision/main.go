// Command provision creates an account administratively, bypassing the web
// layer: it prompts for a password without echo, hashes it, and inserts the
// row directly.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/mkorobovs/sitekeeper/internal/cryptox"
	"github.com/mkorobovs/sitekeeper/internal/server/config"
	"github.com/mkorobovs/sitekeeper/internal/server/db"
	"github.com/mkorobovs/sitekeeper/internal/server/models"
	"github.com/mkorobovs/sitekeeper/internal/server/repositories/users"
)

func main() {

	defaults := &config.Config{}
	defaults.LoadDefaults()

	dsn := flag.String("d", defaults.DatabaseDSN, "database DSN")
	username := flag.String("n", "", "username")
	email := flag.String("e", "", "email address")
	membership := flag.String("m", "admin", "membership level")
	flag.Parse()

	if *username == "" || *email == "" {
		flag.Usage()
		os.Exit(2)
	}

	fmt.Println("Enter password")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		log.Fatalf("read password: %v", err)
	}
	if strings.TrimSpace(string(password)) == "" {
		log.Fatal("password must not be empty")
	}

	hash, err := cryptox.HashPassword(string(password))
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	pool, err := db.Open(*dsn)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	defer pool.Close()

	repo := users.NewPostgresRepository(pool)
	user, err := repo.Create(context.Background(), &models.User{
		Username:   *username,
		Password:   hash,
		Email:      *email,
		Membership: *membership,
	})
	if err != nil {
		log.Fatalf("create user: %v", err)
	}

	fmt.Printf("created user %s (id %d)\nuid: %s\nsid: %s\n", user.Username, user.ID, user.UID, user.SID)
}
