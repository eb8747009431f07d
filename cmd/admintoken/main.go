// Command admintoken signs a bearer token for a back-office admin.
// The admin must exist and be active for the server to accept it.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"savingsdesk/internal/app/logger"
	"savingsdesk/internal/app/model"
	"savingsdesk/internal/app/session"
)

func main() {
	secret := flag.StringP("secret", "s", os.Getenv("APP_SECRET_KEY"), "Token signing secret")
	issuer := flag.StringP("issuer", "i", "savingsdesk", "Token issuer")
	lifetime := flag.DurationP("lifetime", "t", 8*time.Hour, "Token lifetime")
	id := flag.Int64("admin-id", 0, "Admin id")
	username := flag.String("username", "", "Admin username")
	role := flag.String("role", "admin", "Admin role")
	flag.Parse()

	l := logger.New(false, true)

	if *secret == "" || *id <= 0 {
		flag.Usage()
		os.Exit(2)
	}

	// Create never reads the admin store
	s := session.NewJWT(*secret, nil,
		session.WithIssuer(*issuer),
		session.WithTokenLifetime(*lifetime),
	)

	token, err := s.Create(context.Background(), &model.Admin{ID: *id, Username: *username, Role: *role})
	if err != nil {
		l.Fatal().Err(err).Msg("Token sign failed")
	}

	fmt.Println(token)
}
