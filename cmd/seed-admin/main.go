// seed-admin creates the initial admin user (username: kaganAdmin) so the
// front-ends have an actor to attribute operations to.
//
// Usage:
//
//	DB_PATH=kagan.db go run ./cmd/seed-admin
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/kaganerp/kagan_backend/config"
	"github.com/kaganerp/kagan_backend/models"
	"github.com/kaganerp/kagan_backend/utils"
)

const (
	adminUsername = "kaganAdmin"
	adminPassword = "K@ganAdmin"
	adminName     = "Kagan Admin"
)

func main() {
	ctx := context.Background()

	db, err := config.ConnectDatabase("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect database: %v\n", err)
		os.Exit(1)
	}
	if err := models.MigrateTable(db); err != nil {
		fmt.Fprintf(os.Stderr, "failed to migrate tables: %v\n", err)
		os.Exit(1)
	}

	user, err := models.CreateUser(ctx, db, &models.NewUser{
		Username: adminUsername,
		FullName: adminName,
		Password: adminPassword,
		Role:     models.UserRoleAdmin,
	})
	if err != nil {
		var conflictErr *utils.ConflictError
		if errors.As(err, &conflictErr) {
			fmt.Println("admin user already exists, nothing to do")
			return
		}
		fmt.Fprintf(os.Stderr, "failed to create admin user: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("created admin user %s (id=%d)\n", user.Username, user.ID)
}
