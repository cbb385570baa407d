package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/frahmantamala/employee-management/internal/auth"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

type seedUser struct {
	Email    string
	Name     string
	Password string
}

type seedEmployee struct {
	Name       string
	Email      string
	Department *string
	Role       *string
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with API accounts and sample employees for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		_, db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		ctx := context.Background()

		if clearData {
			for _, table := range []string{"employees", "users"} {
				if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing users and employees")
		}

		users := []seedUser{
			{Email: "admin@mail.com", Name: "Admin", Password: "password"},
			{Email: "hr@mail.com", Name: "HR Staff", Password: "password"},
		}
		for _, u := range users {
			if err := seedAccount(ctx, db, u, cfg.Security.BCryptCost); err != nil {
				log.Fatalf("failed to seed user %s: %v", u.Email, err)
			}
		}

		engineering, sales, hr := "Engineering", "Sales", "HR"
		developer, manager, recruiter := "Developer", "Manager", "Recruiter"
		employees := []seedEmployee{
			{Name: "John Doe", Email: "john.doe@mail.com", Department: &engineering, Role: &developer},
			{Name: "Jane Smith", Email: "jane.smith@mail.com", Department: &engineering, Role: &manager},
			{Name: "Budi Santoso", Email: "budi.santoso@mail.com", Department: &sales, Role: &manager},
			{Name: "Siti Rahma", Email: "siti.rahma@mail.com", Department: &hr, Role: &recruiter},
			{Name: "Alex Lee", Email: "alex.lee@mail.com"},
		}
		for _, e := range employees {
			inserted, err := seedEmployeeRecord(ctx, db, e)
			if err != nil {
				log.Fatalf("failed to seed employee %s: %v", e.Email, err)
			}
			if inserted {
				fmt.Println("Seeded employee:", e.Email)
			}
		}

		fmt.Println("Seeding complete")
	},
}

func seedAccount(ctx context.Context, db *sqlx.DB, u seedUser, cost int) error {
	var exists int
	if err := db.GetContext(ctx, &exists, "SELECT COUNT(1) FROM users WHERE email = $1", u.Email); err != nil {
		return err
	}
	if exists > 0 {
		fmt.Println("user already exists:", u.Email)
		return nil
	}

	hash, err := auth.HashPassword(u.Password, cost)
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx,
		"INSERT INTO users (email, name, password_hash, is_active, created_at, updated_at) VALUES ($1, $2, $3, true, now(), now())",
		u.Email, u.Name, hash,
	); err != nil {
		return err
	}
	fmt.Println("Seeded user:", u.Email)
	return nil
}

func seedEmployeeRecord(ctx context.Context, db *sqlx.DB, e seedEmployee) (bool, error) {
	res, err := db.ExecContext(ctx,
		"INSERT INTO employees (name, email, department, role, date_joined) VALUES ($1, $2, $3, $4, CURRENT_DATE) ON CONFLICT (email) DO NOTHING",
		e.Name, e.Email, e.Department, e.Role,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
