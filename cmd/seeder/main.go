// cmd/seeder/main.go
package main

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/unclebandit/crm-backend/internal/config"
	"github.com/unclebandit/crm-backend/internal/db"
	"github.com/unclebandit/crm-backend/internal/model"
	"github.com/unclebandit/crm-backend/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	conn, err := db.Open(cfg.DSN())
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	userRepo := &repository.UserRepository{DB: conn}
	interactionRepo := &repository.InteractionRepository{DB: conn}

	seedAdmin(userRepo)
	seedCustomer(userRepo, interactionRepo)

	log.Println("Database seeding completed successfully!")
}

func seedAdmin(users *repository.UserRepository) {
	existing, err := users.GetByUsername("admin")
	if err != nil {
		log.Fatal(err)
	}
	if existing != nil {
		log.Println("Admin account already exists.")
		return
	}

	log.Println("No admin account found. Creating default admin...")
	admin := &model.User{
		Username:     "admin",
		PasswordHash: mustHash("password"),
		Email:        "admin@crmproject.com",
		Role:         model.RoleAdmin,
		Status:       model.UserActive,
		JoinDate:     time.Now(),
		Department:   "Management",
		Position:     "System Administrator",
	}
	if err := users.Create(admin); err != nil {
		log.Fatal(err)
	}
	log.Println("Default admin account created successfully.")
	log.Println("Username: admin | Password: password")
}

func seedCustomer(users *repository.UserRepository, interactions *repository.InteractionRepository) {
	existing, err := users.GetByUsername("customer")
	if err != nil {
		log.Fatal(err)
	}
	if existing != nil {
		log.Println("Default customer already exists.")
		return
	}

	log.Println("No default customer found. Creating sample customer...")
	age := 30
	customer := &model.User{
		Username:     "customer",
		PasswordHash: mustHash("password"),
		Email:        "customer@crmproject.com",
		Role:         model.RoleCustomer,
		Status:       model.UserActive, // active so the sample account can log in
		JoinDate:     time.Now().AddDate(0, 0, -45),
		Age:          &age,
		Phone:        "9876543210",
		Address:      "123 CRM Street, Tech City",
		NationalID:   "123456789012",
	}
	if err := users.Create(customer); err != nil {
		log.Fatal(err)
	}
	log.Println("Default customer account created successfully.")
	log.Println("Username: customer | Password: password")

	log.Println("Seeding sample interactions for default customer...")
	now := time.Now()
	samples := []*model.Interaction{
		{Type: "email", Subject: "Initial Welcome Email", Date: now.AddDate(0, 0, -28), Status: model.InteractionCompleted, Notes: "Sent a welcome email with resources."},
		{Type: "call", Subject: "Follow-up Call", Date: now.AddDate(0, 0, -25), Status: model.InteractionCompleted, Notes: "Discussed initial setup and answered questions."},
		{Type: "meeting", Subject: "Onboarding Meeting", Date: now.AddDate(0, 0, -20), Status: model.InteractionCompleted, Notes: "Completed the full onboarding session."},
		{Type: "email", Subject: "Check-in Email", Date: now.AddDate(0, 0, -10), Status: model.InteractionCompleted, Notes: "Checked in on progress, no issues reported."},
		{Type: "call", Subject: "Support Call", Date: now.AddDate(0, 0, -5), Status: model.InteractionCompleted, Notes: "Resolved a minor issue regarding billing."},
		{Type: "email", Subject: "Monthly Newsletter", Date: now.AddDate(0, 0, -2), Status: model.InteractionScheduled, Notes: "Scheduled to send the monthly newsletter."},
	}
	for _, i := range samples {
		i.CustomerID = customer.ID
		if err := interactions.Create(i); err != nil {
			log.Fatal(err)
		}
	}
	log.Println("Sample interactions seeded successfully.")
}

func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}
	return string(hash)
}
