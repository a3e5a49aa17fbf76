// cmd/server/main.go
package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/streadway/amqp"

	"github.com/unclebandit/crm-backend/internal/config"
	"github.com/unclebandit/crm-backend/internal/controller"
	"github.com/unclebandit/crm-backend/internal/db"
	"github.com/unclebandit/crm-backend/internal/mailer"
	"github.com/unclebandit/crm-backend/internal/model"
	"github.com/unclebandit/crm-backend/internal/queue"
	"github.com/unclebandit/crm-backend/internal/repository"
	"github.com/unclebandit/crm-backend/internal/service"
	"github.com/unclebandit/crm-backend/internal/token"
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

	userRepo := &repository.UserRepository{DB: conn}
	interactionRepo := &repository.InteractionRepository{DB: conn}
	campaignRepo := &repository.CampaignRepository{DB: conn}
	customerCampaignRepo := &repository.CustomerCampaignRepository{DB: conn}
	notificationRepo := &repository.NotificationRepository{DB: conn}
	settingsRepo := &repository.SettingsRepository{DB: conn}

	mail := buildMailer(cfg)
	tokens := token.NewIssuer(cfg.JWTSecret)

	authService := &service.AuthService{
		UserRepo: userRepo,
		Tokens:   tokens,
		Mailer:   mail,
	}
	adminService := &service.AdminService{
		UserRepo:             userRepo,
		InteractionRepo:      interactionRepo,
		CampaignRepo:         campaignRepo,
		CustomerCampaignRepo: customerCampaignRepo,
		NotificationRepo:     notificationRepo,
		SettingsRepo:         settingsRepo,
		Tx:                   &db.SQLTxRunner{DB: conn},
		Mailer:               mail,
	}
	customerService := &service.CustomerService{
		UserRepo:             userRepo,
		InteractionRepo:      interactionRepo,
		CampaignRepo:         campaignRepo,
		CustomerCampaignRepo: customerCampaignRepo,
		NotificationRepo:     notificationRepo,
	}

	authController := &controller.AuthController{AuthService: authService}
	adminController := &controller.AdminController{AdminService: adminService}
	customerController := &controller.CustomerController{CustomerService: customerService}
	auth := &controller.AuthMiddleware{Tokens: tokens}

	r := chi.NewRouter()

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authController.Register)
		r.Post("/login", authController.Login)
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(auth.Authenticate)
		r.Use(auth.RequireRole(model.RoleAdmin))

		r.Get("/customers", adminController.ListCustomers)
		r.Post("/customers", adminController.AddCustomer)
		r.Get("/customers/pending", adminController.PendingCustomers)
		r.Put("/customers/{id}", adminController.UpdateCustomer)
		r.Delete("/customers/{id}", adminController.DeleteCustomer)
		r.Put("/customers/{id}/approve", adminController.ApproveCustomer)
		r.Delete("/customers/{id}/reject", adminController.RejectCustomer)

		r.Get("/interactions/pending", adminController.PendingInteractions)
		r.Put("/interactions/{id}/status", adminController.UpdateInteractionStatus)

		r.Get("/analytics", adminController.Analytics)

		r.Get("/campaigns", adminController.ListCampaigns)
		r.Post("/campaigns", adminController.CreateCampaign)
		r.Put("/campaigns/{id}", adminController.UpdateCampaign)
		r.Delete("/campaigns/{id}", adminController.DeleteCampaign)

		r.Get("/customer-campaigns/pending", adminController.PendingCustomerCampaigns)
		r.Put("/customer-campaigns/{id}/status", adminController.UpdateCustomerCampaignStatus)

		r.Get("/profile", adminController.Profile)
		r.Put("/profile", adminController.UpdateProfile)
		r.Put("/change-password", adminController.ChangePassword)

		r.Get("/settings", adminController.Settings)
		r.Put("/settings", adminController.UpdateSettings)
	})

	r.Route("/api/customers", func(r chi.Router) {
		r.Use(auth.Authenticate)

		r.Get("/{id}", customerController.Profile)
		r.Put("/{id}", customerController.UpdateProfile)
		r.Put("/{id}/change-password", customerController.ChangePassword)
		r.Get("/{id}/analytics", customerController.Analytics)
		r.Get("/{id}/interactions", customerController.Interactions)
		r.Post("/{id}/interactions", customerController.AddInteraction)
		r.Get("/{id}/campaigns", customerController.EmailCampaigns)
		r.Post("/{id}/campaigns", customerController.SubmitCampaign)
		r.Get("/{id}/customer-campaigns", customerController.SubmittedCampaigns)
		r.Get("/{id}/notifications", customerController.Notifications)
	})

	log.Println("🚀 Server running on :" + cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}

// buildMailer publishes through RabbitMQ when AMQP_URL is set and falls
// back to the in-process queue otherwise. Either way services treat the
// send as best-effort.
func buildMailer(cfg *config.Config) mailer.Mailer {
	if cfg.AMQPURL != "" {
		conn, err := amqp.Dial(cfg.AMQPURL)
		if err != nil {
			log.Fatal("failed to connect to RabbitMQ:", err)
		}
		m, err := mailer.NewAMQPMailer(conn)
		if err != nil {
			log.Fatal("failed to declare email queue:", err)
		}
		log.Println("✅ Email delivery via RabbitMQ")
		return m
	}

	q := queue.NewInMemoryQueue()
	mailer.StartEmailSubscriber(q, func(e mailer.Email) error {
		// No broker configured: log the delivery instead of sending.
		log.Printf("📧 [dev mail] to=%s subject=%q\n", e.To, e.Subject)
		return nil
	})
	log.Println("⚠️ AMQP_URL not set, emails are logged in-process")
	return &mailer.QueueMailer{Queue: q}
}
