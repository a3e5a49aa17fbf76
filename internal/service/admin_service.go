// internal/service/admin_service.go
package service

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/unclebandit/crm-backend/internal/db"
	appErrors "github.com/unclebandit/crm-backend/internal/errors"
	"github.com/unclebandit/crm-backend/internal/mailer"
	"github.com/unclebandit/crm-backend/internal/model"
	"github.com/unclebandit/crm-backend/internal/repository"
)

// AdminService carries the approval workflow, admin analytics and the
// admin-side CRUD over customers, campaigns and settings.
type AdminService struct {
	UserRepo             repository.UserRepositoryInterface
	InteractionRepo      repository.InteractionRepositoryInterface
	CampaignRepo         repository.CampaignRepositoryInterface
	CustomerCampaignRepo repository.CustomerCampaignRepositoryInterface
	NotificationRepo     repository.NotificationRepositoryInterface
	SettingsRepo         repository.SettingsRepositoryInterface
	Tx                   db.TxRunner
	Mailer               mailer.Mailer
}

// GrowthPoint is one month of the cumulative customer growth series.
type GrowthPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type AdminAnalytics struct {
	TotalCustomers    int           `json:"totalCustomers"`
	ActiveCustomers   int           `json:"activeCustomers"`
	TotalInteractions int           `json:"totalInteractions"`
	ConversionRate    int           `json:"conversionRate"`
	CustomerGrowth    []GrowthPoint `json:"customerGrowth"`
}

// ====================== Approval workflow ======================

// ApproveCustomer transitions a PENDING customer to ACTIVE and sends the
// approval email best-effort. A customer that is missing or already
// ACTIVE fails with NotFound, so a second approval of the same id fails.
func (s *AdminService) ApproveCustomer(customerID int) (*model.User, error) {
	var approved *model.User
	err := s.Tx.RunInTx(func(tx *sql.Tx) error {
		users := s.UserRepo.WithTx(tx)
		customer, err := users.GetByID(customerID)
		if err != nil {
			return err
		}
		if customer == nil || customer.Status != model.UserPending {
			return appErrors.NewNotFound("pending customer", customerID)
		}
		if err := users.UpdateStatus(customerID, model.UserActive); err != nil {
			return err
		}
		customer.Status = model.UserActive
		approved = customer
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Best-effort: an email failure never rolls back the transition.
	subject := "Your Account has been Approved!"
	if err := s.Mailer.SendHTML(approved.Email, subject, mailer.AccountApprovalEmail(approved.Username)); err != nil {
		log.Println("⚠️ failed to send approval email:", err)
	}
	return approved, nil
}

// RejectCustomer hard-deletes a PENDING customer and sends a rejection
// notice best-effort.
func (s *AdminService) RejectCustomer(customerID int) error {
	var email string
	err := s.Tx.RunInTx(func(tx *sql.Tx) error {
		users := s.UserRepo.WithTx(tx)
		customer, err := users.GetByID(customerID)
		if err != nil {
			return err
		}
		if customer == nil || customer.Status != model.UserPending {
			return appErrors.NewNotFound("pending customer", customerID)
		}
		email = customer.Email
		return users.Delete(customerID)
	})
	if err != nil {
		return err
	}

	if err := s.Mailer.SendPlain(email, "Account Update", mailer.RejectionNotice); err != nil {
		log.Println("⚠️ failed to send rejection email:", err)
	}
	return nil
}

// ReviewCustomerCampaign sets a submitted campaign to APPROVED or
// REJECTED, stamps reviewed_at and notifies the owner, all in one
// transaction.
func (s *AdminService) ReviewCustomerCampaign(campaignID int, decision string) (*model.CustomerCampaign, error) {
	status, err := model.ParseCampaignDecision(decision)
	if err != nil {
		return nil, err
	}

	var reviewed *model.CustomerCampaign
	err = s.Tx.RunInTx(func(tx *sql.Tx) error {
		campaigns := s.CustomerCampaignRepo.WithTx(tx)
		notifications := s.NotificationRepo.WithTx(tx)

		campaign, err := campaigns.GetByID(campaignID)
		if err != nil {
			return err
		}
		if campaign == nil {
			return appErrors.NewNotFound("customer campaign", campaignID)
		}

		now := time.Now()
		if err := campaigns.UpdateStatus(campaignID, status, now); err != nil {
			return err
		}
		campaign.Status = status
		campaign.ReviewedAt = &now

		message := fmt.Sprintf("Your campaign proposal '%s' has been %s by the admin.",
			campaign.Title, strings.ToLower(string(status)))
		if err := notifications.Create(&model.Notification{UserID: campaign.CustomerID, Message: message}); err != nil {
			return err
		}

		reviewed = campaign
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reviewed, nil
}

// ReviewInteraction sets an interaction to COMPLETED or SCHEDULED and
// notifies the owner. Any other decision is rejected without mutating
// state.
func (s *AdminService) ReviewInteraction(interactionID int, decision string) (*model.Interaction, error) {
	status, err := model.ParseInteractionDecision(decision)
	if err != nil {
		return nil, err
	}

	var reviewed *model.Interaction
	err = s.Tx.RunInTx(func(tx *sql.Tx) error {
		interactions := s.InteractionRepo.WithTx(tx)
		notifications := s.NotificationRepo.WithTx(tx)

		interaction, err := interactions.GetByID(interactionID)
		if err != nil {
			return err
		}
		if interaction == nil {
			return appErrors.NewNotFound("interaction", interactionID)
		}

		if err := interactions.UpdateStatus(interactionID, status); err != nil {
			return err
		}
		interaction.Status = status

		message := fmt.Sprintf("Admin has reviewed your interaction '%s'. New status: %s",
			interaction.Subject, strings.ToLower(string(status)))
		if err := notifications.Create(&model.Notification{UserID: interaction.CustomerID, Message: message}); err != nil {
			return err
		}

		reviewed = interaction
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reviewed, nil
}

// ====================== Customer management ======================

func (s *AdminService) ListCustomers(page, pageSize int) ([]*model.User, map[string]int, error) {
	page, pageSize = clampPage(page, pageSize)
	customers, total, err := s.UserRepo.ListByRole(model.RoleCustomer, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, nil, err
	}
	return customers, paginationInfo(page, pageSize, total), nil
}

func (s *AdminService) PendingCustomers(page, pageSize int) ([]*model.User, map[string]int, error) {
	page, pageSize = clampPage(page, pageSize)
	customers, total, err := s.UserRepo.ListByRoleAndStatus(model.RoleCustomer, model.UserPending, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, nil, err
	}
	return customers, paginationInfo(page, pageSize, total), nil
}

// AddCustomer creates an ACTIVE customer directly, skipping approval.
func (s *AdminService) AddCustomer(customer *model.User, password string) (*model.User, error) {
	if password == "" {
		return nil, appErrors.NewValidation("Password is required for a new customer.")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	customer.PasswordHash = string(hash)
	customer.Role = model.RoleCustomer
	customer.Status = model.UserActive
	customer.JoinDate = time.Now()
	if err := s.UserRepo.Create(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *AdminService) UpdateCustomer(id int, details *model.User) (*model.User, error) {
	customer, err := s.UserRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.Role != model.RoleCustomer {
		return nil, appErrors.NewNotFound("customer", id)
	}

	customer.Username = details.Username
	customer.Email = details.Email
	customer.Phone = details.Phone
	customer.Age = details.Age
	customer.NationalID = details.NationalID
	customer.Address = details.Address
	if details.Status != "" {
		status, err := model.ParseUserStatus(string(details.Status))
		if err != nil {
			return nil, err
		}
		customer.Status = status
	}

	if err := s.UserRepo.Update(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer removes a customer and everything it owns: the cascade
// over interactions, notifications and submitted campaigns runs in one
// transaction.
func (s *AdminService) DeleteCustomer(id int) error {
	return s.Tx.RunInTx(func(tx *sql.Tx) error {
		users := s.UserRepo.WithTx(tx)
		customer, err := users.GetByID(id)
		if err != nil {
			return err
		}
		if customer == nil || customer.Role != model.RoleCustomer {
			return appErrors.NewNotFound("customer", id)
		}

		if err := s.InteractionRepo.WithTx(tx).DeleteByCustomer(id); err != nil {
			return err
		}
		if err := s.NotificationRepo.WithTx(tx).DeleteByUser(id); err != nil {
			return err
		}
		if err := s.CustomerCampaignRepo.WithTx(tx).DeleteByCustomer(id); err != nil {
			return err
		}
		return users.Delete(id)
	})
}

// ====================== Interaction approval ======================

func (s *AdminService) PendingInteractions(page, pageSize int) ([]*model.Interaction, map[string]int, error) {
	page, pageSize = clampPage(page, pageSize)
	interactions, total, err := s.InteractionRepo.ListByStatus(model.InteractionPending, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, nil, err
	}
	return interactions, paginationInfo(page, pageSize, total), nil
}

// ====================== Analytics ======================

// Analytics aggregates the admin dashboard numbers. The growth series is
// a running total: each point is "customers joined up to and including
// this month".
func (s *AdminService) Analytics() (*AdminAnalytics, error) {
	totalCustomers, err := s.UserRepo.CountByRole(model.RoleCustomer)
	if err != nil {
		return nil, err
	}
	activeCustomers, err := s.UserRepo.CountByRoleAndStatus(model.RoleCustomer, model.UserActive)
	if err != nil {
		return nil, err
	}
	totalInteractions, err := s.InteractionRepo.CountAll()
	if err != nil {
		return nil, err
	}

	monthlyCounts, err := s.UserRepo.CountCustomersByMonth()
	if err != nil {
		return nil, err
	}
	growth := []GrowthPoint{}
	cumulative := 0
	for _, m := range monthlyCounts {
		cumulative += m.Count
		growth = append(growth, GrowthPoint{
			Date:  fmt.Sprintf("%d-%02d", m.Year, m.Month),
			Count: cumulative,
		})
	}

	return &AdminAnalytics{
		TotalCustomers:    totalCustomers,
		ActiveCustomers:   activeCustomers,
		TotalInteractions: totalInteractions,
		ConversionRate:    68, // placeholder until click tracking lands
		CustomerGrowth:    growth,
	}, nil
}

// ====================== Email campaigns ======================

func (s *AdminService) ListCampaigns(page, pageSize int) ([]*model.EmailCampaign, map[string]int, error) {
	page, pageSize = clampPage(page, pageSize)
	campaigns, total, err := s.CampaignRepo.ListCampaigns((page-1)*pageSize, pageSize)
	if err != nil {
		return nil, nil, err
	}
	return campaigns, paginationInfo(page, pageSize, total), nil
}

func (s *AdminService) CreateCampaign(campaign *model.EmailCampaign) (*model.EmailCampaign, error) {
	if err := s.CampaignRepo.Create(campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

func (s *AdminService) UpdateCampaign(id int, details *model.EmailCampaign) (*model.EmailCampaign, error) {
	campaign, err := s.CampaignRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, appErrors.NewNotFound("email campaign", id)
	}

	campaign.Name = details.Name
	campaign.Subject = details.Subject
	campaign.Status = details.Status
	if err := s.CampaignRepo.Update(campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

func (s *AdminService) DeleteCampaign(id int) error {
	exists, err := s.CampaignRepo.Exists(id)
	if err != nil {
		return err
	}
	if !exists {
		return appErrors.NewNotFound("email campaign", id)
	}
	return s.CampaignRepo.Delete(id)
}

func (s *AdminService) PendingCustomerCampaigns() ([]*model.CustomerCampaign, error) {
	return s.CustomerCampaignRepo.ListByStatus(model.CampaignPending)
}

// ====================== Admin profile & settings ======================

func (s *AdminService) Profile(username string) (*model.User, error) {
	admin, err := s.UserRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, appErrors.NewNotFound("admin "+username, 0)
	}
	return admin, nil
}

func (s *AdminService) UpdateProfile(username string, details *model.User) (*model.User, error) {
	admin, err := s.Profile(username)
	if err != nil {
		return nil, err
	}

	admin.Email = details.Email
	admin.Phone = details.Phone
	admin.Department = details.Department
	admin.Position = details.Position
	admin.Bio = details.Bio

	if err := s.UserRepo.Update(admin); err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *AdminService) ChangePassword(username, currentPassword, newPassword string) error {
	admin, err := s.Profile(username)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(currentPassword)) != nil {
		return appErrors.NewValidation("Incorrect current password.")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.UserRepo.UpdatePassword(admin.ID, string(hash))
}

func (s *AdminService) Settings() (*model.Settings, error) {
	return s.SettingsRepo.Get()
}

func (s *AdminService) UpdateSettings(settings *model.Settings) (*model.Settings, error) {
	if err := s.SettingsRepo.Update(settings); err != nil {
		return nil, err
	}
	return settings, nil
}
