// internal/service/customer_service.go
package service

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	appErrors "github.com/unclebandit/crm-backend/internal/errors"
	"github.com/unclebandit/crm-backend/internal/model"
	"github.com/unclebandit/crm-backend/internal/repository"
)

// CustomerService carries the self-service operations and the per
// customer analytics rollup.
type CustomerService struct {
	UserRepo             repository.UserRepositoryInterface
	InteractionRepo      repository.InteractionRepositoryInterface
	CampaignRepo         repository.CampaignRepositoryInterface
	CustomerCampaignRepo repository.CustomerCampaignRepositoryInterface
	NotificationRepo     repository.NotificationRepositoryInterface
}

type CustomerAnalytics struct {
	TotalInteractions       int            `json:"totalInteractions"`
	SubmittedCampaignsCount int            `json:"submittedCampaignsCount"`
	ApprovedCampaignsCount  int            `json:"approvedCampaignsCount"`
	InteractionsByType      map[string]int `json:"interactionsByType"`
	InteractionTrend        map[string]int `json:"interactionTrend"`
}

func (s *CustomerService) GetCustomer(id int) (*model.User, error) {
	customer, err := s.UserRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, appErrors.NewNotFound("customer", id)
	}
	return customer, nil
}

func (s *CustomerService) UpdateProfile(id int, details *model.User) (*model.User, error) {
	customer, err := s.GetCustomer(id)
	if err != nil {
		return nil, err
	}

	customer.Email = details.Email
	customer.Age = details.Age
	customer.Address = details.Address
	customer.Phone = details.Phone

	if err := s.UserRepo.Update(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) ChangePassword(id int, currentPassword, newPassword string) error {
	customer, err := s.GetCustomer(id)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(currentPassword)) != nil {
		return appErrors.NewValidation("Incorrect current password.")
	}
	if len(newPassword) < 6 {
		return appErrors.NewValidation("New password must be at least 6 characters long.")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.UserRepo.UpdatePassword(id, string(hash))
}

// Analytics rolls up a customer's interaction and campaign activity.
// The trend map buckets the trailing 30 days by day; days without
// interactions are absent, not zero.
func (s *CustomerService) Analytics(customerID int) (*CustomerAnalytics, error) {
	if _, err := s.GetCustomer(customerID); err != nil {
		return nil, err
	}

	totalInteractions, err := s.InteractionRepo.CountByCustomer(customerID)
	if err != nil {
		return nil, err
	}

	submitted, err := s.CustomerCampaignRepo.ListByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	approved := 0
	for _, c := range submitted {
		if c.Status == model.CampaignApproved {
			approved++
		}
	}

	byType, err := s.InteractionRepo.CountByTypeForCustomer(customerID)
	if err != nil {
		return nil, err
	}

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	dailyCounts, err := s.InteractionRepo.CountPerDay(customerID, thirtyDaysAgo)
	if err != nil {
		return nil, err
	}
	trend := map[string]int{}
	for _, d := range dailyCounts {
		trend[d.Day.Format("2006-01-02")] = d.Count
	}

	return &CustomerAnalytics{
		TotalInteractions:       totalInteractions,
		SubmittedCampaignsCount: len(submitted),
		ApprovedCampaignsCount:  approved,
		InteractionsByType:      byType,
		InteractionTrend:        trend,
	}, nil
}

// Interactions lists a customer's interactions, optionally filtered by
// type and a search term over subject and notes.
func (s *CustomerService) Interactions(customerID int, interactionType, search string, page, pageSize int) ([]*model.Interaction, map[string]int, error) {
	if _, err := s.GetCustomer(customerID); err != nil {
		return nil, nil, err
	}
	page, pageSize = clampPage(page, pageSize)
	interactions, total, err := s.InteractionRepo.ListByCustomer(customerID, interactionType, search, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, nil, err
	}
	return interactions, paginationInfo(page, pageSize, total), nil
}

// AddInteraction records a customer touch-point. Status defaults to
// PENDING so it lands on the admin approval queue.
func (s *CustomerService) AddInteraction(customerID int, interaction *model.Interaction) (*model.Interaction, error) {
	if _, err := s.GetCustomer(customerID); err != nil {
		return nil, err
	}
	interaction.CustomerID = customerID
	interaction.Date = time.Now()
	if interaction.Status == "" {
		interaction.Status = model.InteractionPending
	}
	if err := s.InteractionRepo.Create(interaction); err != nil {
		return nil, err
	}
	return interaction, nil
}

// EmailCampaigns returns the system-owned campaigns, which every
// customer can see.
func (s *CustomerService) EmailCampaigns(customerID int) ([]*model.EmailCampaign, error) {
	if _, err := s.GetCustomer(customerID); err != nil {
		return nil, err
	}
	return s.CampaignRepo.ListAll()
}

// SubmitCampaign records a campaign proposal for admin review.
func (s *CustomerService) SubmitCampaign(customerID int, campaign *model.CustomerCampaign) (*model.CustomerCampaign, error) {
	if _, err := s.GetCustomer(customerID); err != nil {
		return nil, err
	}
	campaign.CustomerID = customerID
	campaign.Status = model.CampaignPending
	if err := s.CustomerCampaignRepo.Create(campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

func (s *CustomerService) SubmittedCampaigns(customerID int) ([]*model.CustomerCampaign, error) {
	if _, err := s.GetCustomer(customerID); err != nil {
		return nil, err
	}
	return s.CustomerCampaignRepo.ListByCustomer(customerID)
}

// Notifications returns the customer's notifications, newest first.
func (s *CustomerService) Notifications(customerID int) ([]*model.Notification, error) {
	if _, err := s.GetCustomer(customerID); err != nil {
		return nil, err
	}
	return s.NotificationRepo.ListByUser(customerID)
}
