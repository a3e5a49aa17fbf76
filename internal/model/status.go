package model

import (
	"strings"

	appErrors "github.com/unclebandit/crm-backend/internal/errors"
)

// Role of a user account.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleCustomer Role = "CUSTOMER"
)

func ParseRole(s string) (Role, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ADMIN":
		return RoleAdmin, nil
	case "CUSTOMER":
		return RoleCustomer, nil
	}
	return "", appErrors.NewValidation("unrecognized role: " + s)
}

// UserStatus is the account lifecycle state. Only CUSTOMER accounts may
// be PENDING; admins are always ACTIVE.
type UserStatus string

const (
	UserPending UserStatus = "PENDING"
	UserActive  UserStatus = "ACTIVE"
)

func ParseUserStatus(s string) (UserStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PENDING":
		return UserPending, nil
	case "ACTIVE":
		return UserActive, nil
	}
	return "", appErrors.NewValidation("unrecognized user status: " + s)
}

// InteractionStatus of a customer touch-point.
type InteractionStatus string

const (
	InteractionPending   InteractionStatus = "PENDING"
	InteractionScheduled InteractionStatus = "SCHEDULED"
	InteractionCompleted InteractionStatus = "COMPLETED"
)

func ParseInteractionStatus(s string) (InteractionStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PENDING":
		return InteractionPending, nil
	case "SCHEDULED":
		return InteractionScheduled, nil
	case "COMPLETED":
		return InteractionCompleted, nil
	}
	return "", appErrors.NewValidation("unrecognized interaction status: " + s)
}

// ParseInteractionDecision accepts only the statuses an admin review may
// set: COMPLETED or SCHEDULED.
func ParseInteractionDecision(s string) (InteractionStatus, error) {
	status, err := ParseInteractionStatus(s)
	if err != nil {
		return "", err
	}
	if status != InteractionCompleted && status != InteractionScheduled {
		return "", appErrors.NewValidation("interaction decision must be COMPLETED or SCHEDULED")
	}
	return status, nil
}

// CampaignStatus of a customer-submitted campaign.
type CampaignStatus string

const (
	CampaignPending  CampaignStatus = "PENDING"
	CampaignApproved CampaignStatus = "APPROVED"
	CampaignRejected CampaignStatus = "REJECTED"
)

// ParseCampaignDecision accepts only the statuses an admin review may
// set: APPROVED or REJECTED.
func ParseCampaignDecision(s string) (CampaignStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "APPROVED":
		return CampaignApproved, nil
	case "REJECTED":
		return CampaignRejected, nil
	}
	return "", appErrors.NewValidation("campaign decision must be APPROVED or REJECTED")
}
