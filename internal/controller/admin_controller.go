// internal/controller/admin_controller.go
package controller

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/crm-backend/internal/model"
	"github.com/unclebandit/crm-backend/internal/service"
)

type AdminController struct {
	AdminService *service.AdminService
}

func urlID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	return id, err == nil
}

// ====================== Customer management ======================

func (c *AdminController) ListCustomers(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	customers, pagination, err := c.AdminService.ListCustomers(page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": customers, "pagination": pagination})
}

func (c *AdminController) AddCustomer(w http.ResponseWriter, r *http.Request) {
	var body struct {
		model.User
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	customer, err := c.AdminService.AddCustomer(&body.User, body.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, customer)
}

func (c *AdminController) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		http.Error(w, "invalid customer id", http.StatusBadRequest)
		return
	}
	var details model.User
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	customer, err := c.AdminService.UpdateCustomer(id, &details)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (c *AdminController) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		http.Error(w, "invalid customer id", http.StatusBadRequest)
		return
	}
	if err := c.AdminService.DeleteCustomer(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ====================== Customer approval ======================

func (c *AdminController) PendingCustomers(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	customers, pagination, err := c.AdminService.PendingCustomers(page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": customers, "pagination": pagination})
}

func (c *AdminController) ApproveCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		http.Error(w, "invalid customer id", http.StatusBadRequest)
		return
	}
	customer, err := c.AdminService.ApproveCustomer(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (c *AdminController) RejectCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		http.Error(w, "invalid customer id", http.StatusBadRequest)
		return
	}
	if err := c.AdminService.RejectCustomer(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ====================== Interaction approval ======================

func (c *AdminController) PendingInteractions(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	interactions, pagination, err := c.AdminService.PendingInteractions(page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": interactions, "pagination": pagination})
}

func (c *AdminController) UpdateInteractionStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		http.Error(w, "invalid interaction id", http.StatusBadRequest)
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	interaction, err := c.AdminService.ReviewInteraction(id, body.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, interaction)
}

// ====================== Analytics ======================

func (c *AdminController) Analytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := c.AdminService.Analytics()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analytics)
}

// ====================== Email campaigns ======================

func (c *AdminController) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	campaigns, pagination, err := c.AdminService.ListCampaigns(page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": campaigns, "pagination": pagination})
}

func (c *AdminController) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var campaign model.EmailCampaign
	if err := json.NewDecoder(r.Body).Decode(&campaign); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	created, err := c.AdminService.CreateCampaign(&campaign)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (c *AdminController) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}
	var details model.EmailCampaign
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	campaign, err := c.AdminService.UpdateCampaign(id, &details)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, campaign)
}

func (c *AdminController) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}
	if err := c.AdminService.DeleteCampaign(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ====================== Customer campaign approval ======================

func (c *AdminController) PendingCustomerCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := c.AdminService.PendingCustomerCampaigns()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, campaigns)
}

func (c *AdminController) UpdateCustomerCampaignStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	campaign, err := c.AdminService.ReviewCustomerCampaign(id, body.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, campaign)
}

// ====================== Profile & settings ======================

func (c *AdminController) Profile(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r.Context())
	profile, err := c.AdminService.Profile(claims.Username)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (c *AdminController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r.Context())
	var details model.User
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	profile, err := c.AdminService.UpdateProfile(claims.Username, &details)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (c *AdminController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r.Context())
	var body struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if err := c.AdminService.ChangePassword(claims.Username, body.CurrentPassword, body.NewPassword); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (c *AdminController) Settings(w http.ResponseWriter, r *http.Request) {
	settings, err := c.AdminService.Settings()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (c *AdminController) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings model.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	updated, err := c.AdminService.UpdateSettings(&settings)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
