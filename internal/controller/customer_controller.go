// internal/controller/customer_controller.go
package controller

import (
	"encoding/json"
	"net/http"

	"github.com/unclebandit/crm-backend/internal/model"
	"github.com/unclebandit/crm-backend/internal/service"
)

type CustomerController struct {
	CustomerService *service.CustomerService
}

// checkAccess enforces the self-service gate: the authenticated
// principal's id must equal the path id.
func (c *CustomerController) checkAccess(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, ok := urlID(r)
	if !ok {
		http.Error(w, "invalid customer id", http.StatusBadRequest)
		return 0, false
	}
	claims := ClaimsFrom(r.Context())
	if claims == nil || claims.UserID != id {
		http.Error(w, "You are not authorized to access this resource.", http.StatusForbidden)
		return 0, false
	}
	return id, true
}

// ====================== Profile ======================

func (c *CustomerController) Profile(w http.ResponseWriter, r *http.Request) {
	id, ok := c.checkAccess(w, r)
	if !ok {
		return
	}
	customer, err := c.CustomerService.GetCustomer(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (c *CustomerController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := c.checkAccess(w, r)
	if !ok {
		return
	}
	var details model.User
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	customer, err := c.CustomerService.UpdateProfile(id, &details)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (c *CustomerController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, ok := c.checkAccess(w, r)
	if !ok {
		return
	}
	var body struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if err := c.CustomerService.ChangePassword(id, body.CurrentPassword, body.NewPassword); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password changed successfully."})
}

// ====================== Analytics ======================

func (c *CustomerController) Analytics(w http.ResponseWriter, r *http.Request) {
	id, ok := c.checkAccess(w, r)
	if !ok {
		return
	}
	analytics, err := c.CustomerService.Analytics(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analytics)
}

// ====================== Interactions ======================

func (c *CustomerController) Interactions(w http.ResponseWriter, r *http.Request) {
	id, ok := c.checkAccess(w, r)
	if !ok {
		return
	}
	page, pageSize := pageParams(r)
	interactionType := r.URL.Query().Get("type")
	search := r.URL.Query().Get("search")

	interactions, pagination, err := c.CustomerService.Interactions(id, interactionType, search, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": interactions, "pagination": pagination})
}

func (c *CustomerController) AddInteraction(w http.ResponseWriter, r *http.Request) {
	id, ok := c.checkAccess(w, r)
	if !ok {
		return
	}
	var interaction model.Interaction
	if err := json.NewDecoder(r.Body).Decode(&interaction); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	created, err := c.CustomerService.AddInteraction(id, &interaction)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ====================== Campaigns ======================

func (c *CustomerController) EmailCampaigns(w http.ResponseWriter, r *http.Request) {
	id, ok := c.checkAccess(w, r)
	if !ok {
		return
	}
	campaigns, err := c.CustomerService.EmailCampaigns(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, campaigns)
}

func (c *CustomerController) SubmitCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := c.checkAccess(w, r)
	if !ok {
		return
	}
	var campaign model.CustomerCampaign
	if err := json.NewDecoder(r.Body).Decode(&campaign); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	submitted, err := c.CustomerService.SubmitCampaign(id, &campaign)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, submitted)
}

func (c *CustomerController) SubmittedCampaigns(w http.ResponseWriter, r *http.Request) {
	id, ok := c.checkAccess(w, r)
	if !ok {
		return
	}
	campaigns, err := c.CustomerService.SubmittedCampaigns(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, campaigns)
}

// ====================== Notifications ======================

func (c *CustomerController) Notifications(w http.ResponseWriter, r *http.Request) {
	id, ok := c.checkAccess(w, r)
	if !ok {
		return
	}
	notifications, err := c.CustomerService.Notifications(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notifications)
}
