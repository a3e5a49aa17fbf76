package controller_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/crm-backend/internal/controller"
	"github.com/unclebandit/crm-backend/internal/model"
	"github.com/unclebandit/crm-backend/internal/repository"
	"github.com/unclebandit/crm-backend/internal/service"
)

// --- Mock repositories ---

type stubTxRunner struct{}

func (s *stubTxRunner) RunInTx(fn func(tx *sql.Tx) error) error { return fn(nil) }

type stubMailer struct{ sent int }

func (s *stubMailer) SendPlain(to, subject, body string) error { s.sent++; return nil }
func (s *stubMailer) SendHTML(to, subject, body string) error  { s.sent++; return nil }

type stubUserRepo struct {
	users map[int]*model.User
}

func (s *stubUserRepo) WithTx(tx *sql.Tx) repository.UserRepositoryInterface { return s }

func (s *stubUserRepo) GetByID(id int) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (s *stubUserRepo) GetByUsername(username string) (*model.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *stubUserRepo) UpdateStatus(id int, status model.UserStatus) error {
	if u, ok := s.users[id]; ok {
		u.Status = status
	}
	return nil
}

func (s *stubUserRepo) Create(u *model.User) error          { u.ID = len(s.users) + 1; return nil }
func (s *stubUserRepo) Update(u *model.User) error          { return nil }
func (s *stubUserRepo) UpdatePassword(int, string) error    { return nil }
func (s *stubUserRepo) Delete(id int) error                 { delete(s.users, id); return nil }
func (s *stubUserRepo) CountByRole(model.Role) (int, error) { return len(s.users), nil }
func (s *stubUserRepo) CountByRoleAndStatus(model.Role, model.UserStatus) (int, error) {
	return 0, nil
}
func (s *stubUserRepo) CountCustomersByMonth() ([]repository.MonthlyCount, error) {
	return nil, nil
}
func (s *stubUserRepo) ListByRole(model.Role, int, int) ([]*model.User, int, error) {
	return []*model.User{}, 0, nil
}
func (s *stubUserRepo) ListByRoleAndStatus(model.Role, model.UserStatus, int, int) ([]*model.User, int, error) {
	return []*model.User{}, 0, nil
}

type stubInteractionRepo struct {
	interactions map[int]*model.Interaction
}

func (s *stubInteractionRepo) WithTx(tx *sql.Tx) repository.InteractionRepositoryInterface {
	return s
}

func (s *stubInteractionRepo) GetByID(id int) (*model.Interaction, error) {
	i, ok := s.interactions[id]
	if !ok {
		return nil, nil
	}
	copied := *i
	return &copied, nil
}

func (s *stubInteractionRepo) UpdateStatus(id int, status model.InteractionStatus) error {
	if i, ok := s.interactions[id]; ok {
		i.Status = status
	}
	return nil
}

func (s *stubInteractionRepo) Create(i *model.Interaction) error { return nil }
func (s *stubInteractionRepo) DeleteByCustomer(int) error        { return nil }
func (s *stubInteractionRepo) CountByCustomer(int) (int, error)  { return 0, nil }
func (s *stubInteractionRepo) CountAll() (int, error)            { return len(s.interactions), nil }
func (s *stubInteractionRepo) CountByTypeForCustomer(int) (map[string]int, error) {
	return map[string]int{}, nil
}
func (s *stubInteractionRepo) CountPerDay(int, time.Time) ([]repository.DailyCount, error) {
	return nil, nil
}
func (s *stubInteractionRepo) ListByCustomer(int, string, string, int, int) ([]*model.Interaction, int, error) {
	return []*model.Interaction{}, 0, nil
}
func (s *stubInteractionRepo) ListByStatus(model.InteractionStatus, int, int) ([]*model.Interaction, int, error) {
	return []*model.Interaction{}, 0, nil
}

type stubCustomerCampaignRepo struct {
	campaigns map[int]*model.CustomerCampaign
}

func (s *stubCustomerCampaignRepo) WithTx(tx *sql.Tx) repository.CustomerCampaignRepositoryInterface {
	return s
}

func (s *stubCustomerCampaignRepo) GetByID(id int) (*model.CustomerCampaign, error) {
	c, ok := s.campaigns[id]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (s *stubCustomerCampaignRepo) UpdateStatus(id int, status model.CampaignStatus, reviewedAt time.Time) error {
	if c, ok := s.campaigns[id]; ok {
		c.Status = status
		c.ReviewedAt = &reviewedAt
	}
	return nil
}

func (s *stubCustomerCampaignRepo) Create(*model.CustomerCampaign) error { return nil }
func (s *stubCustomerCampaignRepo) DeleteByCustomer(int) error           { return nil }
func (s *stubCustomerCampaignRepo) ListByCustomer(int) ([]*model.CustomerCampaign, error) {
	return nil, nil
}
func (s *stubCustomerCampaignRepo) ListByStatus(model.CampaignStatus) ([]*model.CustomerCampaign, error) {
	return nil, nil
}

type stubNotificationRepo struct {
	created []*model.Notification
}

func (s *stubNotificationRepo) WithTx(tx *sql.Tx) repository.NotificationRepositoryInterface {
	return s
}

func (s *stubNotificationRepo) Create(n *model.Notification) error {
	s.created = append(s.created, n)
	return nil
}

func (s *stubNotificationRepo) ListByUser(int) ([]*model.Notification, error) { return nil, nil }
func (s *stubNotificationRepo) DeleteByUser(int) error                        { return nil }

// --- Test helpers ---

type adminTestEnv struct {
	users             *stubUserRepo
	interactions      *stubInteractionRepo
	customerCampaigns *stubCustomerCampaignRepo
	notifications     *stubNotificationRepo
	mailer            *stubMailer
	router            chi.Router
}

func newAdminTestEnv() *adminTestEnv {
	env := &adminTestEnv{
		users:             &stubUserRepo{users: map[int]*model.User{}},
		interactions:      &stubInteractionRepo{interactions: map[int]*model.Interaction{}},
		customerCampaigns: &stubCustomerCampaignRepo{campaigns: map[int]*model.CustomerCampaign{}},
		notifications:     &stubNotificationRepo{},
		mailer:            &stubMailer{},
	}
	svc := &service.AdminService{
		UserRepo:             env.users,
		InteractionRepo:      env.interactions,
		CustomerCampaignRepo: env.customerCampaigns,
		NotificationRepo:     env.notifications,
		Tx:                   &stubTxRunner{},
		Mailer:               env.mailer,
	}
	ctrl := &controller.AdminController{AdminService: svc}

	r := chi.NewRouter()
	r.Put("/api/admin/customers/{id}/approve", ctrl.ApproveCustomer)
	r.Delete("/api/admin/customers/{id}/reject", ctrl.RejectCustomer)
	r.Put("/api/admin/interactions/{id}/status", ctrl.UpdateInteractionStatus)
	r.Put("/api/admin/customer-campaigns/{id}/status", ctrl.UpdateCustomerCampaignStatus)
	env.router = r
	return env
}

func (env *adminTestEnv) do(method, url, body string) *http.Response {
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, url, reader)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w.Result()
}

// --- Tests ---

func TestApproveCustomerEndpoint(t *testing.T) {
	env := newAdminTestEnv()
	env.users.users[5] = &model.User{
		ID: 5, Username: "wael", Email: "wael@example.com",
		Role: model.RoleCustomer, Status: model.UserPending,
	}

	resp := env.do("PUT", "/api/admin/customers/5/approve", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var approved model.User
	if err := json.NewDecoder(resp.Body).Decode(&approved); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if approved.Status != model.UserActive {
		t.Errorf("expected status ACTIVE, got %s", approved.Status)
	}
	if env.users.users[5].Status != model.UserActive {
		t.Errorf("stored status not updated, got %s", env.users.users[5].Status)
	}
	if env.mailer.sent != 1 {
		t.Errorf("expected 1 email sent, got %d", env.mailer.sent)
	}
}

func TestApproveCustomerEndpointMissing(t *testing.T) {
	env := newAdminTestEnv()

	resp := env.do("PUT", "/api/admin/customers/99/approve", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestRejectCustomerEndpoint(t *testing.T) {
	env := newAdminTestEnv()
	env.users.users[5] = &model.User{
		ID: 5, Username: "wael", Email: "wael@example.com",
		Role: model.RoleCustomer, Status: model.UserPending,
	}

	resp := env.do("DELETE", "/api/admin/customers/5/reject", "")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	if _, ok := env.users.users[5]; ok {
		t.Errorf("expected customer to be deleted")
	}
}

func TestUpdateInteractionStatusEndpoint(t *testing.T) {
	env := newAdminTestEnv()
	env.interactions.interactions[3] = &model.Interaction{
		ID: 3, CustomerID: 7, Type: "call", Subject: "Renewal call",
		Status: model.InteractionPending,
	}

	resp := env.do("PUT", "/api/admin/interactions/3/status", `{"status":"COMPLETED"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if env.interactions.interactions[3].Status != model.InteractionCompleted {
		t.Errorf("expected COMPLETED, got %s", env.interactions.interactions[3].Status)
	}
	if len(env.notifications.created) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(env.notifications.created))
	}
	if env.notifications.created[0].UserID != 7 {
		t.Errorf("notification sent to wrong user: %d", env.notifications.created[0].UserID)
	}
}

func TestUpdateInteractionStatusRejectsBadDecision(t *testing.T) {
	env := newAdminTestEnv()
	env.interactions.interactions[3] = &model.Interaction{
		ID: 3, CustomerID: 7, Type: "call", Subject: "Renewal call",
		Status: model.InteractionPending,
	}

	resp := env.do("PUT", "/api/admin/interactions/3/status", `{"status":"CANCELLED"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if env.interactions.interactions[3].Status != model.InteractionPending {
		t.Errorf("status must be unchanged, got %s", env.interactions.interactions[3].Status)
	}
	if len(env.notifications.created) != 0 {
		t.Errorf("expected no notifications, got %d", len(env.notifications.created))
	}
}

func TestUpdateCustomerCampaignStatusEndpoint(t *testing.T) {
	env := newAdminTestEnv()
	env.customerCampaigns.campaigns[2] = &model.CustomerCampaign{
		ID: 2, CustomerID: 7, Title: "Summer Sale", Status: model.CampaignPending,
	}

	resp := env.do("PUT", "/api/admin/customer-campaigns/2/status", `{"status":"APPROVED"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var reviewed model.CustomerCampaign
	if err := json.NewDecoder(resp.Body).Decode(&reviewed); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if reviewed.Status != model.CampaignApproved {
		t.Errorf("expected APPROVED, got %s", reviewed.Status)
	}
	if reviewed.ReviewedAt == nil {
		t.Errorf("expected reviewed_at to be set")
	}
	if len(env.notifications.created) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(env.notifications.created))
	}
	if !strings.Contains(env.notifications.created[0].Message, "Summer Sale") {
		t.Errorf("notification should name the campaign, got %q", env.notifications.created[0].Message)
	}
}

func TestUpdateCustomerCampaignStatusRejectsBadDecision(t *testing.T) {
	env := newAdminTestEnv()
	env.customerCampaigns.campaigns[2] = &model.CustomerCampaign{
		ID: 2, CustomerID: 7, Title: "Summer Sale", Status: model.CampaignPending,
	}

	resp := env.do("PUT", "/api/admin/customer-campaigns/2/status", `{"status":"PENDING"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if env.customerCampaigns.campaigns[2].Status != model.CampaignPending {
		t.Errorf("status must be unchanged")
	}
}
