package service_test

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/unclebandit/crm-backend/internal/model"
	"github.com/unclebandit/crm-backend/internal/repository"
)

// In-memory mock repositories shared by the service tests.

type mockTxRunner struct{}

func (m *mockTxRunner) RunInTx(fn func(tx *sql.Tx) error) error {
	return fn(nil)
}

type sentEmail struct {
	To      string
	Subject string
	Body    string
	HTML    bool
}

type mockMailer struct {
	sent []sentEmail
	fail bool
}

func (m *mockMailer) SendPlain(to, subject, body string) error {
	if m.fail {
		return fmt.Errorf("mock sending failed")
	}
	m.sent = append(m.sent, sentEmail{To: to, Subject: subject, Body: body})
	return nil
}

func (m *mockMailer) SendHTML(to, subject, htmlBody string) error {
	if m.fail {
		return fmt.Errorf("mock sending failed")
	}
	m.sent = append(m.sent, sentEmail{To: to, Subject: subject, Body: htmlBody, HTML: true})
	return nil
}

// ====================== Users ======================

type mockUserRepo struct {
	users  map[int]*model.User
	nextID int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: map[int]*model.User{}, nextID: 1}
}

func (m *mockUserRepo) WithTx(tx *sql.Tx) repository.UserRepositoryInterface { return m }

func (m *mockUserRepo) GetByID(id int) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (m *mockUserRepo) GetByUsername(username string) (*model.User, error) {
	for _, u := range m.sorted() {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) Create(u *model.User) error {
	u.ID = m.nextID
	m.nextID++
	copied := *u
	m.users[u.ID] = &copied
	return nil
}

func (m *mockUserRepo) Update(u *model.User) error {
	copied := *u
	m.users[u.ID] = &copied
	return nil
}

func (m *mockUserRepo) UpdateStatus(id int, status model.UserStatus) error {
	if u, ok := m.users[id]; ok {
		u.Status = status
	}
	return nil
}

func (m *mockUserRepo) UpdatePassword(id int, hash string) error {
	if u, ok := m.users[id]; ok {
		u.PasswordHash = hash
	}
	return nil
}

func (m *mockUserRepo) Delete(id int) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) sorted() []*model.User {
	ids := make([]int, 0, len(m.users))
	for id := range m.users {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	users := make([]*model.User, 0, len(ids))
	for _, id := range ids {
		users = append(users, m.users[id])
	}
	return users
}

func (m *mockUserRepo) ListByRole(role model.Role, offset, limit int) ([]*model.User, int, error) {
	matched := []*model.User{}
	for _, u := range m.sorted() {
		if u.Role == role {
			matched = append(matched, u)
		}
	}
	return pageOf(matched, offset, limit), len(matched), nil
}

func (m *mockUserRepo) ListByRoleAndStatus(role model.Role, status model.UserStatus, offset, limit int) ([]*model.User, int, error) {
	matched := []*model.User{}
	for _, u := range m.sorted() {
		if u.Role == role && u.Status == status {
			matched = append(matched, u)
		}
	}
	return pageOf(matched, offset, limit), len(matched), nil
}

func (m *mockUserRepo) CountByRole(role model.Role) (int, error) {
	count := 0
	for _, u := range m.users {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}

func (m *mockUserRepo) CountByRoleAndStatus(role model.Role, status model.UserStatus) (int, error) {
	count := 0
	for _, u := range m.users {
		if u.Role == role && u.Status == status {
			count++
		}
	}
	return count, nil
}

func (m *mockUserRepo) CountCustomersByMonth() ([]repository.MonthlyCount, error) {
	buckets := map[string]*repository.MonthlyCount{}
	for _, u := range m.users {
		if u.Role != model.RoleCustomer {
			continue
		}
		key := u.JoinDate.Format("2006-01")
		if b, ok := buckets[key]; ok {
			b.Count++
			continue
		}
		buckets[key] = &repository.MonthlyCount{
			Year:  u.JoinDate.Year(),
			Month: int(u.JoinDate.Month()),
			Count: 1,
		}
	}
	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	counts := make([]repository.MonthlyCount, 0, len(keys))
	for _, k := range keys {
		counts = append(counts, *buckets[k])
	}
	return counts, nil
}

func pageOf[T any](all []T, offset, limit int) []T {
	if offset >= len(all) {
		return []T{}
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

// ====================== Interactions ======================

type mockInteractionRepo struct {
	interactions map[int]*model.Interaction
	nextID       int
}

func newMockInteractionRepo() *mockInteractionRepo {
	return &mockInteractionRepo{interactions: map[int]*model.Interaction{}, nextID: 1}
}

func (m *mockInteractionRepo) WithTx(tx *sql.Tx) repository.InteractionRepositoryInterface {
	return m
}

func (m *mockInteractionRepo) GetByID(id int) (*model.Interaction, error) {
	i, ok := m.interactions[id]
	if !ok {
		return nil, nil
	}
	copied := *i
	return &copied, nil
}

func (m *mockInteractionRepo) Create(i *model.Interaction) error {
	if i.Status == "" {
		i.Status = model.InteractionPending
	}
	i.ID = m.nextID
	m.nextID++
	copied := *i
	m.interactions[i.ID] = &copied
	return nil
}

func (m *mockInteractionRepo) UpdateStatus(id int, status model.InteractionStatus) error {
	if i, ok := m.interactions[id]; ok {
		i.Status = status
	}
	return nil
}

func (m *mockInteractionRepo) sorted() []*model.Interaction {
	ids := make([]int, 0, len(m.interactions))
	for id := range m.interactions {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]*model.Interaction, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.interactions[id])
	}
	return out
}

func (m *mockInteractionRepo) ListByCustomer(customerID int, interactionType, search string, offset, limit int) ([]*model.Interaction, int, error) {
	matched := []*model.Interaction{}
	for _, i := range m.sorted() {
		if i.CustomerID != customerID {
			continue
		}
		if interactionType != "" && interactionType != "all" && i.Type != interactionType {
			continue
		}
		if search != "" && !strings.Contains(i.Subject, search) && !strings.Contains(i.Notes, search) {
			continue
		}
		matched = append(matched, i)
	}
	return pageOf(matched, offset, limit), len(matched), nil
}

func (m *mockInteractionRepo) ListByStatus(status model.InteractionStatus, offset, limit int) ([]*model.Interaction, int, error) {
	matched := []*model.Interaction{}
	for _, i := range m.sorted() {
		if i.Status == status {
			matched = append(matched, i)
		}
	}
	return pageOf(matched, offset, limit), len(matched), nil
}

func (m *mockInteractionRepo) CountByCustomer(customerID int) (int, error) {
	count := 0
	for _, i := range m.interactions {
		if i.CustomerID == customerID {
			count++
		}
	}
	return count, nil
}

func (m *mockInteractionRepo) CountAll() (int, error) {
	return len(m.interactions), nil
}

func (m *mockInteractionRepo) CountByTypeForCustomer(customerID int) (map[string]int, error) {
	byType := map[string]int{}
	for _, i := range m.interactions {
		if i.CustomerID == customerID {
			byType[i.Type]++
		}
	}
	return byType, nil
}

func (m *mockInteractionRepo) CountPerDay(customerID int, since time.Time) ([]repository.DailyCount, error) {
	buckets := map[string]int{}
	for _, i := range m.interactions {
		if i.CustomerID == customerID && !i.Date.Before(since) {
			buckets[i.Date.Format("2006-01-02")]++
		}
	}
	days := make([]string, 0, len(buckets))
	for d := range buckets {
		days = append(days, d)
	}
	sort.Strings(days)
	counts := make([]repository.DailyCount, 0, len(days))
	for _, d := range days {
		day, _ := time.Parse("2006-01-02", d)
		counts = append(counts, repository.DailyCount{Day: day, Count: buckets[d]})
	}
	return counts, nil
}

func (m *mockInteractionRepo) DeleteByCustomer(customerID int) error {
	for id, i := range m.interactions {
		if i.CustomerID == customerID {
			delete(m.interactions, id)
		}
	}
	return nil
}

// ====================== Email campaigns ======================

type mockCampaignRepo struct {
	campaigns map[int]*model.EmailCampaign
	nextID    int
}

func newMockCampaignRepo() *mockCampaignRepo {
	return &mockCampaignRepo{campaigns: map[int]*model.EmailCampaign{}, nextID: 1}
}

func (m *mockCampaignRepo) GetByID(id int) (*model.EmailCampaign, error) {
	c, ok := m.campaigns[id]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (m *mockCampaignRepo) Create(c *model.EmailCampaign) error {
	if c.Status == "" {
		c.Status = "draft"
	}
	c.CreatedAt = time.Now()
	c.ID = m.nextID
	m.nextID++
	copied := *c
	m.campaigns[c.ID] = &copied
	return nil
}

func (m *mockCampaignRepo) Update(c *model.EmailCampaign) error {
	copied := *c
	m.campaigns[c.ID] = &copied
	return nil
}

func (m *mockCampaignRepo) Delete(id int) error {
	delete(m.campaigns, id)
	return nil
}

func (m *mockCampaignRepo) Exists(id int) (bool, error) {
	_, ok := m.campaigns[id]
	return ok, nil
}

func (m *mockCampaignRepo) ListAll() ([]*model.EmailCampaign, error) {
	all, _, _ := m.ListCampaigns(0, len(m.campaigns))
	return all, nil
}

func (m *mockCampaignRepo) ListCampaigns(offset, limit int) ([]*model.EmailCampaign, int, error) {
	ids := make([]int, 0, len(m.campaigns))
	for id := range m.campaigns {
		ids = append(ids, id)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ids)))
	all := make([]*model.EmailCampaign, 0, len(ids))
	for _, id := range ids {
		all = append(all, m.campaigns[id])
	}
	return pageOf(all, offset, limit), len(all), nil
}

// ====================== Customer campaigns ======================

type mockCustomerCampaignRepo struct {
	campaigns map[int]*model.CustomerCampaign
	nextID    int
}

func newMockCustomerCampaignRepo() *mockCustomerCampaignRepo {
	return &mockCustomerCampaignRepo{campaigns: map[int]*model.CustomerCampaign{}, nextID: 1}
}

func (m *mockCustomerCampaignRepo) WithTx(tx *sql.Tx) repository.CustomerCampaignRepositoryInterface {
	return m
}

func (m *mockCustomerCampaignRepo) GetByID(id int) (*model.CustomerCampaign, error) {
	c, ok := m.campaigns[id]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (m *mockCustomerCampaignRepo) Create(c *model.CustomerCampaign) error {
	if c.Status == "" {
		c.Status = model.CampaignPending
	}
	c.ID = m.nextID
	m.nextID++
	copied := *c
	m.campaigns[c.ID] = &copied
	return nil
}

func (m *mockCustomerCampaignRepo) UpdateStatus(id int, status model.CampaignStatus, reviewedAt time.Time) error {
	if c, ok := m.campaigns[id]; ok {
		c.Status = status
		c.ReviewedAt = &reviewedAt
	}
	return nil
}

func (m *mockCustomerCampaignRepo) sorted() []*model.CustomerCampaign {
	ids := make([]int, 0, len(m.campaigns))
	for id := range m.campaigns {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]*model.CustomerCampaign, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.campaigns[id])
	}
	return out
}

func (m *mockCustomerCampaignRepo) ListByCustomer(customerID int) ([]*model.CustomerCampaign, error) {
	matched := []*model.CustomerCampaign{}
	for _, c := range m.sorted() {
		if c.CustomerID == customerID {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

func (m *mockCustomerCampaignRepo) ListByStatus(status model.CampaignStatus) ([]*model.CustomerCampaign, error) {
	matched := []*model.CustomerCampaign{}
	for _, c := range m.sorted() {
		if c.Status == status {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

func (m *mockCustomerCampaignRepo) DeleteByCustomer(customerID int) error {
	for id, c := range m.campaigns {
		if c.CustomerID == customerID {
			delete(m.campaigns, id)
		}
	}
	return nil
}

// ====================== Notifications ======================

type mockNotificationRepo struct {
	notifications []*model.Notification
	nextID        int
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{nextID: 1}
}

func (m *mockNotificationRepo) WithTx(tx *sql.Tx) repository.NotificationRepositoryInterface {
	return m
}

func (m *mockNotificationRepo) Create(n *model.Notification) error {
	n.ID = m.nextID
	m.nextID++
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	copied := *n
	m.notifications = append(m.notifications, &copied)
	return nil
}

func (m *mockNotificationRepo) ListByUser(userID int) ([]*model.Notification, error) {
	matched := []*model.Notification{}
	for i := len(m.notifications) - 1; i >= 0; i-- {
		if m.notifications[i].UserID == userID {
			matched = append(matched, m.notifications[i])
		}
	}
	return matched, nil
}

func (m *mockNotificationRepo) DeleteByUser(userID int) error {
	kept := m.notifications[:0]
	for _, n := range m.notifications {
		if n.UserID != userID {
			kept = append(kept, n)
		}
	}
	m.notifications = kept
	return nil
}

// ====================== Settings ======================

type mockSettingsRepo struct {
	settings *model.Settings
}

func (m *mockSettingsRepo) Get() (*model.Settings, error) {
	if m.settings == nil {
		m.settings = &model.Settings{
			ID:               1,
			GeneralSettings:  "{}",
			EmailSettings:    "{}",
			SecuritySettings: "{}",
		}
	}
	copied := *m.settings
	return &copied, nil
}

func (m *mockSettingsRepo) Update(s *model.Settings) error {
	s.ID = 1
	copied := *s
	m.settings = &copied
	return nil
}
