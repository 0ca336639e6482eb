package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"dormdesk/backend/internal/model"
	"dormdesk/backend/internal/repository"
	pkgerrors "dormdesk/backend/pkg/errors"
)

// ── Mock AccountRepository ──

type mockAccountRepo struct {
	accounts map[string]*model.Account // key: account_id
	seq      int
}

func newMockAccountRepo() *mockAccountRepo {
	return &mockAccountRepo{accounts: make(map[string]*model.Account)}
}

// mockBaseTime 固定基准时间，seq 递增保证创建时间严格有序
var mockBaseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func (m *mockAccountRepo) Create(_ context.Context, account *model.Account) error {
	for _, a := range m.accounts {
		if a.Username == account.Username {
			return pkgerrors.ErrConflict
		}
	}
	if account.AccountID == "" {
		account.AccountID = "acct-" + account.Username
	}
	m.seq++
	account.CreatedAt = mockBaseTime.Add(time.Duration(m.seq) * time.Second)
	account.UpdatedAt = account.CreatedAt
	m.accounts[account.AccountID] = account
	return nil
}

func (m *mockAccountRepo) GetByID(_ context.Context, id string) (*model.Account, error) {
	if a, ok := m.accounts[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAccountRepo) GetByUsername(_ context.Context, username string) (*model.Account, error) {
	for _, a := range m.accounts {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAccountRepo) List(_ context.Context, filters *repository.AccountListFilters, offset, limit int) ([]model.Account, int64, error) {
	var all []model.Account
	for _, a := range m.accounts {
		if filters != nil {
			if filters.Role != "" && a.Role != filters.Role {
				continue
			}
			if filters.Keyword != "" {
				kw := strings.ToLower(filters.Keyword)
				if !strings.Contains(strings.ToLower(a.Name), kw) &&
					!strings.Contains(strings.ToLower(a.Username), kw) {
					continue
				}
			}
		}
		all = append(all, *a)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := int64(len(all))
	if offset > len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockAccountRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := m.accounts[id]; !ok {
		return false, nil
	}
	delete(m.accounts, id)
	return true, nil
}

// ── Mock ComplaintRepository ──

type mockComplaintRepo struct {
	complaints map[string]*model.Complaint // key: complaint_id
	accounts   *mockAccountRepo            // Owner 投影与 keyword 搜索用
	seq        int
}

func newMockComplaintRepo(accounts *mockAccountRepo) *mockComplaintRepo {
	return &mockComplaintRepo{
		complaints: make(map[string]*model.Complaint),
		accounts:   accounts,
	}
}

func (m *mockComplaintRepo) owner(accountID string) *model.Account {
	if a, ok := m.accounts.accounts[accountID]; ok {
		cp := *a
		return &cp
	}
	return nil
}

func (m *mockComplaintRepo) Create(_ context.Context, complaint *model.Complaint) error {
	m.seq++
	if complaint.ComplaintID == "" {
		complaint.ComplaintID = "cmpl-" + complaint.Subject
	}
	complaint.CreatedAt = mockBaseTime.Add(time.Duration(m.seq) * time.Second)
	complaint.UpdatedAt = complaint.CreatedAt
	m.complaints[complaint.ComplaintID] = complaint
	return nil
}

func (m *mockComplaintRepo) GetByID(_ context.Context, id string) (*model.Complaint, error) {
	if c, ok := m.complaints[id]; ok {
		cp := *c
		cp.Owner = m.owner(c.AccountID)
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockComplaintRepo) ListByAccount(_ context.Context, accountID string) ([]model.Complaint, error) {
	var result []model.Complaint
	for _, c := range m.complaints {
		if c.AccountID == accountID {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (m *mockComplaintRepo) List(_ context.Context, filters *repository.ComplaintListFilters, offset, limit int) ([]model.Complaint, int64, error) {
	var all []model.Complaint
	for _, c := range m.complaints {
		owner := m.owner(c.AccountID)
		if filters != nil {
			if filters.Status != "" && c.Status != filters.Status {
				continue
			}
			if filters.Category != "" && c.Category != filters.Category {
				continue
			}
			if filters.Keyword != "" {
				kw := strings.ToLower(filters.Keyword)
				ownerName := ""
				if owner != nil {
					ownerName = owner.Name
				}
				if !strings.Contains(strings.ToLower(c.Subject), kw) &&
					!strings.Contains(strings.ToLower(c.Description), kw) &&
					!strings.Contains(strings.ToLower(ownerName), kw) {
					continue
				}
			}
		}
		cp := *c
		cp.Owner = owner
		all = append(all, cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := int64(len(all))
	if offset > len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockComplaintRepo) Update(_ context.Context, complaint *model.Complaint) error {
	stored, ok := m.complaints[complaint.ComplaintID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	// Save 语义：updated_at 刷新，created_at 保持
	m.seq++
	complaint.CreatedAt = stored.CreatedAt
	complaint.UpdatedAt = mockBaseTime.Add(time.Duration(m.seq) * time.Second)
	cp := *complaint
	cp.Owner = nil
	m.complaints[complaint.ComplaintID] = &cp
	return nil
}

func (m *mockComplaintRepo) GlobalStats(_ context.Context) (*repository.ComplaintStats, error) {
	stats := &repository.ComplaintStats{}
	for _, c := range m.complaints {
		stats.Total++
		switch c.Status {
		case model.StatusPending:
			stats.Pending++
		case model.StatusInProgress:
			stats.InProgress++
		case model.StatusResolved:
			stats.Resolved++
		}
	}
	return stats, nil
}

func (m *mockComplaintRepo) AccountStats(_ context.Context, accountID string) (*repository.AccountComplaintStats, error) {
	stats := &repository.AccountComplaintStats{}
	for _, c := range m.complaints {
		if c.AccountID != accountID {
			continue
		}
		stats.Total++
		switch c.Status {
		case model.StatusPending:
			stats.Pending++
		case model.StatusResolved:
			stats.Resolved++
		}
	}
	return stats, nil
}
