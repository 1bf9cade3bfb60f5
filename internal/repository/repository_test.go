package repository_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"doctrack/backend/config"
	"doctrack/backend/internal/model"
	"doctrack/backend/internal/repository"
	"doctrack/backend/pkg/database"
	pkgerrors "doctrack/backend/pkg/errors"
)

// ── 测试辅助 ──

func setupTestRepo(t *testing.T) *repository.Repository {
	t.Helper()
	cfg := &config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "repo.db"),
	}
	db, err := database.NewDB(cfg, "error", zap.NewNop())
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	if err := database.EnsureSchema(db, zap.NewNop()); err != nil {
		t.Fatalf("创建表结构失败: %v", err)
	}
	return repository.NewRepository(db)
}

func mustCreateDepartment(t *testing.T, repo *repository.Repository, name string) *model.Department {
	t.Helper()
	dept := model.NewDepartment(name)
	if err := repo.Department.Create(context.Background(), dept); err != nil {
		t.Fatalf("创建部门失败: %v", err)
	}
	return dept
}

func mustCreateUser(t *testing.T, repo *repository.Repository, name, email string, deptID *int64) *model.User {
	t.Helper()
	user := model.NewUser(name, email, "", deptID)
	if err := repo.User.Create(context.Background(), user); err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}
	return user
}

func mustCreateProject(t *testing.T, repo *repository.Repository, name string, deptID *int64) *model.Project {
	t.Helper()
	project := model.NewProject(name, deptID, time.Time{})
	if err := repo.Project.Create(context.Background(), project); err != nil {
		t.Fatalf("创建项目失败: %v", err)
	}
	return project
}

// ── 基本读写 ──

func TestDepartmentRepo_CreateAssignsID(t *testing.T) {
	repo := setupTestRepo(t)
	dept := mustCreateDepartment(t, repo, "Engineering")

	if dept.ID == 0 {
		t.Fatal("期望创建后分配主键")
	}
	got, err := repo.Department.GetByName(context.Background(), "Engineering")
	if err != nil {
		t.Fatalf("GetByName 应成功: %v", err)
	}
	if got.ID != dept.ID {
		t.Errorf("期望 ID=%d，实际=%d", dept.ID, got.ID)
	}
}

func TestUserRepo_DefaultRolePersisted(t *testing.T) {
	repo := setupTestRepo(t)
	user := &model.User{Name: "Ada", Email: "ada@x.com"}
	if err := repo.User.Create(context.Background(), user); err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}

	got, err := repo.User.GetByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetByID 应成功: %v", err)
	}
	if got.Role != model.RoleStandardUser {
		t.Errorf("期望默认角色 %s，实际=%s", model.RoleStandardUser, got.Role)
	}
}

func TestUserRepo_GetByID_PreloadsHomeDepartment(t *testing.T) {
	repo := setupTestRepo(t)
	dept := mustCreateDepartment(t, repo, "Engineering")
	user := mustCreateUser(t, repo, "Ada", "ada@x.com", &dept.ID)

	got, err := repo.User.GetByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetByID 应成功: %v", err)
	}
	if got.DepartmentBelonging == nil || got.DepartmentBelonging.Name != "Engineering" {
		t.Errorf("期望预加载所属部门 Engineering，实际=%+v", got.DepartmentBelonging)
	}
}

func TestProjectRepo_CreationDatePersisted(t *testing.T) {
	repo := setupTestRepo(t)
	before := time.Now().Add(-time.Second)
	project := &model.Project{Name: "Alpha"}
	if err := repo.Project.Create(context.Background(), project); err != nil {
		t.Fatalf("创建项目失败: %v", err)
	}
	after := time.Now().Add(time.Second)

	got, err := repo.Project.GetByID(context.Background(), project.ID)
	if err != nil {
		t.Fatalf("GetByID 应成功: %v", err)
	}
	if got.CreationDate.Before(before) || got.CreationDate.After(after) {
		t.Errorf("期望 CreationDate 接近插入时间，实际=%v", got.CreationDate)
	}
}

// ── 关系遍历 ──

func TestDepartmentRepo_Traversal(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	eng := mustCreateDepartment(t, repo, "Engineering")
	ops := mustCreateDepartment(t, repo, "Operations")
	ada := mustCreateUser(t, repo, "Ada", "ada@x.com", &eng.ID)
	mustCreateUser(t, repo, "Linus", "linus@x.com", &ops.ID)
	mustCreateProject(t, repo, "Alpha", &eng.ID)
	mustCreateProject(t, repo, "Beta", &ops.ID)

	// Ada 管理 Operations，但属于 Engineering
	if err := repo.UserDepartment.Create(ctx, model.NewUserDepartment(ada.ID, ops.ID)); err != nil {
		t.Fatalf("创建管理关系失败: %v", err)
	}

	projects, err := repo.Department.ListProjects(ctx, eng.ID)
	if err != nil {
		t.Fatalf("ListProjects 应成功: %v", err)
	}
	if len(projects) != 1 || projects[0].Name != "Alpha" {
		t.Errorf("期望 Engineering 仅有项目 Alpha，实际=%+v", projects)
	}

	members, err := repo.Department.ListMembers(ctx, eng.ID)
	if err != nil {
		t.Fatalf("ListMembers 应成功: %v", err)
	}
	if len(members) != 1 || members[0].ID != ada.ID {
		t.Errorf("期望 Engineering 成员仅 Ada，实际=%+v", members)
	}

	managers, err := repo.Department.ListManagers(ctx, ops.ID)
	if err != nil {
		t.Fatalf("ListManagers 应成功: %v", err)
	}
	if len(managers) != 1 || managers[0].User == nil || managers[0].User.Email != "ada@x.com" {
		t.Errorf("期望 Operations 管理者为 Ada，实际=%+v", managers)
	}

	managed, err := repo.User.ListManagedDepartments(ctx, ada.ID)
	if err != nil {
		t.Fatalf("ListManagedDepartments 应成功: %v", err)
	}
	if len(managed) != 1 || managed[0].Department == nil || managed[0].Department.Name != "Operations" {
		t.Errorf("期望 Ada 管理 Operations，实际=%+v", managed)
	}
}

func TestUserProjectRepo_BothDirections(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	ada := mustCreateUser(t, repo, "Ada", "ada@x.com", nil)
	alpha := mustCreateProject(t, repo, "Alpha", nil)

	if err := repo.UserProject.Create(ctx, model.NewUserProject(ada.ID, alpha.ID)); err != nil {
		t.Fatalf("创建分配失败: %v", err)
	}

	assigned, err := repo.User.ListAssignedProjects(ctx, ada.ID)
	if err != nil {
		t.Fatalf("ListAssignedProjects 应成功: %v", err)
	}
	if len(assigned) != 1 || assigned[0].Project == nil || assigned[0].Project.Name != "Alpha" {
		t.Errorf("期望 Ada 分配到 Alpha，实际=%+v", assigned)
	}

	users, err := repo.Project.ListAssignments(ctx, alpha.ID)
	if err != nil {
		t.Fatalf("ListAssignments 应成功: %v", err)
	}
	if len(users) != 1 || users[0].User == nil || users[0].User.Name != "Ada" {
		t.Errorf("期望 Alpha 分配给 Ada，实际=%+v", users)
	}

	ok, err := repo.UserProject.Exists(ctx, ada.ID, alpha.ID)
	if err != nil || !ok {
		t.Errorf("期望分配存在，实际=%v err=%v", ok, err)
	}
}

func TestDocumentRepo_GetByID_PreloadsOwners(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	ada := mustCreateUser(t, repo, "Ada", "ada@x.com", nil)
	alpha := mustCreateProject(t, repo, "Alpha", nil)

	doc := model.NewDocument(model.DocumentFields{
		Name: "design.pdf", Location: "/docs/design.pdf", Status: model.DocumentStatusInProgress,
		ProjectID: &alpha.ID, UploaderID: &ada.ID,
	})
	if err := repo.Document.Create(ctx, doc); err != nil {
		t.Fatalf("创建文档失败: %v", err)
	}

	got, err := repo.Document.GetByID(ctx, doc.ID)
	if err != nil {
		t.Fatalf("GetByID 应成功: %v", err)
	}
	if got.Project == nil || got.Project.Name != "Alpha" {
		t.Errorf("期望预加载项目 Alpha，实际=%+v", got.Project)
	}
	if got.Uploader == nil || got.Uploader.Name != "Ada" {
		t.Errorf("期望预加载上传者 Ada，实际=%+v", got.Uploader)
	}
	if got.CompletedAt != nil {
		t.Error("期望 CompletedAt 为空")
	}

	uploaded, err := repo.User.ListUploadedDocuments(ctx, ada.ID)
	if err != nil || len(uploaded) != 1 {
		t.Errorf("期望 Ada 上传 1 个文档，实际=%d err=%v", len(uploaded), err)
	}
	docs, err := repo.Project.ListDocuments(ctx, alpha.ID)
	if err != nil || len(docs) != 1 {
		t.Errorf("期望 Alpha 有 1 个文档，实际=%d err=%v", len(docs), err)
	}
}

// ── 存储层约束翻译 ──

func TestDepartmentRepo_DuplicateNameTranslated(t *testing.T) {
	repo := setupTestRepo(t)
	mustCreateDepartment(t, repo, "Engineering")

	err := repo.Department.Create(context.Background(), model.NewDepartment("Engineering"))
	if !errors.Is(err, pkgerrors.ErrUniquenessViolation) {
		t.Fatalf("期望 ErrUniquenessViolation，实际: %v", err)
	}
	cv, _ := pkgerrors.AsViolation(err)
	if cv.Table != "departments" || cv.Field != "name" {
		t.Errorf("期望 departments.name，实际=%s.%s", cv.Table, cv.Field)
	}
}

func TestUserRepo_DuplicateEmailTranslated(t *testing.T) {
	repo := setupTestRepo(t)
	mustCreateUser(t, repo, "Ada", "ada@x.com", nil)

	// 重名允许，邮箱不允许
	if err := repo.User.Create(context.Background(), model.NewUser("Ada", "ada2@x.com", "", nil)); err != nil {
		t.Fatalf("同名用户应允许: %v", err)
	}
	err := repo.User.Create(context.Background(), model.NewUser("Other", "ada@x.com", "", nil))
	if !errors.Is(err, pkgerrors.ErrUniquenessViolation) {
		t.Fatalf("期望 ErrUniquenessViolation，实际: %v", err)
	}
}

func TestUserProjectRepo_DuplicateTranslated(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	ada := mustCreateUser(t, repo, "Ada", "ada@x.com", nil)
	alpha := mustCreateProject(t, repo, "Alpha", nil)

	if err := repo.UserProject.Create(ctx, model.NewUserProject(ada.ID, alpha.ID)); err != nil {
		t.Fatalf("首次分配应成功: %v", err)
	}
	err := repo.UserProject.Create(ctx, model.NewUserProject(ada.ID, alpha.ID))
	if !errors.Is(err, pkgerrors.ErrUniquenessViolation) {
		t.Fatalf("期望 ErrUniquenessViolation，实际: %v", err)
	}
}

func TestDocumentRepo_MissingProjectTranslated(t *testing.T) {
	repo := setupTestRepo(t)
	missing := int64(999)

	doc := model.NewDocument(model.DocumentFields{Name: "a", Location: "b", Status: "c", ProjectID: &missing})
	err := repo.Document.Create(context.Background(), doc)
	if !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("期望 ErrNotFound，实际: %v", err)
	}
}

func TestDepartmentRepo_DeleteRestrictedByStore(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	eng := mustCreateDepartment(t, repo, "Engineering")
	mustCreateProject(t, repo, "Alpha", &eng.ID)

	err := repo.Department.Delete(ctx, eng.ID)
	if !errors.Is(err, pkgerrors.ErrRestricted) {
		t.Fatalf("期望 ErrRestricted，实际: %v", err)
	}
	if ok, _ := repo.Department.Exists(ctx, eng.ID); !ok {
		t.Error("受限删除后部门应仍存在")
	}
}

func TestProjectRepo_DeleteRestrictedByStore(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	alpha := mustCreateProject(t, repo, "Alpha", nil)
	ada := mustCreateUser(t, repo, "Ada", "ada@x.com", nil)
	if err := repo.UserProject.Create(ctx, model.NewUserProject(ada.ID, alpha.ID)); err != nil {
		t.Fatalf("分配项目失败: %v", err)
	}

	err := repo.Project.Delete(ctx, alpha.ID)
	cv, ok := pkgerrors.AsViolation(err)
	if !ok || cv.Kind != pkgerrors.KindRestricted || cv.Table != "projects" {
		t.Fatalf("期望 projects 受限删除，实际: %v", err)
	}
	if ok, _ := repo.Project.Exists(ctx, alpha.ID); !ok {
		t.Error("受限删除后项目应仍存在")
	}
}

func TestUserRepo_DeleteRestrictedByStore(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	eng := mustCreateDepartment(t, repo, "Engineering")
	ada := mustCreateUser(t, repo, "Ada", "ada@x.com", nil)
	if err := repo.UserDepartment.Create(ctx, model.NewUserDepartment(ada.ID, eng.ID)); err != nil {
		t.Fatalf("创建管理关系失败: %v", err)
	}

	err := repo.User.Delete(ctx, ada.ID)
	if !errors.Is(err, pkgerrors.ErrRestricted) {
		t.Fatalf("期望 ErrRestricted，实际: %v", err)
	}

	// 移除依赖后可以删除
	if err := repo.UserDepartment.Delete(ctx, ada.ID, eng.ID); err != nil {
		t.Fatalf("删除管理关系失败: %v", err)
	}
	if err := repo.User.Delete(ctx, ada.ID); err != nil {
		t.Errorf("移除依赖后删除应成功: %v", err)
	}
}

func TestRepo_DeleteMissing(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	if err := repo.Project.Delete(ctx, 42); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("期望 gorm.ErrRecordNotFound，实际: %v", err)
	}
	if err := repo.UserDepartment.Delete(ctx, 1, 2); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("期望 gorm.ErrRecordNotFound，实际: %v", err)
	}
}

func TestDepartmentRepo_CountDependents(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	eng := mustCreateDepartment(t, repo, "Engineering")
	mustCreateProject(t, repo, "Alpha", &eng.ID)
	mustCreateProject(t, repo, "Beta", &eng.ID)
	mustCreateUser(t, repo, "Ada", "ada@x.com", &eng.ID)

	deps, err := repo.Department.CountDependents(ctx, eng.ID)
	if err != nil {
		t.Fatalf("CountDependents 应成功: %v", err)
	}
	want := map[string]int64{"projects": 2, "users": 1, "user_departments": 0}
	for _, d := range deps {
		if want[d.Table] != d.Count {
			t.Errorf("期望 %s=%d，实际=%d", d.Table, want[d.Table], d.Count)
		}
	}
}

// ── 事务 ──

func TestTransaction_Rollback(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Department.Create(ctx, model.NewDepartment("Engineering")); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("期望返回 fn 的错误，实际: %v", err)
	}

	if _, err := repo.Department.GetByName(ctx, "Engineering"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("期望回滚后部门不存在，实际: %v", err)
	}
}

func TestTransaction_Commit(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	err := repo.Transaction(ctx, func(tx *repository.Repository) error {
		return tx.Department.Create(ctx, model.NewDepartment("Engineering"))
	})
	if err != nil {
		t.Fatalf("事务应提交成功: %v", err)
	}
	if _, err := repo.Department.GetByName(ctx, "Engineering"); err != nil {
		t.Errorf("期望提交后部门存在: %v", err)
	}
}
