package services

import (
	"fmt"
	"testing"

	"github.com/leochenhaha/ForumAPI0924/internal/db"
	"github.com/leochenhaha/ForumAPI0924/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// newTestDB 每個測試一個獨立的內存庫，跑正式的遷移,
// 唯一索引和外鍵級聯在測試裡同樣生效
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	// 內存庫跟連接走，限制單連接避免各拿各的庫
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return gdb
}

func createUser(t *testing.T, gdb *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		Password: "hash",
		Role:     models.RoleUser,
		Status:   models.StatusActive,
	}
	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return &user
}

func createPost(t *testing.T, gdb *gorm.DB, ownerID *uint, title string) *models.Post {
	t.Helper()
	post := models.Post{
		Title:   title,
		Content: "some content",
		UserID:  ownerID,
	}
	if err := gdb.Create(&post).Error; err != nil {
		t.Fatalf("create post %s: %v", title, err)
	}
	return &post
}

func createReply(t *testing.T, gdb *gorm.DB, postID uint, userID *uint) *models.Reply {
	t.Helper()
	reply := models.Reply{
		PostID:  postID,
		UserID:  userID,
		Content: "a reply",
	}
	if err := gdb.Create(&reply).Error; err != nil {
		t.Fatalf("create reply: %v", err)
	}
	return &reply
}
