package services

import (
	"time"

	"github.com/leochenhaha/ForumAPI0924/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Touch 更新最後活躍時間。盡力而為：失敗只記日誌,
// 絕不影響主請求，handlers 在 goroutine 裡調用
func Touch(gdb *gorm.DB, userID uint) {
	err := gdb.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("last_active_at", time.Now().UTC()).Error
	if err != nil {
		log.Warn().Err(err).Uint("user_id", userID).Msg("touch last_active_at failed")
	}
}
