package db

import (
	"github.com/leochenhaha/ForumAPI0924/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(dsn string) {
	var err error
	// TranslateError 讓唯一約束衝突變成 gorm.ErrDuplicatedKey，
	// 服務層靠它把競態輸家歸類為重複檢舉
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	log.Info().Msg("Database connection established")

	if err := Migrate(DB); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}
	log.Info().Msg("Database migration completed")
}

// Migrate 建表加索引，測試用的內存庫也跑同一套,
// 保證唯一約束在測試裡同樣生效
func Migrate(gdb *gorm.DB) error {
	err := gdb.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Reply{},
		&models.PostVote{},
		&models.PostReport{},
		&models.ReplyReport{},
		&models.Notification{},
	)
	if err != nil {
		return err
	}

	// 同一人對同一對象同時只能有一筆 Pending 檢舉;
	// partial unique index 在 Postgres 和 SQLite 語法一致
	stmts := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_post_reports_pending
			ON post_reports (post_id, reporter_id) WHERE status = 0`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_reply_reports_pending
			ON reply_reports (reply_id, reporter_id) WHERE status = 0`,
	}
	for _, stmt := range stmts {
		if err := gdb.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
