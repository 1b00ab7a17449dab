package services

import (
	"time"

	"github.com/leochenhaha/ForumAPI0924/internal/models"

	"gorm.io/gorm"
)

// OnlineWindow 最後活躍在這個窗口內算在線
const OnlineWindow = 10 * time.Minute

type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(gdb *gorm.DB) *DashboardService {
	return &DashboardService{db: gdb}
}

type DashboardTotals struct {
	Members        int64 `json:"members"`
	Posts          int64 `json:"posts"`
	Replies        int64 `json:"replies"`
	PendingReports int64 `json:"pending_reports"`
}

type DashboardActivity struct {
	OnlineMembers        int64 `json:"online_members"`
	WeeklyRegistrations  int64 `json:"weekly_registrations"`
	MonthlyRegistrations int64 `json:"monthly_registrations"`
}

type DashboardSnapshot struct {
	Totals   DashboardTotals   `json:"totals"`
	Activity DashboardActivity `json:"activity"`
}

// Snapshot 純聚合讀取，不做任何修改
func (s *DashboardService) Snapshot() (*DashboardSnapshot, error) {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	startOfWeek := today.AddDate(0, 0, -int(today.Weekday()))
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	activeThreshold := now.Add(-OnlineWindow)

	snapshot := &DashboardSnapshot{}

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&snapshot.Totals.Members, s.db.Model(&models.User{})},
		{&snapshot.Totals.Posts, s.db.Model(&models.Post{})},
		{&snapshot.Totals.Replies, s.db.Model(&models.Reply{})},
		{&snapshot.Activity.OnlineMembers, s.db.Model(&models.User{}).
			Where("last_active_at IS NOT NULL AND last_active_at >= ?", activeThreshold)},
		{&snapshot.Activity.WeeklyRegistrations, s.db.Model(&models.User{}).
			Where("created_at >= ?", startOfWeek)},
		{&snapshot.Activity.MonthlyRegistrations, s.db.Model(&models.User{}).
			Where("created_at >= ?", startOfMonth)},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	// 兩張檢舉表的 Pending 數相加
	var pendingPost, pendingReply int64
	if err := s.db.Model(&models.PostReport{}).
		Where("status = ?", models.ReportPending).Count(&pendingPost).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.ReplyReport{}).
		Where("status = ?", models.ReportPending).Count(&pendingReply).Error; err != nil {
		return nil, err
	}
	snapshot.Totals.PendingReports = pendingPost + pendingReply

	return snapshot, nil
}
