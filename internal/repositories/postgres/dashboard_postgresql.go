package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/student-admin-service/internal/cache"
	"github.com/SAP-F-2025/student-admin-service/internal/models"
	"github.com/SAP-F-2025/student-admin-service/internal/repositories"
)

// DashboardPostgreSQL computes the aggregate counts shown on the admin
// dashboard. Results are cached with a short TTL and invalidated on
// every student write.
type DashboardPostgreSQL struct {
	db         *gorm.DB
	statsCache *cache.CacheHelper
}

func NewDashboardPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.DashboardRepository {
	return &DashboardPostgreSQL{
		db:         db,
		statsCache: cache.NewCacheHelper(redisClient, cache.StatsCacheConfig.Prefix),
	}
}

func (r *DashboardPostgreSQL) CountStudents(ctx context.Context) (int64, error) {
	var count int64
	err := r.statsCache.CacheOrExecute(ctx, "students:total", &count, cache.StatsCacheConfig.TTL, func() (interface{}, error) {
		var n int64
		if err := r.db.WithContext(ctx).Model(&models.Student{}).Count(&n).Error; err != nil {
			return nil, fmt.Errorf("failed to count students: %w", err)
		}
		return n, nil
	})
	return count, err
}

func (r *DashboardPostgreSQL) CountByStatus(ctx context.Context, status models.CompletionStatus) (int64, error) {
	var count int64
	key := fmt.Sprintf("students:status:%s", status)
	err := r.statsCache.CacheOrExecute(ctx, key, &count, cache.StatsCacheConfig.TTL, func() (interface{}, error) {
		var n int64
		err := r.db.WithContext(ctx).Model(&models.Student{}).
			Where("completion_status = ?", status).
			Count(&n).Error
		if err != nil {
			return nil, fmt.Errorf("failed to count students by status: %w", err)
		}
		return n, nil
	})
	return count, err
}

func (r *DashboardPostgreSQL) CountByCourse(ctx context.Context, course string) (int64, error) {
	var count int64
	key := fmt.Sprintf("students:course:%s", course)
	err := r.statsCache.CacheOrExecute(ctx, key, &count, cache.StatsCacheConfig.TTL, func() (interface{}, error) {
		var n int64
		err := r.db.WithContext(ctx).Model(&models.Student{}).
			Where("course_enrolled = ?", course).
			Count(&n).Error
		if err != nil {
			return nil, fmt.Errorf("failed to count students by course: %w", err)
		}
		return n, nil
	})
	return count, err
}

func (r *DashboardPostgreSQL) CourseCounts(ctx context.Context) ([]models.CourseCount, error) {
	var counts []models.CourseCount
	err := r.statsCache.CacheOrExecute(ctx, "students:course-counts", &counts, cache.StatsCacheConfig.TTL, func() (interface{}, error) {
		var rows []models.CourseCount
		err := r.db.WithContext(ctx).Model(&models.Student{}).
			Select("course_enrolled as course, COUNT(*) as count").
			Group("course_enrolled").
			Order("count DESC").
			Scan(&rows).Error
		if err != nil {
			return nil, fmt.Errorf("failed to count students per course: %w", err)
		}
		return rows, nil
	})
	return counts, err
}

// EnrollmentsByMonth returns one bucket per calendar month, oldest
// first, ending with the current month. Months with no enrollments are
// zero-filled.
func (r *DashboardPostgreSQL) EnrollmentsByMonth(ctx context.Context, months int) ([]models.MonthlyEnrollment, error) {
	if months <= 0 {
		months = 6
	}

	var trends []models.MonthlyEnrollment
	key := fmt.Sprintf("students:monthly:%d", months)
	err := r.statsCache.CacheOrExecute(ctx, key, &trends, cache.StatsCacheConfig.TTL, func() (interface{}, error) {
		now := time.Now()
		out := make([]models.MonthlyEnrollment, 0, months)

		for i := months - 1; i >= 0; i-- {
			month := now.AddDate(0, -i, 0)
			start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
			end := start.AddDate(0, 1, 0)

			var count int64
			err := r.db.WithContext(ctx).Model(&models.Student{}).
				Where("enrolled_at >= ? AND enrolled_at < ?", start, end).
				Count(&count).Error
			if err != nil {
				return nil, fmt.Errorf("failed to count monthly enrollments: %w", err)
			}

			out = append(out, models.MonthlyEnrollment{
				Month: start.Format("2006-01"),
				Count: count,
			})
		}
		return out, nil
	})
	return trends, err
}
