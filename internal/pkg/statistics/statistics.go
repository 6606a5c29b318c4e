package statistics

import (
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/ManuelReschke/CartFox/app/models"
	"github.com/ManuelReschke/CartFox/internal/pkg/cache"
	"github.com/ManuelReschke/CartFox/internal/pkg/database"
)

const (
	CacheKeyOrdersTotal = "statistics:orders:total"
	CacheKeyOrdersDaily = "statistics:orders:daily:%s" // Format with date YYYY-MM-DD
	CacheKeyRevenue     = "statistics:revenue:total"
	CacheKeyUsers       = "statistics:users:total"
	CacheExpiration     = 30 * time.Minute
)

// StatisticsData holds the aggregates shown on the admin dashboard.
type StatisticsData struct {
	TodayOrders  int    `json:"today_orders"`
	TotalOrders  int    `json:"total_orders"`
	TotalUsers   int    `json:"total_users"`
	TotalRevenue string `json:"total_revenue"`
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// ShouldUpdateCache reports whether the cached aggregates are stale.
func ShouldUpdateCache() bool {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	return time.Since(lastCacheUpdate) > cacheUpdateInterval
}

// UpdateCacheIfNeeded refreshes the cached aggregates when they are stale.
func UpdateCacheIfNeeded() {
	if ShouldUpdateCache() {
		cacheUpdateMutex.Lock()
		defer cacheUpdateMutex.Unlock()

		if err := UpdateStatisticsCache(); err != nil {
			log.Printf("Error updating statistics cache: %v", err)
		} else {
			lastCacheUpdate = time.Now()
		}
	}
}

// UpdateStatisticsCache recomputes all aggregates and writes them to the cache.
func UpdateStatisticsCache() error {
	db := database.GetDB()

	var totalOrders int64
	if err := db.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
		log.Printf("Error counting total orders: %v", err)
		return err
	}

	var todayOrders int64
	today := time.Now().Format("2006-01-02")
	todayStart, _ := time.Parse("2006-01-02", today)
	todayEnd := todayStart.Add(24 * time.Hour)

	if err := db.Model(&models.Order{}).Where("created_at BETWEEN ? AND ?", todayStart, todayEnd).Count(&todayOrders).Error; err != nil {
		log.Printf("Error counting today's orders: %v", err)
		return err
	}

	var totalUsers int64
	if err := db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		log.Printf("Error counting total users: %v", err)
		return err
	}

	// Revenue is the sum over settled payments; refunds stay counted because
	// the refund operation never reverts the order.
	var totalRevenue string
	err := db.Model(&models.Payment{}).
		Where("status IN ?", []string{models.PaymentStatusSuccess, models.PaymentStatusRefunded}).
		Select("COALESCE(SUM(amount), 0)").Scan(&totalRevenue).Error
	if err != nil {
		log.Printf("Error summing revenue: %v", err)
		return err
	}
	if totalRevenue == "" {
		totalRevenue = "0"
	}

	if err := cache.Set(CacheKeyOrdersTotal, strconv.FormatInt(totalOrders, 10), CacheExpiration); err != nil {
		log.Printf("Error caching total orders: %v", err)
		return err
	}

	dailyKey := fmt.Sprintf(CacheKeyOrdersDaily, today)
	if err := cache.Set(dailyKey, strconv.FormatInt(todayOrders, 10), CacheExpiration); err != nil {
		log.Printf("Error caching today's orders: %v", err)
		return err
	}

	if err := cache.Set(CacheKeyUsers, strconv.FormatInt(totalUsers, 10), CacheExpiration); err != nil {
		log.Printf("Error caching total users: %v", err)
		return err
	}

	if err := cache.Set(CacheKeyRevenue, totalRevenue, CacheExpiration); err != nil {
		log.Printf("Error caching total revenue: %v", err)
		return err
	}

	log.Printf("Statistics updated in cache: Total Orders: %d, Today's Orders: %d, Total Users: %d, Revenue: %s",
		totalOrders, todayOrders, totalUsers, totalRevenue)

	return nil
}

// GetStatisticsData returns all aggregates, refreshing the cache when stale.
func GetStatisticsData() StatisticsData {
	UpdateCacheIfNeeded()

	return StatisticsData{
		TodayOrders:  getCachedInt(fmt.Sprintf(CacheKeyOrdersDaily, time.Now().Format("2006-01-02"))),
		TotalOrders:  getCachedInt(CacheKeyOrdersTotal),
		TotalUsers:   getCachedInt(CacheKeyUsers),
		TotalRevenue: getCachedString(CacheKeyRevenue, "0"),
	}
}

func getCachedInt(key string) int {
	val, err := cache.Get(key)
	if err != nil {
		return 0
	}
	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}
	return int(count)
}

func getCachedString(key, fallback string) string {
	val, err := cache.Get(key)
	if err != nil || val == "" {
		return fallback
	}
	return val
}
