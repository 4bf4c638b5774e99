package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/smartservices-app/backend_api/internal/models"
)

// CityUnknown is the sentinel mobile clients send when they cannot
// determine location. It means "no city filter", never a literal match.
const CityUnknown = "Unknown"

const cacheTTL = 60 * time.Second

// RoleFilter narrows a directory query. Nil (or empty, or the sentinel
// city) means no constraint on that dimension.
type RoleFilter struct {
	Role     string
	City     *string
	Category *string
}

func (f RoleFilter) city() string {
	if f.City == nil || *f.City == "" || *f.City == CityUnknown {
		return ""
	}
	return *f.City
}

func (f RoleFilter) category() string {
	if f.Category == nil {
		return ""
	}
	return *f.Category
}

// Service is a read-only projection over the identity records. With a
// Redis client it reads through a short-lived cache; without one every
// call goes straight to the database.
type Service struct {
	DB    *gorm.DB
	Cache *redis.Client
}

func NewService(db *gorm.DB, cache *redis.Client) *Service {
	return &Service{DB: db, Cache: cache}
}

func (s *Service) FindByRole(ctx context.Context, f RoleFilter) ([]models.User, error) {
	key := fmt.Sprintf("directory:%s:%s:%s", f.Role, f.city(), f.category())

	if s.Cache != nil {
		raw, err := s.Cache.Get(ctx, key).Result()
		if err == nil {
			var out []models.User
			if json.Unmarshal([]byte(raw), &out) == nil {
				return out, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			log.Printf("directory cache read failed: %v", err)
		}
	}

	q := s.DB.Where("role = ?", f.Role)
	if city := f.city(); city != "" {
		q = q.Where("city = ?", city)
	}
	if category := f.category(); category != "" {
		q = q.Where("service_category = ?", category)
	}

	var out []models.User
	if err := q.Order("id").Find(&out).Error; err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if b, err := json.Marshal(out); err == nil {
			if err := s.Cache.Set(ctx, key, b, cacheTTL).Err(); err != nil {
				log.Printf("directory cache write failed: %v", err)
			}
		}
	}

	return out, nil
}

// Invalidate drops every cached directory listing. Called after any
// identity write; cache errors are logged, never surfaced.
func (s *Service) Invalidate(ctx context.Context) {
	if s.Cache == nil {
		return
	}

	iter := s.Cache.Scan(ctx, 0, "directory:*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.Cache.Del(ctx, iter.Val()).Err(); err != nil {
			log.Printf("directory cache invalidate failed: %v", err)
			return
		}
	}
	if err := iter.Err(); err != nil {
		log.Printf("directory cache scan failed: %v", err)
	}
}
