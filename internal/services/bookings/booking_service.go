package bookings

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/smartservices-app/backend_api/internal/models"
	"github.com/smartservices-app/backend_api/internal/services/users"
)

var (
	ErrNotFound          = errors.New("booking not found")
	ErrInvalidStatus     = errors.New("unknown booking status")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
)

// Notifier is the outbound push channel. Kept as an interface so the
// booking flow does not care whether it talks to FCM or a test fake.
type Notifier interface {
	Send(ctx context.Context, deviceToken, title, body string, data map[string]string) error
}

type Service struct {
	DB       *gorm.DB
	Users    *users.Service
	Notifier Notifier
}

func NewService(db *gorm.DB, userSvc *users.Service, notifier Notifier) *Service {
	return &Service{DB: db, Users: userSvc, Notifier: notifier}
}

// CreateBooking persists the booking, then tries to alert the provider.
// The write is the only step that can fail the call: once the row exists
// the booking is the durable fact, and anything that goes wrong finding
// the provider or pushing the notification is logged and swallowed.
func (s *Service) CreateBooking(ctx context.Context, customerID, providerID uint, category string, scheduled time.Time) (*models.Booking, error) {
	b := models.Booking{
		CustomerID:      customerID,
		ProviderID:      providerID,
		ServiceCategory: category,
		Status:          models.BookingPending,
		ScheduledDate:   scheduled,
	}
	if err := s.DB.Create(&b).Error; err != nil {
		return nil, err
	}

	s.notifyProvider(ctx, &b)

	return &b, nil
}

func (s *Service) notifyProvider(ctx context.Context, b *models.Booking) {
	if s.Notifier == nil {
		return
	}

	provider, err := s.Users.FindByID(b.ProviderID)
	if err != nil {
		log.Printf("booking %d: provider lookup failed, skipping notification: %v", b.ID, err)
		return
	}
	if provider.FCMToken == "" {
		return
	}

	err = s.Notifier.Send(ctx,
		provider.FCMToken,
		"New Job Alert",
		fmt.Sprintf("A customer needs a %s. Check app now!", b.ServiceCategory),
		map[string]string{"bookingId": strconv.FormatUint(uint64(b.ID), 10)},
	)
	if err != nil {
		log.Printf("booking %d: notification failed: %v", b.ID, err)
	}
}

func (s *Service) FindAll() ([]models.Booking, error) {
	var out []models.Booking
	// id DESC breaks created_at ties so the order is deterministic
	if err := s.DB.Order("created_at DESC, id DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindOne loads a booking, optionally with the customer and provider
// records attached. Loading the parties is explicit so list endpoints
// never pay for the joins.
func (s *Service) FindOne(id uint, withParties bool) (*models.Booking, error) {
	q := s.DB
	if withParties {
		q = q.Preload("Customer").Preload("Provider")
	}

	var b models.Booking
	if err := q.First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// FindByUser lists bookings where the user is either party.
func (s *Service) FindByUser(userID uint) ([]models.Booking, error) {
	var out []models.Booking
	err := s.DB.
		Where("customer_id = ? OR provider_id = ?", userID, userID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateBookingInput carries the PATCHable booking fields. Nil means
// "leave unchanged".
type UpdateBookingInput struct {
	Status        *models.BookingStatus `json:"status"`
	Rating        *int                  `json:"rating"`
	ReviewComment *string               `json:"review_comment"`
}

// Update applies a partial update. Status changes are validated against
// the lifecycle; rating and review are accepted as given apart from the
// 1-5 bound (the app only offers them once a booking is COMPLETED).
func (s *Service) Update(id uint, in UpdateBookingInput) error {
	b, err := s.FindOne(id, false)
	if err != nil {
		return err
	}

	ch := map[string]interface{}{}

	if in.Status != nil {
		next := *in.Status
		if !next.Valid() {
			return ErrInvalidStatus
		}
		if !b.Status.CanTransitionTo(next) {
			return ErrInvalidTransition
		}
		ch["status"] = next
	}
	if in.Rating != nil {
		if *in.Rating < 1 || *in.Rating > 5 {
			return ErrInvalidRating
		}
		ch["rating"] = *in.Rating
	}
	if in.ReviewComment != nil {
		ch["review_comment"] = *in.ReviewComment
	}

	if len(ch) == 0 {
		return nil
	}

	return s.DB.Model(&models.Booking{}).Where("id = ?", id).Updates(ch).Error
}

func (s *Service) Remove(id uint) error {
	res := s.DB.Delete(&models.Booking{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
