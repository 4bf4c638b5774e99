package users

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/smartservices-app/backend_api/internal/models"
	"github.com/smartservices-app/backend_api/internal/utils"
)

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotFound           = errors.New("user not found")
)

// dummyHash is compared against when the email does not exist, so the
// unknown-email and wrong-password paths cost the same.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type Service struct {
	DB *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// Register stores a new identity with a bcrypt hash in place of the
// plaintext. Role defaults to CUSTOMER when not supplied.
func (s *Service) Register(email, password string, role models.Role, category string) (*models.User, error) {
	email = strings.TrimSpace(email)

	if role == "" {
		role = models.RoleCustomer
	}

	var existing models.User
	err := s.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateEmail
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := models.User{
		Email:           email,
		Password:        hash,
		Role:            role,
		ServiceCategory: category,
	}
	if err := s.DB.Create(&u).Error; err != nil {
		// unique index catches the race the pre-check misses
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	return &u, nil
}

func (s *Service) FindAll() ([]models.User, error) {
	var out []models.User
	if err := s.DB.Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) FindByID(id uint) (*models.User, error) {
	var u models.User
	if err := s.DB.First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *Service) FindByEmail(email string) (*models.User, error) {
	var u models.User
	if err := s.DB.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Verify checks a plaintext password against the stored hash. Unknown
// email and wrong password collapse into the same error so callers cannot
// probe which emails are registered.
func (s *Service) Verify(email, password string) (*models.User, error) {
	var u models.User
	err := s.DB.Where("email = ?", email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CheckPassword(dummyHash, password)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}

	return &u, nil
}

// UpdateProfileInput carries the PATCHable profile fields. Nil means
// "leave unchanged".
type UpdateProfileInput struct {
	FullName        *string `json:"full_name"`
	Bio             *string `json:"bio"`
	AgencyName      *string `json:"agency_name"`
	ExperienceYears *int    `json:"experience_years"`
	ProfilePic      *string `json:"profile_pic"`
	City            *string `json:"city"`
	Phone           *string `json:"phone"`
	ServiceCategory *string `json:"service_category"`
}

func (in UpdateProfileInput) changes() map[string]interface{} {
	ch := map[string]interface{}{}
	if in.FullName != nil {
		ch["full_name"] = *in.FullName
	}
	if in.Bio != nil {
		ch["bio"] = *in.Bio
	}
	if in.AgencyName != nil {
		ch["agency_name"] = *in.AgencyName
	}
	if in.ExperienceYears != nil {
		ch["experience_years"] = *in.ExperienceYears
	}
	if in.ProfilePic != nil {
		ch["profile_pic"] = *in.ProfilePic
	}
	if in.City != nil {
		ch["city"] = *in.City
	}
	if in.Phone != nil {
		ch["phone"] = *in.Phone
	}
	if in.ServiceCategory != nil {
		ch["service_category"] = *in.ServiceCategory
	}
	return ch
}

func (s *Service) UpdateProfile(id uint, in UpdateProfileInput) (*models.User, error) {
	u, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	ch := in.changes()
	if len(ch) == 0 {
		return u, nil
	}

	if err := s.DB.Model(u).Updates(ch).Error; err != nil {
		return nil, err
	}

	return s.FindByID(id)
}

func (s *Service) UpdateFCMToken(id uint, token string) error {
	res := s.DB.Model(&models.User{}).Where("id = ?", id).Update("fcm_token", token)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) Remove(id uint) error {
	res := s.DB.Delete(&models.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
