package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/smartservices-app/backend_api/internal/models"
	"github.com/smartservices-app/backend_api/internal/services/directory"
	"github.com/smartservices-app/backend_api/internal/services/users"
)

type UserHandler struct {
	Users     *users.Service
	Directory *directory.Service
}

func NewUserHandler(userSvc *users.Service, dirSvc *directory.Service) *UserHandler {
	return &UserHandler{Users: userSvc, Directory: dirSvc}
}

// ownsAccount reports whether the authenticated user is the one the
// route targets. Mutating someone else's account is forbidden.
func ownsAccount(c *fiber.Ctx, id int) bool {
	uid, _ := c.Locals("userId").(string)
	return uid == strconv.Itoa(id)
}

type RegisterReq struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	Role            string `json:"role"`             // CUSTOMER / WORKER
	ServiceCategory string `json:"service_category"` // "Plumber", "Maid", ...
}

func (h *UserHandler) Register(c *fiber.Ctx) error {
	var req RegisterReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "invalid body",
		})
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "a valid email is required",
		})
	}
	if len(req.Password) < 6 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "password must be at least 6 characters",
		})
	}

	role := models.Role(strings.ToUpper(strings.TrimSpace(req.Role)))
	if role != "" && !role.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "role must be CUSTOMER or WORKER",
		})
	}

	u, err := h.Users.Register(email, req.Password, role, req.ServiceCategory)
	if err != nil {
		if errors.Is(err, users.ErrDuplicateEmail) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "email already registered",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "registration failed",
		})
	}

	h.Directory.Invalidate(c.UserContext())

	return c.Status(fiber.StatusCreated).JSON(u)
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	list, err := h.Users.FindAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "failed to list users",
		})
	}
	return c.JSON(list)
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "invalid id",
		})
	}

	u, err := h.Users.FindByID(uint(id))
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "user not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "failed to load user",
		})
	}
	return c.JSON(u)
}

// ListByRole serves the provider search. lat/lng are accepted for
// forward compatibility with the mobile clients but not used for
// filtering or ranking; city "Unknown" means the client has no location.
func (h *UserHandler) ListByRole(c *fiber.Ctx) error {
	f := directory.RoleFilter{
		Role: strings.ToUpper(c.Params("role")),
	}
	if city := c.Query("city"); city != "" {
		f.City = &city
	}
	if category := c.Query("category"); category != "" {
		f.Category = &category
	}
	_ = c.Query("lat")
	_ = c.Query("lng")

	list, err := h.Directory.FindByRole(c.UserContext(), f)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "failed to list providers",
		})
	}
	return c.JSON(list)
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "invalid id",
		})
	}

	if !ownsAccount(c, id) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "cannot modify another user's account",
		})
	}

	var in users.UpdateProfileInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "invalid body",
		})
	}

	u, err := h.Users.UpdateProfile(uint(id), in)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "user not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "update failed",
		})
	}

	h.Directory.Invalidate(c.UserContext())

	return c.JSON(u)
}

type FCMTokenReq struct {
	Token string `json:"token"`
}

func (h *UserHandler) UpdateFCMToken(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "invalid id",
		})
	}

	if !ownsAccount(c, id) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "cannot modify another user's account",
		})
	}

	var req FCMTokenReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "invalid body",
		})
	}

	if err := h.Users.UpdateFCMToken(uint(id), req.Token); err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "user not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "update failed",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "invalid id",
		})
	}

	if !ownsAccount(c, id) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "cannot modify another user's account",
		})
	}

	if err := h.Users.Remove(uint(id)); err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "user not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "delete failed",
		})
	}

	h.Directory.Invalidate(c.UserContext())

	return c.SendStatus(fiber.StatusNoContent)
}
