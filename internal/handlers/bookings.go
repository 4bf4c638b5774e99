package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/smartservices-app/backend_api/internal/services/bookings"
)

type BookingHandler struct {
	Bookings *bookings.Service
}

func NewBookingHandler(bookingSvc *bookings.Service) *BookingHandler {
	return &BookingHandler{Bookings: bookingSvc}
}

type CreateBookingReq struct {
	CustomerID      uint      `json:"customer_id"`
	ProviderID      uint      `json:"provider_id"`
	ServiceCategory string    `json:"service_category"`
	ScheduledDate   time.Time `json:"scheduled_date"`
}

func (h *BookingHandler) Create(c *fiber.Ctx) error {
	var req CreateBookingReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "invalid body",
		})
	}

	if req.CustomerID == 0 || req.ProviderID == 0 || req.ServiceCategory == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "customer_id, provider_id and service_category are required",
		})
	}

	b, err := h.Bookings.CreateBooking(c.UserContext(), req.CustomerID, req.ProviderID, req.ServiceCategory, req.ScheduledDate)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "failed to create booking",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(b)
}

func (h *BookingHandler) List(c *fiber.Ctx) error {
	list, err := h.Bookings.FindAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "failed to list bookings",
		})
	}
	return c.JSON(list)
}

func (h *BookingHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "invalid id",
		})
	}

	withParties := c.Query("expand") == "parties"

	b, err := h.Bookings.FindOne(uint(id), withParties)
	if err != nil {
		if errors.Is(err, bookings.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "booking not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "failed to load booking",
		})
	}
	return c.JSON(b)
}

func (h *BookingHandler) ListByUser(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userId")
	if err != nil || userID < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "invalid user id",
		})
	}

	list, err := h.Bookings.FindByUser(uint(userID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "failed to list bookings",
		})
	}
	return c.JSON(list)
}

func (h *BookingHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "invalid id",
		})
	}

	var in bookings.UpdateBookingInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "invalid body",
		})
	}

	if err := h.Bookings.Update(uint(id), in); err != nil {
		switch {
		case errors.Is(err, bookings.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "booking not found",
			})
		case errors.Is(err, bookings.ErrInvalidStatus),
			errors.Is(err, bookings.ErrInvalidTransition),
			errors.Is(err, bookings.ErrInvalidRating):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "update failed",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *BookingHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "invalid id",
		})
	}

	if err := h.Bookings.Remove(uint(id)); err != nil {
		if errors.Is(err, bookings.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "booking not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "delete failed",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
