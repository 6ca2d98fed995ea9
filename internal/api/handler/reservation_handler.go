package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/abelab/crms/internal/api/metrics"
	"github.com/abelab/crms/internal/core/ports"
)

// ReservationHandler handles HTTP requests for reservations.
type ReservationHandler struct {
	service ports.ReservationService
}

func NewReservationHandler(service ports.ReservationService) *ReservationHandler {
	return &ReservationHandler{service: service}
}

// List handles GET /api/reservations.
//
// @Summary      List reservations
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  reservationsResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/reservations [get]
func (h *ReservationHandler) List(c echo.Context) error {
	rs, err := h.service.ListReservations(c.Request().Context())
	if err != nil {
		return err
	}

	resp := reservationsResponse{Reservations: make([]reservationResponse, 0, len(rs))}
	for _, r := range rs {
		resp.Reservations = append(resp.Reservations, toReservationResponse(r, nil))
	}
	return c.JSON(http.StatusOK, resp)
}

// NextDay handles GET /api/reservations/next-day.
//
// @Summary      List reservations starting tomorrow
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  reservationsResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/reservations/next-day [get]
func (h *ReservationHandler) NextDay(c echo.Context) error {
	upcoming, err := h.service.ListNextDayReservations(c.Request().Context())
	if err != nil {
		return err
	}
	metrics.NextDayScanSize.Observe(float64(len(upcoming)))

	resp := reservationsResponse{Reservations: make([]reservationResponse, 0, len(upcoming))}
	for _, u := range upcoming {
		resp.Reservations = append(resp.Reservations, toReservationResponse(u.Reservation, u.User))
	}
	return c.JSON(http.StatusOK, resp)
}

// Create handles POST /api/reservations.
//
// @Summary      Create a reservation
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      reservationRequest  true  "Time window"
// @Success      201   {object}  reservationResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/reservations [post]
func (h *ReservationHandler) Create(c echo.Context) error {
	caller, err := LoginUser(c)
	if err != nil {
		return err
	}
	var req reservationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	r, err := h.service.CreateReservation(c.Request().Context(), caller.ID, ports.ReservationInput{
		StartAt:  req.StartAt,
		FinishAt: req.FinishAt,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toReservationResponse(r, nil))
}

// Update handles PUT /api/reservations/:reservation_id.
//
// @Summary      Update a reservation
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        reservation_id  path      string              true  "Reservation ID"
// @Param        body            body      reservationRequest  true  "Time window"
// @Success      200             {object}  reservationResponse
// @Failure      400             {object}  errorResponse
// @Failure      403             {object}  errorResponse
// @Failure      404             {object}  errorResponse
// @Router       /api/reservations/{reservation_id} [put]
func (h *ReservationHandler) Update(c echo.Context) error {
	caller, err := LoginUser(c)
	if err != nil {
		return err
	}
	var req reservationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	r, err := h.service.UpdateReservation(c.Request().Context(), caller.ID, c.Param("reservation_id"), ports.ReservationInput{
		StartAt:  req.StartAt,
		FinishAt: req.FinishAt,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReservationResponse(r, nil))
}

// Delete handles DELETE /api/reservations/:reservation_id.
//
// @Summary      Delete a reservation
// @Tags         reservations
// @Security     BearerAuth
// @Param        reservation_id  path  string  true  "Reservation ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/reservations/{reservation_id} [delete]
func (h *ReservationHandler) Delete(c echo.Context) error {
	caller, err := LoginUser(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteReservation(c.Request().Context(), caller.ID, c.Param("reservation_id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
