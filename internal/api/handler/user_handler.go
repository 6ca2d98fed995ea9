package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/abelab/crms/internal/core/ports"
)

// UserHandler serves account management, both admin-only and self-service.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /api/users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  usersResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	caller, err := LoginUser(c)
	if err != nil {
		return err
	}

	users, err := h.service.ListUsers(c.Request().Context(), caller.ID)
	if err != nil {
		return err
	}

	resp := usersResponse{Users: make([]userResponse, 0, len(users))}
	for _, u := range users {
		resp.Users = append(resp.Users, toUserResponse(u))
	}
	return c.JSON(http.StatusOK, resp)
}

// Create handles POST /api/users.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      userCreateRequest  true  "User details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	caller, err := LoginUser(c)
	if err != nil {
		return err
	}
	var req userCreateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.service.CreateUser(c.Request().Context(), caller.ID, ports.CreateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		RoleID:    req.RoleID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Update handles PUT /api/users/:user_id.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path      string             true  "User ID"
// @Param        body     body      userUpdateRequest  true  "User details"
// @Success      200      {object}  userResponse
// @Failure      400      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /api/users/{user_id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	caller, err := LoginUser(c)
	if err != nil {
		return err
	}
	var req userUpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.service.UpdateUser(c.Request().Context(), caller.ID, c.Param("user_id"), ports.UpdateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		RoleID:    req.RoleID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Delete handles DELETE /api/users/:user_id.
//
// @Summary      Delete a user
// @Tags         users
// @Security     BearerAuth
// @Param        user_id  path  string  true  "User ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/users/{user_id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	caller, err := LoginUser(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteUser(c.Request().Context(), caller.ID, c.Param("user_id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Me handles GET /api/users/me.
//
// @Summary      Get the logged-in user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	caller, err := LoginUser(c)
	if err != nil {
		return err
	}

	user, err := h.service.GetLoginUser(c.Request().Context(), caller.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateMe handles PUT /api/users/me.
//
// @Summary      Update the logged-in user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      loginUserUpdateRequest  true  "Profile"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/users/me [put]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	caller, err := LoginUser(c)
	if err != nil {
		return err
	}
	var req loginUserUpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.service.UpdateLoginUser(c.Request().Context(), caller.ID, ports.UpdateLoginUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateMyPassword handles PUT /api/users/me/password.
//
// @Summary      Change the logged-in user's password
// @Tags         users
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  passwordUpdateRequest  true  "Passwords"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/users/me/password [put]
func (h *UserHandler) UpdateMyPassword(c echo.Context) error {
	caller, err := LoginUser(c)
	if err != nil {
		return err
	}
	var req passwordUpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.service.UpdateLoginUserPassword(c.Request().Context(), caller.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
