package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/SHAIK-07/sunmax/internal/backend"
	"github.com/SHAIK-07/sunmax/internal/users"
	"github.com/SHAIK-07/sunmax/internal/utils"
)

type UserHTTPHandler struct {
	admin    *users.Admin
	client   *backend.Client
	tokenTTL time.Duration
}

func NewUserHTTPHandler(admin *users.Admin, client *backend.Client, tokenTTL time.Duration) *UserHTTPHandler {
	return &UserHTTPHandler{admin: admin, client: client, tokenTTL: tokenTTL}
}

// Login verifies credentials against the backend and mints the session
// token the protected routes expect.
func (h *UserHTTPHandler) Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")
	if email == "" || password == "" {
		c.JSON(http.StatusBadRequest, errorResponse("Email and password are required"))
		return
	}

	user, err := h.client.Login(c.Request.Context(), email, password)
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError {
			c.JSON(http.StatusUnauthorized, errorResponse("Invalid email or password"))
			return
		}
		c.JSON(http.StatusBadGateway, errorResponse("Login service unavailable"))
		return
	}

	token, exp, err := utils.GenerateToken(user.ID, user.Email, user.Role, h.tokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to generate token"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Login successful", gin.H{
		"token":      token,
		"expires_at": exp,
		"user":       user,
	}))
}

func (h *UserHTTPHandler) ListUsers(c *gin.Context) {
	list, err := h.admin.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, errorResponse("Failed to fetch users"))
		return
	}
	c.JSON(http.StatusOK, successResponse("Users retrieved", list))
}

func (h *UserHTTPHandler) GetUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid user ID"))
		return
	}

	user, err := h.admin.Get(c.Request.Context(), id)
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			c.JSON(http.StatusNotFound, errorResponse("User not found"))
			return
		}
		c.JSON(http.StatusBadGateway, errorResponse("Failed to fetch user"))
		return
	}
	c.JSON(http.StatusOK, successResponse("User retrieved", user))
}

func (h *UserHTTPHandler) CreateUser(c *gin.Context) {
	newUser := backend.NewUser{
		Name:     c.PostForm("name"),
		Email:    c.PostForm("email"),
		Phone:    c.PostForm("phone"),
		Role:     c.PostForm("role"),
		Password: c.PostForm("password"),
	}
	if newUser.Name == "" || newUser.Email == "" || newUser.Password == "" {
		c.JSON(http.StatusBadRequest, errorResponse("Name, email and password are required"))
		return
	}

	user, err := h.admin.Create(c.Request.Context(), roleFrom(c), newUser)
	if err != nil {
		h.respondError(c, err, "Failed to create user")
		return
	}
	c.JSON(http.StatusOK, successResponse("User created successfully", user))
}

func (h *UserHTTPHandler) UpdateUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid user ID"))
		return
	}

	update := backend.UserUpdate{
		Name:  c.PostForm("name"),
		Email: c.PostForm("email"),
		Phone: c.PostForm("phone"),
		Role:  c.PostForm("role"),
	}

	user, err := h.admin.Update(c.Request.Context(), roleFrom(c), id, update)
	if err != nil {
		h.respondError(c, err, "Failed to update user")
		return
	}
	c.JSON(http.StatusOK, successResponse("User updated successfully", user))
}

func (h *UserHTTPHandler) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid user ID"))
		return
	}

	if err := h.admin.Delete(c.Request.Context(), roleFrom(c), id); err != nil {
		h.respondError(c, err, "Failed to delete user")
		return
	}
	c.JSON(http.StatusOK, successResponse("User deleted successfully", nil))
}

func (h *UserHTTPHandler) respondError(c *gin.Context, err error, fallback string) {
	var roleErr *users.RoleError
	if errors.As(err, &roleErr) {
		c.JSON(http.StatusForbidden, errorResponse(roleErr.Error()))
		return
	}
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		status := apiErr.Status
		if status < http.StatusBadRequest {
			status = http.StatusBadGateway
		}
		message := apiErr.Message
		if message == "" {
			message = fallback
		}
		c.JSON(status, errorResponse(message))
		return
	}
	c.JSON(http.StatusBadGateway, errorResponse(fallback))
}
