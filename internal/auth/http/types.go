package http

import "github.com/gbtraders/storefront-api/internal/auth/service"

type Handler struct {
	authService *service.AuthService
	purger      *service.StoragePurger
}

func New(authService *service.AuthService, purger *service.StoragePurger) *Handler {
	return &Handler{
		authService: authService,
		purger:      purger,
	}
}

type createUserRequest struct {
	UID       string `json:"uid" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Country   string `json:"country" binding:"required"`
	Role      string `json:"role" binding:"required,oneof=user dealer"`
}

type setRoleRequest struct {
	UID  string `json:"uid" binding:"required"`
	Role string `json:"role" binding:"required,oneof=user dealer"`
}

type updateProfileRequest struct {
	UID       string  `json:"uid" binding:"required"`
	FirstName string  `json:"firstName" binding:"required"`
	LastName  string  `json:"lastName" binding:"required"`
	Phone     *string `json:"phone"`
	Country   string  `json:"country" binding:"required"`
	Role      string  `json:"role" binding:"required,oneof=user dealer"`
	Location  *string `json:"location"`
}

type deleteUserRequest struct {
	UID string `json:"uid" binding:"required"`
}

type deleteStorageRequest struct {
	UID  string `json:"uid" binding:"required"`
	Type string `json:"type" binding:"required,oneof=dealer vehicles"`
}
