package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/sampogi19/SafeSpace/internal/middleware"
	"github.com/sampogi19/SafeSpace/internal/services"

	"github.com/labstack/echo/v4"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// registerHandler creates an unverified account and dispatches the
// registration OTP.
func registerHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(registerRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"success": false, "message": "invalid request",
			})
		}
		if req.Email == "" || req.Password == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"success": false, "message": "Email and password are required",
			})
		}

		_, err := authSvc.Register(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrDuplicateEmail):
				return c.JSON(http.StatusBadRequest, echo.Map{
					"success": false, "message": "Email already registered",
				})
			case errors.Is(err, services.ErrInvalidEmail):
				return c.JSON(http.StatusBadRequest, echo.Map{
					"success": false, "message": "Invalid email format",
				})
			default:
				return c.JSON(http.StatusInternalServerError, echo.Map{
					"success": false, "message": "Registration failed",
				})
			}
		}

		return c.JSON(http.StatusOK, echo.Map{
			"success": true, "message": "OTP sent successfully",
		})
	}
}

// verifyOTPHandler confirms a registration code and flips the account to
// verified.
func verifyOTPHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(verifyOTPRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"success": false, "message": "invalid request",
			})
		}
		if req.Email == "" || req.OTP == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"success": false, "message": "Email and OTP are required",
			})
		}

		if err := authSvc.ConfirmRegistration(c.Request().Context(), req.Email, req.OTP); err != nil {
			switch {
			case errors.Is(err, services.ErrNotFound):
				return c.JSON(http.StatusNotFound, echo.Map{
					"success": false, "message": "User not found",
				})
			case errors.Is(err, services.ErrAlreadyVerified):
				return c.JSON(http.StatusBadRequest, echo.Map{
					"success": false, "message": "User is already verified",
				})
			case errors.Is(err, services.ErrOTPMismatch):
				return c.JSON(http.StatusBadRequest, echo.Map{
					"success": false, "message": "Invalid OTP",
				})
			case errors.Is(err, services.ErrOTPExpired):
				return c.JSON(http.StatusBadRequest, echo.Map{
					"success": false, "message": "OTP expired",
				})
			default:
				return c.JSON(http.StatusInternalServerError, echo.Map{
					"success": false, "message": "Failed to update verification status",
				})
			}
		}

		return c.JSON(http.StatusOK, echo.Map{
			"success": true, "message": "OTP verified successfully. User is now verified.",
		})
	}
}

func loginHandler(authSvc *services.AuthService, tokenValidity time.Duration) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(loginRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"success": false, "message": "invalid request",
			})
		}

		user, err := authSvc.Login(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrNotFound):
				return c.JSON(http.StatusNotFound, echo.Map{
					"success": false, "message": "User not found.",
				})
			case errors.Is(err, services.ErrInvalidCredentials):
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false, "message": "Invalid password.",
				})
			case errors.Is(err, services.ErrEmailNotVerified):
				return c.JSON(http.StatusForbidden, echo.Map{
					"success": false, "message": "Account not verified.",
				})
			default:
				return c.JSON(http.StatusInternalServerError, echo.Map{
					"success": false, "message": "Internal server error.",
				})
			}
		}

		token, err := middleware.GenerateToken(user.ID, user.Email, tokenValidity)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"success": false, "message": "could not create token",
			})
		}

		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"message": "Login successful",
			"token":   token,
			"user": echo.Map{
				"id":    user.ID,
				"email": user.Email,
			},
		})
	}
}

// meHandler returns the authenticated user's info
func meHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		if claims == nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"success": false, "message": "unauthenticated",
			})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"id":    claims.UserID,
			"email": claims.Email,
			"exp":   claims.ExpiresAt,
		})
	}
}

func registerAuthRoutes(g *echo.Group, authSvc *services.AuthService, tokenValidity time.Duration) {
	// public
	g.POST("/register", registerHandler(authSvc))
	g.POST("/login", loginHandler(authSvc, tokenValidity))
	g.POST("/verify-otp", verifyOTPHandler(authSvc))

	// authenticated
	protected := g.Group("")
	protected.Use(middleware.JWTMiddleware())
	protected.GET("/me", meHandler())
}
