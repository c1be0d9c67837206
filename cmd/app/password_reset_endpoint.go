package main

import (
	"errors"
	"net/http"

	"github.com/sampogi19/SafeSpace/internal/services"

	"github.com/labstack/echo/v4"
)

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Email           string `json:"email"`
	OTP             string `json:"otp"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

func forgotPasswordHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(forgotPasswordRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"success": false, "message": "invalid request",
			})
		}
		if req.Email == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"success": false, "message": "Email is required",
			})
		}

		if err := authSvc.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
			if errors.Is(err, services.ErrNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{
					"success": false, "message": "Email not found",
				})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"success": false, "message": "Failed to send OTP",
			})
		}

		return c.JSON(http.StatusOK, echo.Map{
			"success": true, "message": "OTP sent to email",
		})
	}
}

// verifyForgotPasswordOTPHandler is a read-only check so the client can
// gate its flow before collecting the new password. The reset endpoint
// re-validates the code regardless.
func verifyForgotPasswordOTPHandler(authSvc *services.AuthService) echo.HandlerFunc {
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

		if err := authSvc.ConfirmPasswordResetOTP(c.Request().Context(), req.Email, req.OTP); err != nil {
			switch {
			case errors.Is(err, services.ErrNotFound):
				return c.JSON(http.StatusNotFound, echo.Map{
					"success": false, "message": "Email not found",
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
					"success": false, "message": "Internal server error.",
				})
			}
		}

		return c.JSON(http.StatusOK, echo.Map{
			"success": true, "message": "OTP verified successfully. Proceed to reset password.",
		})
	}
}

func resetPasswordHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(resetPasswordRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"success": false, "message": "invalid request",
			})
		}
		if req.Email == "" || req.OTP == "" || req.NewPassword == "" || req.ConfirmPassword == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"success": false, "message": "All fields are required.",
			})
		}

		err := authSvc.ResetPassword(
			c.Request().Context(),
			req.Email,
			req.OTP,
			req.NewPassword,
			req.ConfirmPassword,
		)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrFieldMismatch):
				return c.JSON(http.StatusBadRequest, echo.Map{
					"success": false, "message": "Passwords do not match.",
				})
			case errors.Is(err, services.ErrWeakPassword):
				return c.JSON(http.StatusBadRequest, echo.Map{
					"success": false, "message": "Password must be at least 6 characters long.",
				})
			case errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrOTPMismatch):
				return c.JSON(http.StatusBadRequest, echo.Map{
					"success": false, "message": "Invalid or expired OTP.",
				})
			case errors.Is(err, services.ErrOTPExpired):
				return c.JSON(http.StatusBadRequest, echo.Map{
					"success": false, "message": "OTP expired.",
				})
			default:
				return c.JSON(http.StatusInternalServerError, echo.Map{
					"success": false, "message": "Failed to reset password.",
				})
			}
		}

		return c.JSON(http.StatusOK, echo.Map{
			"success": true, "message": "Password reset successfully.",
		})
	}
}

func registerPasswordResetRoutes(g *echo.Group, authSvc *services.AuthService) {
	g.POST("/forgot-password", forgotPasswordHandler(authSvc))
	g.POST("/verify-forgot-password-otp", verifyForgotPasswordOTPHandler(authSvc))
	g.POST("/reset-password", resetPasswordHandler(authSvc))
}
