package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/sampogi19/SafeSpace/internal/middleware"
	"github.com/sampogi19/SafeSpace/internal/services"

	"github.com/labstack/echo/v4"
)

type createCommentRequest struct {
	PostID  int64  `json:"postId"`
	Comment string `json:"comment"`
}

// createCommentHandler inserts a comment under the session user and bumps
// the post's comment counter in the same store transaction.
func createCommentHandler(feedSvc *services.FeedService) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		if claims == nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"success": false, "message": "unauthenticated",
			})
		}

		req := new(createCommentRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"success": false, "message": "invalid request",
			})
		}
		if req.PostID == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"success": false, "message": "Missing required fields: postId or comment",
			})
		}

		comment, err := feedSvc.CreateComment(c.Request().Context(), req.PostID, claims.UserID, req.Comment)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrEmptyContent):
				return c.JSON(http.StatusBadRequest, echo.Map{
					"success": false, "message": "Missing required fields: postId or comment",
				})
			case errors.Is(err, services.ErrPostNotFound):
				return c.JSON(http.StatusNotFound, echo.Map{
					"success": false, "message": "Post not found",
				})
			default:
				return c.JSON(http.StatusInternalServerError, echo.Map{
					"success": false, "message": "Error creating comment",
				})
			}
		}

		return c.JSON(http.StatusCreated, echo.Map{
			"success": true,
			"message": "Comment posted successfully",
			"comment": comment,
		})
	}
}

func getCommentsHandler(feedSvc *services.FeedService) echo.HandlerFunc {
	return func(c echo.Context) error {
		postID, err := strconv.ParseInt(c.Param("postId"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"success": false, "message": "invalid post id",
			})
		}

		comments, err := feedSvc.ListComments(c.Request().Context(), postID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"success": false, "message": "Error fetching comments",
			})
		}
		return c.JSON(http.StatusOK, echo.Map{"comments": comments})
	}
}

func registerCommentRoutes(g *echo.Group, feedSvc *services.FeedService) {
	comments := g.Group("")
	comments.Use(middleware.JWTMiddleware())
	comments.POST("/create-comment", createCommentHandler(feedSvc))
	comments.GET("/get-comments/:postId", getCommentsHandler(feedSvc))
}
