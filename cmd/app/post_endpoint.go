package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/sampogi19/SafeSpace/internal/middleware"
	"github.com/sampogi19/SafeSpace/internal/services"

	"github.com/labstack/echo/v4"
)

type createPostRequest struct {
	Content string `json:"content"`
}

type updatePostRequest struct {
	Content string `json:"content"`
}

// createPostHandler inserts a post authored by the session user. The
// author id comes from the token claims, never from the body.
func createPostHandler(feedSvc *services.FeedService) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		if claims == nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"success": false, "message": "unauthenticated",
			})
		}

		req := new(createPostRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"success": false, "message": "invalid request",
			})
		}

		post, err := feedSvc.CreatePost(c.Request().Context(), claims.UserID, req.Content)
		if err != nil {
			if errors.Is(err, services.ErrEmptyContent) {
				return c.JSON(http.StatusBadRequest, echo.Map{
					"success": false, "message": "Content is required",
				})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"success": false, "message": "Failed to create post",
			})
		}

		return c.JSON(http.StatusCreated, echo.Map{
			"success": true,
			"message": "Post created successfully",
			"postId":  post.PostID,
			"post":    post,
		})
	}
}

func getPostsHandler(feedSvc *services.FeedService) echo.HandlerFunc {
	return func(c echo.Context) error {
		posts, err := feedSvc.ListPosts(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"success": false, "message": "Failed to fetch posts",
			})
		}
		return c.JSON(http.StatusOK, echo.Map{"posts": posts})
	}
}

func updatePostHandler(feedSvc *services.FeedService) echo.HandlerFunc {
	return func(c echo.Context) error {
		postID, err := strconv.ParseInt(c.Param("postId"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"success": false, "message": "invalid post id",
			})
		}

		req := new(updatePostRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"success": false, "message": "invalid request",
			})
		}

		if err := feedSvc.UpdatePost(c.Request().Context(), postID, req.Content); err != nil {
			switch {
			case errors.Is(err, services.ErrEmptyContent):
				return c.JSON(http.StatusBadRequest, echo.Map{
					"success": false, "message": "Content is required",
				})
			case errors.Is(err, services.ErrPostNotFound):
				return c.JSON(http.StatusNotFound, echo.Map{
					"success": false, "message": "Post not found",
				})
			default:
				return c.JSON(http.StatusInternalServerError, echo.Map{
					"success": false, "message": "Failed to update post",
				})
			}
		}

		return c.JSON(http.StatusOK, echo.Map{
			"success": true, "message": "Post updated successfully",
		})
	}
}

func registerPostRoutes(g *echo.Group, feedSvc *services.FeedService) {
	posts := g.Group("")
	posts.Use(middleware.JWTMiddleware())
	posts.POST("/create-post", createPostHandler(feedSvc))
	posts.GET("/get-posts", getPostsHandler(feedSvc))
	posts.PUT("/update-post/:postId", updatePostHandler(feedSvc))
}
