package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Olajosh80/Realms/internal/service"
	"github.com/Olajosh80/Realms/internal/transport"
	"github.com/Olajosh80/Realms/pkg/logging"
)

type BlogHTTP struct {
	Svc *service.BlogService
}

func (h *BlogHTTP) ListPublished(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "blog.list_published")

	posts, err := h.Svc.ListPublished(ctx, c.QueryParam("category"))
	if err != nil {
		return fail(l, "list_posts_failed", err, "cannot get posts")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": posts})
}

func (h *BlogHTTP) GetBySlug(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "blog.get_by_slug")

	post, err := h.Svc.GetPublishedBySlug(ctx, c.Param("slug"))
	if err != nil {
		return fail(l, "get_post_failed", err, "cannot get post")
	}
	return c.JSON(http.StatusOK, post)
}

func (h *BlogHTTP) ListAll(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "blog.list_all")

	posts, err := h.Svc.ListAll(ctx)
	if err != nil {
		return fail(l, "list_posts_failed", err, "cannot get posts")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": posts})
}

func (h *BlogHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "blog.create")

	var req transport.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("post_create_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	post, err := h.Svc.CreatePost(ctx, req)
	if err != nil {
		return fail(l, "post_create_failed", err, "cannot create post")
	}

	l.Info("post_create_success", "post_id", post.ID, "slug", post.Slug)
	return c.JSON(http.StatusCreated, post)
}

func (h *BlogHTTP) Patch(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "blog.patch")

	id, err := paramID(c, l, "post_patch_failed")
	if err != nil {
		return err
	}
	var req transport.PatchPostRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("post_patch_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	post, err := h.Svc.PatchPost(ctx, id, req)
	if err != nil {
		return fail(l, "post_patch_failed", err, "cannot update post")
	}
	return c.JSON(http.StatusOK, post)
}

func (h *BlogHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "blog.delete")

	id, err := paramID(c, l, "post_delete_failed")
	if err != nil {
		return err
	}
	if err := h.Svc.DeletePost(ctx, id); err != nil {
		return fail(l, "post_delete_failed", err, "cannot delete post")
	}
	return c.NoContent(http.StatusNoContent)
}
