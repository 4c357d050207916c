package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Olajosh80/Realms/internal/backend"
	"github.com/Olajosh80/Realms/internal/models"
	"github.com/Olajosh80/Realms/internal/transport"
	"github.com/Olajosh80/Realms/internal/util"
)

const (
	excerptLen    = 150
	defaultAuthor = "Admin"
)

type BlogService struct {
	Posts *backend.Table[models.BlogPost]
}

func (s *BlogService) ListPublished(ctx context.Context, category string) ([]models.BlogPost, error) {
	q := backend.Query{
		Filters: []backend.Filter{backend.Eq("published", true)},
		OrderBy: "created_at",
	}
	if category != "" {
		q.Filters = append(q.Filters, backend.Eq("category", category))
	}
	return s.Posts.Select(ctx, q)
}

func (s *BlogService) ListAll(ctx context.Context) ([]models.BlogPost, error) {
	return s.Posts.Select(ctx, backend.Query{OrderBy: "created_at"})
}

func (s *BlogService) GetPublishedBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	p, err := s.Posts.Single(ctx, backend.Query{Filters: []backend.Filter{
		backend.Eq("slug", slug),
		backend.Eq("published", true),
	}})
	return p, translate(err)
}

func Excerpt(content string) string {
	r := []rune(content)
	if len(r) <= excerptLen {
		return content
	}
	return string(r[:excerptLen])
}

func (s *BlogService) CreatePost(ctx context.Context, req transport.CreatePostRequest) (*models.BlogPost, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, validation("title is required")
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, validation("content is required")
	}

	post := &models.BlogPost{
		Title:         title,
		Slug:          util.Slug(title),
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		Author:        req.Author,
		AuthorImage:   req.AuthorImage,
		FeaturedImage: req.FeaturedImage,
		Category:      req.Category,
		Tags:          req.Tags,
		Published:     req.Status == "published",
	}
	if post.Excerpt == "" {
		post.Excerpt = Excerpt(req.Content)
	}
	if post.Author == "" {
		post.Author = defaultAuthor
	}
	if post.Tags == nil {
		post.Tags = models.StringList{}
	}
	if post.Published {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}

	if err := s.Posts.Insert(ctx, post); err != nil {
		return nil, translate(err)
	}
	return post, nil
}

func (s *BlogService) PatchPost(ctx context.Context, id uuid.UUID, req transport.PatchPostRequest) (*models.BlogPost, error) {
	patch := map[string]any{}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, validation("title cannot be empty")
		}
		patch["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		patch["content"] = *req.Content
	}
	if req.Excerpt != nil {
		patch["excerpt"] = *req.Excerpt
	}
	if req.Author != nil {
		patch["author"] = *req.Author
	}
	if req.FeaturedImage != nil {
		patch["featured_image"] = *req.FeaturedImage
	}
	if req.Category != nil {
		patch["category"] = *req.Category
	}
	if req.Tags != nil {
		patch["tags"] = models.StringList(*req.Tags)
	}
	if req.Published != nil {
		patch["published"] = *req.Published
		if *req.Published {
			patch["published_at"] = time.Now().UTC()
		} else {
			patch["published_at"] = nil
		}
	}

	rows, err := s.Posts.Update(ctx, patch, backend.Eq("id", id))
	if err != nil {
		return nil, translate(err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

func (s *BlogService) DeletePost(ctx context.Context, id uuid.UUID) error {
	rows, err := s.Posts.Delete(ctx, backend.Eq("id", id))
	if err != nil {
		return translate(err)
	}
	if len(rows) == 0 {
		return ErrNotFound
	}
	return nil
}
