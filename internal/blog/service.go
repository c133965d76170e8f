package blog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kgzivf/blogbackend/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
	DefaultReadTime  = 5
)

type Service struct {
	store postsStore
}

func NewService(store postsStore) *Service {
	return &Service{
		store: store,
	}
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}

// GetAllPosts lists published posts, newest first.
func (s *Service) GetAllPosts(ctx context.Context, limit int) (_ []Post, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.blog.posts.all")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	posts, err := s.store.ListPosts(ctx, ListFilter{PublishedOnly: true, Limit: clampLimit(limit)})
	if err != nil {
		return nil, fmt.Errorf("list published posts: %w", err)
	}
	return posts, nil
}

// GetAdminPosts lists drafts and published posts alike.
func (s *Service) GetAdminPosts(ctx context.Context, limit int) (_ []Post, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.blog.posts.admin")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	posts, err := s.store.ListPosts(ctx, ListFilter{Limit: clampLimit(limit)})
	if err != nil {
		return nil, fmt.Errorf("list all posts: %w", err)
	}
	return posts, nil
}

// GetPostBySlug returns nil without error when no post has the slug.
func (s *Service) GetPostBySlug(ctx context.Context, slug string) (_ *Post, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.blog.posts.byslug")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("slug", slug))

	if strings.TrimSpace(slug) == "" {
		return nil, nil
	}

	post, err := s.store.GetPostBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get post by slug %s: %w", slug, err)
	}
	return post, nil
}

func (s *Service) GetPostByID(ctx context.Context, id string) (_ *Post, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.blog.posts.byid")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	post, err := s.store.GetPostByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get post %s: %w", id, err)
	}
	return post, nil
}

func (s *Service) GetPostsByCategory(ctx context.Context, category string, limit int) (_ []Post, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.blog.posts.bycategory")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("category", category))

	posts, err := s.store.ListPosts(ctx, ListFilter{
		PublishedOnly: true,
		Category:      category,
		Limit:         clampLimit(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("list posts in category %s: %w", category, err)
	}
	return posts, nil
}

// SearchPosts matches term case-insensitively against the title and excerpt
// in lang. A blank term matches nothing.
func (s *Service) SearchPosts(ctx context.Context, term string, lang Language, limit int) (_ []Post, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.blog.posts.search")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	term = strings.TrimSpace(term)
	if term == "" {
		return []Post{}, nil
	}
	if lang != LangEN {
		lang = LangZH
	}
	span.SetAttributes(attribute.String("lang", string(lang)))

	posts, err := s.store.SearchPosts(ctx, term, lang, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("search posts: %w", err)
	}
	return posts, nil
}

func (s *Service) GetCategories(ctx context.Context) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.blog.categories")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// CreatePost validates the form, derives the slug and refuses it when any
// post, draft or published, already has it.
func (s *Service) CreatePost(ctx context.Context, in PostInput) (_ *Post, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.blog.posts.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := in.Validate(); err != nil {
		return nil, err
	}
	if in.ReadTime == nil {
		readTime := DefaultReadTime
		in.ReadTime = &readTime
	}

	slug := slugFor(in)
	if slug == "" {
		return nil, fmt.Errorf("%w: title yields an empty slug", ErrValidation)
	}
	span.SetAttributes(attribute.String("slug", slug))

	existing, err := s.store.GetPostBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("check slug %s: %w", slug, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrSlugTaken, slug)
	}

	post, err := s.store.InsertPost(ctx, in, slug)
	if err != nil {
		if errors.Is(err, ErrSlugTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("insert post: %w", err)
	}

	log.Debugf("blog post %s [%s] created", post.ID, slug)
	return post, nil
}

func (s *Service) UpdatePost(ctx context.Context, id string, patch PostPatch) (_ *Post, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.blog.posts.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if patch.Empty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrValidation)
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	post, err := s.store.UpdatePost(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update post %s: %w", id, err)
	}
	return post, nil
}

func (s *Service) DeletePost(ctx context.Context, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.blog.posts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := s.store.DeletePost(ctx, id); err != nil {
		return fmt.Errorf("delete post %s: %w", id, err)
	}
	log.Debugf("blog post %s deleted", id)
	return nil
}

func (s *Service) ListAuthors(ctx context.Context) (_ []Author, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.blog.authors.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	authors, err := s.store.ListAuthors(ctx)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	return authors, nil
}

func (s *Service) CreateAuthor(ctx context.Context, in AuthorInput) (_ *Author, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.blog.authors.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := in.Validate(); err != nil {
		return nil, err
	}
	author, err := s.store.InsertAuthor(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("insert author: %w", err)
	}
	return author, nil
}

func (s *Service) UpdateAuthor(ctx context.Context, id string, in AuthorInput) (_ *Author, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.blog.authors.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := in.Validate(); err != nil {
		return nil, err
	}
	author, err := s.store.UpdateAuthor(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("update author %s: %w", id, err)
	}
	return author, nil
}

// DeleteAuthor refuses to remove an author that still has posts.
func (s *Service) DeleteAuthor(ctx context.Context, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.blog.authors.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	count, err := s.store.CountPostsByAuthor(ctx, id)
	if err != nil {
		return fmt.Errorf("count posts of author %s: %w", id, err)
	}
	if count > 0 {
		return fmt.Errorf("%w: %d posts", ErrAuthorInUse, count)
	}

	if err := s.store.DeleteAuthor(ctx, id); err != nil {
		return fmt.Errorf("delete author %s: %w", id, err)
	}
	return nil
}
