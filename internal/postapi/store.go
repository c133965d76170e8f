package postapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/kgzivf/blogbackend/internal/blog"
)

// Store serves the blog from the third-party API. Authors are read-only
// there; author mutations report blog.ErrNotSupported.
type Store struct {
	client *Client
}

func NewStore(client *Client) *Store {
	return &Store{client: client}
}

// upstream marks client failures so handlers can tell them from local bugs.
func upstream(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %w", blog.ErrNotFound, err)
		case http.StatusBadRequest, http.StatusUnprocessableEntity:
			return fmt.Errorf("%w: %w", blog.ErrValidation, err)
		}
	}
	return fmt.Errorf("%w: %w", blog.ErrUpstream, err)
}

func (s *Store) ListPosts(ctx context.Context, filter blog.ListFilter) ([]blog.Post, error) {
	params := ListParams{Category: filter.Category, Limit: filter.Limit}
	if filter.PublishedOnly {
		params.Status = StatusPublished
		list, err := s.client.ListPosts(ctx, params)
		if err != nil {
			return nil, upstream(err)
		}
		return list.Posts, nil
	}

	// the API filters by one status at a time
	var posts []blog.Post
	for _, status := range []string{StatusPublished, StatusDraft} {
		params.Status = status
		list, err := s.client.ListPosts(ctx, params)
		if err != nil {
			return nil, upstream(err)
		}
		posts = append(posts, list.Posts...)
	}
	sortNewestFirst(posts)
	if filter.Limit > 0 && len(posts) > filter.Limit {
		posts = posts[:filter.Limit]
	}
	return posts, nil
}

func sortNewestFirst(posts []blog.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		a, b := posts[i].CreatedAt, posts[j].CreatedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
}

func (s *Store) GetPostBySlug(ctx context.Context, slug string) (*blog.Post, error) {
	post, err := s.client.GetPostBySlug(ctx, slug)
	if err != nil {
		return nil, upstream(err)
	}
	return post, nil
}

func (s *Store) GetPostByID(ctx context.Context, id string) (*blog.Post, error) {
	post, err := s.client.GetPost(ctx, id)
	if err != nil {
		return nil, upstream(err)
	}
	return post, nil
}

// SearchPosts leaves matching to the API, which searches both languages.
func (s *Store) SearchPosts(ctx context.Context, term string, _ blog.Language, limit int) ([]blog.Post, error) {
	posts, err := s.client.Search(ctx, term, limit)
	if err != nil {
		return nil, upstream(err)
	}
	return posts, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]string, error) {
	categories, err := s.client.Categories(ctx)
	if err != nil {
		return nil, upstream(err)
	}
	return categories, nil
}

func (s *Store) InsertPost(ctx context.Context, in blog.PostInput, slug string) (*blog.Post, error) {
	post, err := s.client.CreatePost(ctx, createPayload(in, slug))
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict {
			return nil, fmt.Errorf("%w: %s", blog.ErrSlugTaken, slug)
		}
		return nil, upstream(err)
	}
	return post, nil
}

func (s *Store) UpdatePost(ctx context.Context, id string, patch blog.PostPatch) (*blog.Post, error) {
	post, err := s.client.UpdatePost(ctx, id, patchPayload(patch))
	if err != nil {
		return nil, upstream(err)
	}
	return post, nil
}

func (s *Store) DeletePost(ctx context.Context, id string) error {
	return upstream(s.client.DeletePost(ctx, id))
}

func (s *Store) ListAuthors(ctx context.Context) ([]blog.Author, error) {
	authors, err := s.client.Authors(ctx)
	if err != nil {
		return nil, upstream(err)
	}
	return authors, nil
}

func (s *Store) InsertAuthor(context.Context, blog.AuthorInput) (*blog.Author, error) {
	return nil, fmt.Errorf("create author: %w", blog.ErrNotSupported)
}

func (s *Store) UpdateAuthor(context.Context, string, blog.AuthorInput) (*blog.Author, error) {
	return nil, fmt.Errorf("update author: %w", blog.ErrNotSupported)
}

func (s *Store) DeleteAuthor(context.Context, string) error {
	return fmt.Errorf("delete author: %w", blog.ErrNotSupported)
}

// CountPostsByAuthor counts over the first aggregate page of published
// posts and drafts.
func (s *Store) CountPostsByAuthor(ctx context.Context, authorID string) (int, error) {
	count := 0
	for _, status := range []string{StatusPublished, StatusDraft} {
		list, err := s.client.ListPosts(ctx, ListParams{Status: status, Limit: aggregateLimit})
		if err != nil {
			return 0, upstream(err)
		}
		for _, p := range list.Posts {
			if p.AuthorID == authorID {
				count++
			}
		}
	}
	return count, nil
}

func (s *Store) Health(ctx context.Context) error {
	return s.client.Health(ctx)
}
