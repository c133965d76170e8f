//go:build integration_test || all_tests

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kgzivf/blogbackend/internal/blog"
	"github.com/kgzivf/blogbackend/internal/middleware"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	authorZhang = "550e8400-e29b-41d4-a716-446655440001"
	authorLi    = "550e8400-e29b-41d4-a716-446655440002"
)

func (s *IntegrationTestSuite) doRequest(
	ctx context.Context,
	method, path string,
	body any,
	admin bool,
) *http.Response {
	var reqBody io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(s.T(), err)
		reqBody = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reqBody)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if admin {
		req.Header.Set(middleware.AdminKeyHeader, testAdminKey)
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	return resp
}

func (s *IntegrationTestSuite) createPost(ctx context.Context, in blog.PostInput) *blog.Post {
	resp := s.doRequest(ctx, "POST", "/blog/admin/posts", in, true)
	defer resp.Body.Close()
	require.Equal(s.T(), http.StatusCreated, resp.StatusCode)

	var post blog.Post
	require.NoError(s.T(), json.NewDecoder(resp.Body).Decode(&post))
	return &post
}

func (s *IntegrationTestSuite) getPosts(ctx context.Context, path string) blog.PostsResponse {
	resp := s.doRequest(ctx, "GET", path, nil, strings.HasPrefix(path, blog.AdminPathPrefix))
	defer resp.Body.Close()
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	var postsResponse blog.PostsResponse
	require.NoError(s.T(), json.NewDecoder(resp.Body).Decode(&postsResponse))
	return postsResponse
}

func newPostInput(slug string, published bool) blog.PostInput {
	readTime := gofakeit.Number(1, 20)
	return blog.PostInput{
		TitleZH:   gofakeit.Sentence(4),
		TitleEN:   gofakeit.Sentence(4),
		ContentZH: gofakeit.Paragraph(1, 3, 10, " "),
		ContentEN: gofakeit.Paragraph(1, 3, 10, " "),
		ExcerptZH: gofakeit.Sentence(8),
		ExcerptEN: gofakeit.Sentence(8),
		Category:  blog.CategoryGuide,
		ReadTime:  &readTime,
		Published: published,
		AuthorID:  authorLi,
		Slug:      slug,
	}
}

func containsSlug(posts []blog.Post, slug string) bool {
	for _, p := range posts {
		if p.Slug == slug {
			return true
		}
	}
	return false
}

func (s *IntegrationTestSuite) TestBlog_CreateAndGetBySlug() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	slug := fmt.Sprintf("ivf-guide-%d", gofakeit.Number(1000, 9999))
	created := s.createPost(ctx, newPostInput(slug, true))
	require.NotEmpty(s.T(), created.ID)
	assert.Equal(s.T(), slug, created.Slug)

	resp := s.doRequest(ctx, "GET", "/blog/posts/slug/"+slug, nil, false)
	defer resp.Body.Close()
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	var post blog.Post
	require.NoError(s.T(), json.NewDecoder(resp.Body).Decode(&post))
	assert.Equal(s.T(), created.ID, post.ID)
	assert.Equal(s.T(), created.TitleEN, post.TitleEN)
	assert.True(s.T(), post.Published)
	require.NotNil(s.T(), post.Author)
	assert.Equal(s.T(), authorLi, post.Author.ID)

	// duplicate slug
	dupResp := s.doRequest(ctx, "POST", "/blog/admin/posts", newPostInput(slug, true), true)
	defer dupResp.Body.Close()
	assert.Equal(s.T(), http.StatusConflict, dupResp.StatusCode)
}

func (s *IntegrationTestSuite) TestBlog_DraftsOnlyVisibleToAdmin() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	slug := fmt.Sprintf("draft-%d", gofakeit.Number(1000, 9999))
	draft := s.createPost(ctx, newPostInput(slug, false))
	assert.False(s.T(), draft.Published)

	public := s.getPosts(ctx, "/blog/posts")
	assert.False(s.T(), containsSlug(public.Posts, slug))

	admin := s.getPosts(ctx, "/blog/admin/posts")
	assert.True(s.T(), containsSlug(admin.Posts, slug))

	resp := s.doRequest(ctx, "GET", "/blog/posts/slug/"+slug, nil, false)
	resp.Body.Close()
	assert.Equal(s.T(), http.StatusNotFound, resp.StatusCode)

	// publish it
	updResp := s.doRequest(ctx, "PUT", "/blog/admin/posts/"+draft.ID, map[string]any{"published": true}, true)
	defer updResp.Body.Close()
	require.Equal(s.T(), http.StatusOK, updResp.StatusCode)
	var updated blog.Post
	require.NoError(s.T(), json.NewDecoder(updResp.Body).Decode(&updated))
	assert.True(s.T(), updated.Published)
	assert.Equal(s.T(), slug, updated.Slug)

	public = s.getPosts(ctx, "/blog/posts")
	assert.True(s.T(), containsSlug(public.Posts, slug))

	delResp := s.doRequest(ctx, "DELETE", "/blog/admin/posts/"+draft.ID, nil, true)
	delResp.Body.Close()
	assert.Equal(s.T(), http.StatusOK, delResp.StatusCode)

	getResp := s.doRequest(ctx, "GET", "/blog/admin/posts/"+draft.ID, nil, true)
	getResp.Body.Close()
	assert.Equal(s.T(), http.StatusNotFound, getResp.StatusCode)
}

func (s *IntegrationTestSuite) TestBlog_Search() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ivf := newPostInput(fmt.Sprintf("ivf-basics-%d", gofakeit.Number(1000, 9999)), true)
	ivf.TitleZH = "试管婴儿基础知识"
	ivf.Category = blog.CategoryMedical
	ivfPost := s.createPost(ctx, ivf)

	other := newPostInput(fmt.Sprintf("travel-tips-%d", gofakeit.Number(1000, 9999)), true)
	other.TitleZH = "出行小贴士"
	other.ContentZH = "签证与住宿"
	other.ExcerptZH = "出行准备"
	otherPost := s.createPost(ctx, other)

	found := s.getPosts(ctx, "/blog/posts/search?q="+url.QueryEscape("试管"))
	assert.True(s.T(), containsSlug(found.Posts, ivfPost.Slug))
	assert.False(s.T(), containsSlug(found.Posts, otherPost.Slug))
	assert.Equal(s.T(), len(found.Posts), found.Total)

	byCategory := s.getPosts(ctx, "/blog/posts/category/"+blog.CategoryMedical)
	assert.True(s.T(), containsSlug(byCategory.Posts, ivfPost.Slug))
	assert.False(s.T(), containsSlug(byCategory.Posts, otherPost.Slug))

	resp := s.doRequest(ctx, "GET", "/blog/categories", nil, false)
	defer resp.Body.Close()
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)
	var categories []string
	require.NoError(s.T(), json.NewDecoder(resp.Body).Decode(&categories))
	assert.Contains(s.T(), categories, blog.CategoryMedical)
	assert.Contains(s.T(), categories, blog.CategoryGuide)
}

func (s *IntegrationTestSuite) TestBlog_Authors() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp := s.doRequest(ctx, "GET", "/blog/authors", nil, false)
	defer resp.Body.Close()
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)
	var authors []blog.Author
	require.NoError(s.T(), json.NewDecoder(resp.Body).Decode(&authors))
	assert.GreaterOrEqual(s.T(), len(authors), 3)

	// an author with posts cannot be removed
	in := newPostInput(fmt.Sprintf("by-zhang-%d", gofakeit.Number(1000, 9999)), true)
	in.AuthorID = authorZhang
	s.createPost(ctx, in)

	inUseResp := s.doRequest(ctx, "DELETE", "/blog/admin/authors/"+authorZhang, nil, true)
	inUseResp.Body.Close()
	assert.Equal(s.T(), http.StatusConflict, inUseResp.StatusCode)

	// a fresh author can be created, renamed and removed
	createResp := s.doRequest(ctx, "POST", "/blog/admin/authors", blog.AuthorInput{
		Name:  gofakeit.Name(),
		BioEN: gofakeit.JobTitle(),
	}, true)
	defer createResp.Body.Close()
	require.Equal(s.T(), http.StatusCreated, createResp.StatusCode)
	var author blog.Author
	require.NoError(s.T(), json.NewDecoder(createResp.Body).Decode(&author))
	require.NotEmpty(s.T(), author.ID)

	updResp := s.doRequest(ctx, "PUT", "/blog/admin/authors/"+author.ID, blog.AuthorInput{Name: "Renamed"}, true)
	defer updResp.Body.Close()
	require.Equal(s.T(), http.StatusOK, updResp.StatusCode)
	var renamed blog.Author
	require.NoError(s.T(), json.NewDecoder(updResp.Body).Decode(&renamed))
	assert.Equal(s.T(), "Renamed", renamed.Name)

	delResp := s.doRequest(ctx, "DELETE", "/blog/admin/authors/"+author.ID, nil, true)
	delResp.Body.Close()
	assert.Equal(s.T(), http.StatusOK, delResp.StatusCode)

	// fixture check through a plain sql connection
	var count int
	require.NoError(s.T(),
		s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM blog_authors WHERE id = $1", author.ID).Scan(&count),
	)
	assert.Zero(s.T(), count)
}

func (s *IntegrationTestSuite) TestBlog_AdminRequiresKey() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp := s.doRequest(ctx, "POST", "/blog/admin/posts", newPostInput("no-key", true), false)
	resp.Body.Close()
	assert.Equal(s.T(), http.StatusUnauthorized, resp.StatusCode)

	invalid := newPostInput("", true)
	invalid.TitleEN = ""
	badResp := s.doRequest(ctx, "POST", "/blog/admin/posts", invalid, true)
	badResp.Body.Close()
	assert.Equal(s.T(), http.StatusBadRequest, badResp.StatusCode)
}
