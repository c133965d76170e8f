package blog_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kgzivf/blogbackend/internal/blog"
	"github.com/kgzivf/blogbackend/internal/transport"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testPostID = "7c9e6679-7425-40de-944b-e07fc1f90ae7"

func newTestRouter(t *testing.T) (*mux.Router, *MockblogService) {
	ctrl := gomock.NewController(t)
	mockService := NewMockblogService(ctrl)
	r := mux.NewRouter()
	blog.NewHandler(mockService).SetupRoutes(r)
	return r, mockService
}

func TestHandler_SetupRoutes(t *testing.T) {
	r, _ := newTestRouter(t)

	for caseName, route := range map[string]struct {
		name   string
		path   string
		method string
	}{
		"posts":            {name: "blog-posts", path: "/blog/posts", method: "GET"},
		"search":           {name: "blog-posts-search", path: "/blog/posts/search", method: "GET"},
		"category":         {name: "blog-posts-category", path: "/blog/posts/category/medical", method: "GET"},
		"slug":             {name: "blog-post-slug", path: "/blog/posts/slug/ivf-guide", method: "GET"},
		"categories":       {name: "blog-categories", path: "/blog/categories", method: "GET"},
		"authors":          {name: "blog-authors", path: "/blog/authors", method: "GET"},
		"admin-posts":      {name: "admin-posts", path: "/blog/admin/posts", method: "GET"},
		"admin-create":     {name: "admin-create-post", path: "/blog/admin/posts", method: "POST"},
		"admin-create-opt": {name: "admin-create-post", path: "/blog/admin/posts", method: "OPTIONS"},
		"admin-get":        {name: "admin-get-post", path: "/blog/admin/posts/" + testPostID, method: "GET"},
		"admin-update":     {name: "admin-update-post", path: "/blog/admin/posts/12", method: "PUT"},
		"admin-delete":     {name: "admin-delete-post", path: "/blog/admin/posts/12", method: "DELETE"},
		"author-create":    {name: "admin-create-author", path: "/blog/admin/authors", method: "POST"},
		"author-update":    {name: "admin-update-author", path: "/blog/admin/authors/" + testPostID, method: "PUT"},
		"author-delete":    {name: "admin-delete-author", path: "/blog/admin/authors/" + testPostID, method: "DELETE"},
	} {
		t.Run(caseName, func(t *testing.T) {
			req, err := http.NewRequest(route.method, route.path, nil)
			require.NoError(t, err)

			routeMatch := &mux.RouteMatch{}
			require.NotNil(t, r.Get(route.name), route.name)
			assert.True(t, r.Get(route.name).Match(req, routeMatch), caseName)
		})
	}
}

func TestHandler_AllPosts(t *testing.T) {
	r, mockService := newTestRouter(t)

	mockService.EXPECT().GetAllPosts(gomock.Any(), 5).Return([]blog.Post{
		{ID: "1", Slug: "a", Published: true},
		{ID: "2", Slug: "b", Published: true},
	}, nil)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/blog/posts?limit=5", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp blog.PostsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, "a", resp.Posts[0].Slug)
}

func TestHandler_AllPosts_EmptyIsArray(t *testing.T) {
	r, mockService := newTestRouter(t)
	mockService.EXPECT().GetAllPosts(gomock.Any(), 0).Return(nil, nil)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/blog/posts", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"posts":[],"total":0}`, rr.Body.String())
}

func TestHandler_InvalidLimit(t *testing.T) {
	r, _ := newTestRouter(t)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/blog/posts?limit=abc", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_Search(t *testing.T) {
	r, mockService := newTestRouter(t)
	mockService.EXPECT().SearchPosts(gomock.Any(), "ivf", blog.LangEN, 0).Return([]blog.Post{{ID: "1"}}, nil)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/blog/posts/search?q=ivf&lang=en", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp blog.PostsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
}

func TestHandler_BySlug(t *testing.T) {
	r, mockService := newTestRouter(t)

	mockService.EXPECT().GetPostBySlug(gomock.Any(), "ivf-guide").Return(&blog.Post{ID: "1", Slug: "ivf-guide", Published: true}, nil)
	mockService.EXPECT().GetPostBySlug(gomock.Any(), "draft").Return(&blog.Post{ID: "2", Slug: "draft"}, nil)
	mockService.EXPECT().GetPostBySlug(gomock.Any(), "missing").Return(nil, nil)

	for slug, wantStatus := range map[string]int{
		"ivf-guide": http.StatusOK,
		"draft":     http.StatusNotFound,
		"missing":   http.StatusNotFound,
	} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest("GET", "/blog/posts/slug/"+slug, nil))
		assert.Equal(t, wantStatus, rr.Code, slug)
	}
}

func TestHandler_CreatePost(t *testing.T) {
	r, mockService := newTestRouter(t)
	in := validInput()

	mockService.EXPECT().
		CreatePost(gomock.Any(), in).
		Return(&blog.Post{ID: testPostID, Slug: "ivf-guide"}, nil)

	body, err := json.Marshal(in)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("POST", "/blog/admin/posts", bytes.NewReader(body)))
	require.Equal(t, http.StatusCreated, rr.Code)

	var post blog.Post
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &post))
	assert.Equal(t, testPostID, post.ID)
}

func TestHandler_CreatePost_InvalidJSON(t *testing.T) {
	r, _ := newTestRouter(t)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("POST", "/blog/admin/posts", bytes.NewBufferString("{nope")))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_ErrorMapping(t *testing.T) {
	for caseName, tc := range map[string]struct {
		err        error
		wantStatus int
	}{
		"validation":   {err: fmt.Errorf("%w: title_zh: cannot be blank", blog.ErrValidation), wantStatus: http.StatusBadRequest},
		"slug taken":   {err: fmt.Errorf("%w: ivf-guide", blog.ErrSlugTaken), wantStatus: http.StatusConflict},
		"not found":    {err: fmt.Errorf("update post x: %w", blog.ErrNotFound), wantStatus: http.StatusNotFound},
		"unsupported":  {err: blog.ErrNotSupported, wantStatus: http.StatusNotImplemented},
		"routes down":  {err: fmt.Errorf("%w: timeout", transport.ErrAllRoutesFailed), wantStatus: http.StatusBadGateway},
		"upstream api": {err: fmt.Errorf("%w: HTTP 503", blog.ErrUpstream), wantStatus: http.StatusBadGateway},
		"other":        {err: fmt.Errorf("boom"), wantStatus: http.StatusInternalServerError},
	} {
		t.Run(caseName, func(t *testing.T) {
			r, mockService := newTestRouter(t)
			mockService.EXPECT().UpdatePost(gomock.Any(), "12", gomock.Any()).Return(nil, tc.err)

			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest("PUT", "/blog/admin/posts/12", bytes.NewBufferString(`{"title_en":"x"}`)))
			assert.Equal(t, tc.wantStatus, rr.Code)
		})
	}
}

func TestHandler_InvalidID(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, path := range []string{
		"/blog/admin/posts/not-an-id",
		"/blog/admin/posts/0",
		"/blog/admin/posts/-4",
	} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest("DELETE", path, nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code, path)
	}
}

func TestHandler_DeleteAuthor_InUse(t *testing.T) {
	r, mockService := newTestRouter(t)
	mockService.EXPECT().
		DeleteAuthor(gomock.Any(), testPostID).
		Return(fmt.Errorf("%w: 2 posts", blog.ErrAuthorInUse))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("DELETE", "/blog/admin/authors/"+testPostID, nil))
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestHandler_CreateAuthor(t *testing.T) {
	r, mockService := newTestRouter(t)
	mockService.EXPECT().
		CreateAuthor(gomock.Any(), blog.AuthorInput{Name: "赵医生"}).
		Return(&blog.Author{ID: testPostID, Name: "赵医生"}, nil)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("POST", "/blog/admin/authors", bytes.NewBufferString(`{"name":"赵医生"}`)))
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), "赵医生")
}

func TestHandler_Categories(t *testing.T) {
	r, mockService := newTestRouter(t)
	mockService.EXPECT().GetCategories(gomock.Any()).Return(nil, nil)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/blog/categories", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}
