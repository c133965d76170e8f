package blog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/kgzivf/blogbackend/internal/transport"
	"github.com/kgzivf/blogbackend/pkg"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=blog_test

type blogService interface {
	GetAllPosts(ctx context.Context, limit int) ([]Post, error)
	GetAdminPosts(ctx context.Context, limit int) ([]Post, error)
	GetPostBySlug(ctx context.Context, slug string) (*Post, error)
	GetPostByID(ctx context.Context, id string) (*Post, error)
	GetPostsByCategory(ctx context.Context, category string, limit int) ([]Post, error)
	SearchPosts(ctx context.Context, term string, lang Language, limit int) ([]Post, error)
	GetCategories(ctx context.Context) ([]string, error)
	CreatePost(ctx context.Context, in PostInput) (*Post, error)
	UpdatePost(ctx context.Context, id string, patch PostPatch) (*Post, error)
	DeletePost(ctx context.Context, id string) error
	ListAuthors(ctx context.Context) ([]Author, error)
	CreateAuthor(ctx context.Context, in AuthorInput) (*Author, error)
	UpdateAuthor(ctx context.Context, id string, in AuthorInput) (*Author, error)
	DeleteAuthor(ctx context.Context, id string) error
}

type PostsResponse struct {
	Posts []Post `json:"posts"`
	Total int    `json:"total"`
}

type Handler struct {
	service blogService
}

func NewHandler(service blogService) *Handler {
	return &Handler{
		service: service,
	}
}

// AdminPathPrefix is the prefix of the routes that require the admin key.
const AdminPathPrefix = "/blog/admin/"

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/blog/posts", handler.handleAllPosts).Methods("GET").Name("blog-posts")
	router.HandleFunc("/blog/posts/search", handler.handleSearch).Methods("GET").Name("blog-posts-search")
	router.HandleFunc("/blog/posts/category/{category}", handler.handleByCategory).Methods("GET").Name("blog-posts-category")
	router.HandleFunc("/blog/posts/slug/{slug}", handler.handleBySlug).Methods("GET").Name("blog-post-slug")
	router.HandleFunc("/blog/categories", handler.handleCategories).Methods("GET").Name("blog-categories")
	router.HandleFunc("/blog/authors", handler.handleListAuthors).Methods("GET").Name("blog-authors")

	router.HandleFunc("/blog/admin/posts", handler.handleAdminPosts).Methods("GET").Name("admin-posts")
	router.HandleFunc("/blog/admin/posts", handler.handleCreatePost).Methods("POST", "OPTIONS").Name("admin-create-post")
	router.HandleFunc("/blog/admin/posts/{id}", handler.handleGetPost).Methods("GET").Name("admin-get-post")
	router.HandleFunc("/blog/admin/posts/{id}", handler.handleUpdatePost).Methods("PUT", "OPTIONS").Name("admin-update-post")
	router.HandleFunc("/blog/admin/posts/{id}", handler.handleDeletePost).Methods("DELETE", "OPTIONS").Name("admin-delete-post")
	router.HandleFunc("/blog/admin/authors", handler.handleCreateAuthor).Methods("POST", "OPTIONS").Name("admin-create-author")
	router.HandleFunc("/blog/admin/authors/{id}", handler.handleUpdateAuthor).Methods("PUT", "OPTIONS").Name("admin-update-author")
	router.HandleFunc("/blog/admin/authors/{id}", handler.handleDeleteAuthor).Methods("DELETE", "OPTIONS").Name("admin-delete-author")
}

func readLimit(r *http.Request) (int, bool) {
	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 0 {
		return 0, false
	}
	return limit, true
}

// validID accepts UUIDs (blog tables) and positive integers (third-party
// API ids).
func validID(id string) bool {
	if _, err := uuid.Parse(id); err == nil {
		return true
	}
	n, err := strconv.Atoi(id)
	return err == nil && n > 0
}

func readID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return "", false
	}
	if !validID(id) {
		http.Error(w, "error, invalid id", http.StatusBadRequest)
		return "", false
	}
	return id, true
}

func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, ErrSlugTaken), errors.Is(err, ErrAuthorInUse):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case errors.Is(err, ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
		return
	case errors.Is(err, ErrNotSupported):
		http.Error(w, err.Error(), http.StatusNotImplemented)
		return
	}

	log.Errorf("%s: %s", op, err)
	if errors.Is(err, transport.ErrAllRoutesFailed) || errors.Is(err, ErrUpstream) {
		http.Error(w, op+" failed, backend unavailable", http.StatusBadGateway)
		return
	}
	http.Error(w, op+" failed", http.StatusInternalServerError)
}

func writePosts(w http.ResponseWriter, posts []Post) {
	if posts == nil {
		posts = []Post{}
	}
	pkg.WriteJSON(w, PostsResponse{Posts: posts, Total: len(posts)}, http.StatusOK)
}

func (handler *Handler) handleAllPosts(w http.ResponseWriter, r *http.Request) {
	limit, ok := readLimit(r)
	if !ok {
		http.Error(w, "invalid limit", http.StatusBadRequest)
		return
	}

	posts, err := handler.service.GetAllPosts(r.Context(), limit)
	if err != nil {
		writeServiceError(w, "get posts", err)
		return
	}
	writePosts(w, posts)
}

func (handler *Handler) handleAdminPosts(w http.ResponseWriter, r *http.Request) {
	limit, ok := readLimit(r)
	if !ok {
		http.Error(w, "invalid limit", http.StatusBadRequest)
		return
	}

	posts, err := handler.service.GetAdminPosts(r.Context(), limit)
	if err != nil {
		writeServiceError(w, "get admin posts", err)
		return
	}
	writePosts(w, posts)
}

func (handler *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	limit, ok := readLimit(r)
	if !ok {
		http.Error(w, "invalid limit", http.StatusBadRequest)
		return
	}
	term := r.URL.Query().Get("q")
	lang := ParseLanguage(r.URL.Query().Get("lang"))

	log.Tracef("search posts [%s] lang %s", term, lang)

	posts, err := handler.service.SearchPosts(r.Context(), term, lang, limit)
	if err != nil {
		writeServiceError(w, "search posts", err)
		return
	}
	writePosts(w, posts)
}

func (handler *Handler) handleByCategory(w http.ResponseWriter, r *http.Request) {
	limit, ok := readLimit(r)
	if !ok {
		http.Error(w, "invalid limit", http.StatusBadRequest)
		return
	}
	category := mux.Vars(r)["category"]

	posts, err := handler.service.GetPostsByCategory(r.Context(), category, limit)
	if err != nil {
		writeServiceError(w, "get posts by category", err)
		return
	}
	writePosts(w, posts)
}

func (handler *Handler) handleBySlug(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	post, err := handler.service.GetPostBySlug(r.Context(), slug)
	if err != nil {
		writeServiceError(w, "get post", err)
		return
	}
	// drafts are only visible through the admin routes
	if post == nil || !post.Published {
		http.Error(w, "post not found", http.StatusNotFound)
		return
	}
	pkg.WriteJSON(w, post, http.StatusOK)
}

func (handler *Handler) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := handler.service.GetCategories(r.Context())
	if err != nil {
		writeServiceError(w, "get categories", err)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	pkg.WriteJSON(w, categories, http.StatusOK)
}

func (handler *Handler) handleListAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := handler.service.ListAuthors(r.Context())
	if err != nil {
		writeServiceError(w, "list authors", err)
		return
	}
	if authors == nil {
		authors = []Author{}
	}
	pkg.WriteJSON(w, authors, http.StatusOK)
}

func (handler *Handler) handleGetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := readID(w, r)
	if !ok {
		return
	}

	post, err := handler.service.GetPostByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, "get post", err)
		return
	}
	if post == nil {
		http.Error(w, "post not found", http.StatusNotFound)
		return
	}
	pkg.WriteJSON(w, post, http.StatusOK)
}

func (handler *Handler) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var in PostInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		log.Errorf("create post, unmarshal json: %s", err)
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}

	post, err := handler.service.CreatePost(r.Context(), in)
	if err != nil {
		writeServiceError(w, "create post", err)
		return
	}

	log.Tracef("new blog post %s: [%s] added", post.ID, post.Slug)
	pkg.WriteJSON(w, post, http.StatusCreated)
}

func (handler *Handler) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := readID(w, r)
	if !ok {
		return
	}

	var patch PostPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Errorf("update post, unmarshal json: %s", err)
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}

	post, err := handler.service.UpdatePost(r.Context(), id, patch)
	if err != nil {
		writeServiceError(w, "update post", err)
		return
	}
	pkg.WriteJSON(w, post, http.StatusOK)
}

func (handler *Handler) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := readID(w, r)
	if !ok {
		return
	}

	if err := handler.service.DeletePost(r.Context(), id); err != nil {
		writeServiceError(w, "delete post", err)
		return
	}
	pkg.WriteJSON(w, map[string]string{"deleted": id}, http.StatusOK)
}

func (handler *Handler) handleCreateAuthor(w http.ResponseWriter, r *http.Request) {
	var in AuthorInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		log.Errorf("create author, unmarshal json: %s", err)
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}

	author, err := handler.service.CreateAuthor(r.Context(), in)
	if err != nil {
		writeServiceError(w, "create author", err)
		return
	}
	pkg.WriteJSON(w, author, http.StatusCreated)
}

func (handler *Handler) handleUpdateAuthor(w http.ResponseWriter, r *http.Request) {
	id, ok := readID(w, r)
	if !ok {
		return
	}

	var in AuthorInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		log.Errorf("update author, unmarshal json: %s", err)
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}

	author, err := handler.service.UpdateAuthor(r.Context(), id, in)
	if err != nil {
		writeServiceError(w, "update author", err)
		return
	}
	pkg.WriteJSON(w, author, http.StatusOK)
}

func (handler *Handler) handleDeleteAuthor(w http.ResponseWriter, r *http.Request) {
	id, ok := readID(w, r)
	if !ok {
		return
	}

	if err := handler.service.DeleteAuthor(r.Context(), id); err != nil {
		writeServiceError(w, "delete author", err)
		return
	}
	pkg.WriteJSON(w, map[string]string{"deleted": id}, http.StatusOK)
}
