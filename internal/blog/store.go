package blog

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/kgzivf/blogbackend/internal/query"
	"github.com/kgzivf/blogbackend/internal/transport"
	"github.com/kgzivf/blogbackend/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=store_mocks_test.go -package=blog_test

type postsStore interface {
	ListPosts(ctx context.Context, filter ListFilter) ([]Post, error)
	// GetPostBySlug returns nil, nil when no post has the slug.
	GetPostBySlug(ctx context.Context, slug string) (*Post, error)
	GetPostByID(ctx context.Context, id string) (*Post, error)
	SearchPosts(ctx context.Context, term string, lang Language, limit int) ([]Post, error)
	ListCategories(ctx context.Context) ([]string, error)
	InsertPost(ctx context.Context, in PostInput, slug string) (*Post, error)
	UpdatePost(ctx context.Context, id string, patch PostPatch) (*Post, error)
	DeletePost(ctx context.Context, id string) error

	ListAuthors(ctx context.Context) ([]Author, error)
	InsertAuthor(ctx context.Context, in AuthorInput) (*Author, error)
	UpdateAuthor(ctx context.Context, id string, in AuthorInput) (*Author, error)
	DeleteAuthor(ctx context.Context, id string) error
	CountPostsByAuthor(ctx context.Context, authorID string) (int, error)
}

// isUniqueViolation covers both the pgx error of the SQL backend and the
// PostgREST error body of the REST backend.
func isUniqueViolation(err error) bool {
	return pkg.IsUniqueViolationError(err) || hasRESTPgCode(err, "23505")
}

func isForeignKeyViolation(err error) bool {
	return pkg.IsForeignKeyViolationError(err) || hasRESTPgCode(err, "23503")
}

// isInvalidID means the id does not parse as the key column's type. Such a
// row cannot exist, so callers treat it as not found.
func isInvalidID(err error) bool {
	return pkg.IsInvalidTextRepresentationError(err) || hasRESTPgCode(err, "22P02")
}

func hasRESTPgCode(err error, code string) bool {
	var statusErr *transport.HTTPStatusError
	return errors.As(err, &statusErr) && statusErr.PgCode() == code
}

var authorColumns = []string{"id", "name", "bio_zh", "bio_en", "avatar_url"}

// QueryStore keeps posts and authors in the blog tables, reached through
// whichever executor backs the query client.
type QueryStore struct {
	db *query.Client
}

func NewQueryStore(db *query.Client) *QueryStore {
	return &QueryStore{db: db}
}

// postRow is a post as stored, with the author embedded under its table name.
type postRow struct {
	Post
	BlogAuthors *Author `json:"blog_authors"`
}

func (r postRow) toPost() Post {
	p := r.Post
	p.Author = r.BlogAuthors
	return p
}

func (s *QueryStore) posts() query.Builder {
	return s.db.From(TablePosts).Embed(TableAuthors, "author_id", authorColumns...)
}

func decodePosts(res *query.Result) ([]Post, error) {
	var rows []postRow
	if err := res.Decode(&rows); err != nil {
		return nil, err
	}
	posts := make([]Post, len(rows))
	for i, r := range rows {
		posts[i] = r.toPost()
	}
	return posts, nil
}

func decodePost(res *query.Result) (*Post, error) {
	var row postRow
	if err := res.DecodeOne(&row); err != nil {
		if errors.Is(err, query.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	p := row.toPost()
	return &p, nil
}

func (s *QueryStore) ListPosts(ctx context.Context, filter ListFilter) ([]Post, error) {
	b := s.posts().Order("created_at", false).Limit(filter.Limit)
	if filter.PublishedOnly {
		b = b.Eq("published", true)
	}
	if filter.Category != "" {
		b = b.Eq("category", filter.Category)
	}

	res, err := b.Execute(ctx)
	if err != nil {
		return nil, err
	}
	return decodePosts(res)
}

func (s *QueryStore) GetPostBySlug(ctx context.Context, slug string) (*Post, error) {
	res, err := s.posts().Eq("slug", slug).Single().Execute(ctx)
	if err != nil {
		return nil, err
	}
	return decodePost(res)
}

func (s *QueryStore) GetPostByID(ctx context.Context, id string) (*Post, error) {
	res, err := s.posts().Eq("id", id).Single().Execute(ctx)
	if err != nil {
		if isInvalidID(err) {
			return nil, nil
		}
		return nil, err
	}
	return decodePost(res)
}

func (s *QueryStore) SearchPosts(ctx context.Context, term string, lang Language, limit int) ([]Post, error) {
	pattern := query.Contains(term)
	res, err := s.posts().
		Eq("published", true).
		Or(
			query.ILike("title_"+string(lang), pattern),
			query.ILike("excerpt_"+string(lang), pattern),
		).
		Order("created_at", false).
		Limit(limit).
		Execute(ctx)
	if err != nil {
		return nil, err
	}
	return decodePosts(res)
}

func (s *QueryStore) ListCategories(ctx context.Context) ([]string, error) {
	res, err := s.db.From(TablePosts).Select("category").Eq("published", true).Execute(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	categories := []string{}
	for _, row := range res.Rows() {
		c, _ := row["category"].(string)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories, nil
}

func (s *QueryStore) InsertPost(ctx context.Context, in PostInput, slug string) (*Post, error) {
	values := query.Row{
		"title_zh":   in.TitleZH,
		"title_en":   in.TitleEN,
		"content_zh": in.ContentZH,
		"content_en": in.ContentEN,
		"excerpt_zh": in.ExcerptZH,
		"excerpt_en": in.ExcerptEN,
		"slug":       slug,
		"category":   in.Category,
		"published":  in.Published,
		"author_id":  in.AuthorID,
	}
	if in.ReadTime != nil {
		values["read_time"] = *in.ReadTime
	}
	if in.FeaturedImage != "" {
		values["featured_image"] = in.FeaturedImage
	}

	res, err := s.db.Insert(ctx, TablePosts, values)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", ErrSlugTaken, slug)
		}
		return nil, err
	}

	inserted, err := decodePost(res)
	if err != nil {
		return nil, err
	}
	if inserted == nil {
		return nil, errors.New("insert returned no row")
	}
	return inserted, nil
}

func patchValues(patch PostPatch) query.Row {
	values := query.Row{}
	set := func(col string, v *string) {
		if v != nil {
			values[col] = *v
		}
	}
	set("title_zh", patch.TitleZH)
	set("title_en", patch.TitleEN)
	set("content_zh", patch.ContentZH)
	set("content_en", patch.ContentEN)
	set("excerpt_zh", patch.ExcerptZH)
	set("excerpt_en", patch.ExcerptEN)
	set("category", patch.Category)
	set("featured_image", patch.FeaturedImage)
	set("author_id", patch.AuthorID)
	if patch.ReadTime != nil {
		values["read_time"] = *patch.ReadTime
	}
	if patch.Published != nil {
		values["published"] = *patch.Published
	}
	return values
}

func (s *QueryStore) UpdatePost(ctx context.Context, id string, patch PostPatch) (*Post, error) {
	res, err := s.db.Update(ctx, TablePosts, patchValues(patch), query.Eq("id", id))
	if err != nil {
		if isInvalidID(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	updated, err := decodePost(res)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	return updated, nil
}

func (s *QueryStore) DeletePost(ctx context.Context, id string) error {
	res, err := s.db.Delete(ctx, TablePosts, query.Eq("id", id))
	if err != nil {
		if isInvalidID(err) {
			return ErrNotFound
		}
		return err
	}
	if res.Len() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *QueryStore) ListAuthors(ctx context.Context) ([]Author, error) {
	res, err := s.db.From(TableAuthors).Order("name", true).Execute(ctx)
	if err != nil {
		return nil, err
	}
	var authors []Author
	if err := res.Decode(&authors); err != nil {
		return nil, err
	}
	return authors, nil
}

func authorValues(in AuthorInput) query.Row {
	return query.Row{
		"name":       in.Name,
		"bio_zh":     in.BioZH,
		"bio_en":     in.BioEN,
		"avatar_url": in.AvatarURL,
	}
}

func decodeAuthor(res *query.Result) (*Author, error) {
	var a Author
	if err := res.DecodeOne(&a); err != nil {
		if errors.Is(err, query.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (s *QueryStore) InsertAuthor(ctx context.Context, in AuthorInput) (*Author, error) {
	res, err := s.db.Insert(ctx, TableAuthors, authorValues(in))
	if err != nil {
		return nil, err
	}
	return decodeAuthor(res)
}

func (s *QueryStore) UpdateAuthor(ctx context.Context, id string, in AuthorInput) (*Author, error) {
	res, err := s.db.Update(ctx, TableAuthors, authorValues(in), query.Eq("id", id))
	if err != nil {
		if isInvalidID(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return decodeAuthor(res)
}

func (s *QueryStore) DeleteAuthor(ctx context.Context, id string) error {
	res, err := s.db.Delete(ctx, TableAuthors, query.Eq("id", id))
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrAuthorInUse
		}
		if isInvalidID(err) {
			return ErrNotFound
		}
		return err
	}
	if res.Len() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *QueryStore) CountPostsByAuthor(ctx context.Context, authorID string) (int, error) {
	res, err := s.db.From(TablePosts).Select("id").Eq("author_id", authorID).Execute(ctx)
	if err != nil {
		if isInvalidID(err) {
			return 0, nil
		}
		return 0, err
	}
	return res.Len(), nil
}
