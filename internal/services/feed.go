package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"commfeed/internal/models"
	"commfeed/internal/utils"

	"go.uber.org/zap"
)

// DefaultCommunity labels posts created without an explicit community.
const DefaultCommunity = "Tech Enthusiasts"

// DocumentStore loads and saves the whole feed document.
type DocumentStore interface {
	Load(ctx context.Context) (*models.Document, error)
	Save(ctx context.Context, doc *models.Document) error
}

// FeedService is the only mutation surface over the document. Each mutation loads the
// document, changes one post and saves the document back.
type FeedService struct {
	store  DocumentStore
	ids    IDGenerator
	now    func() time.Time
	logger *zap.Logger

	// serializes load-modify-save within this process
	mu sync.Mutex
}

type Option func(*FeedService)

func WithIDGenerator(ids IDGenerator) Option {
	return func(s *FeedService) { s.ids = ids }
}

func WithClock(now func() time.Time) Option {
	return func(s *FeedService) { s.now = now }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *FeedService) { s.logger = logger }
}

func NewFeedService(store DocumentStore, opts ...Option) *FeedService {
	s := &FeedService{
		store:  store,
		ids:    UUIDGenerator{},
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PostInput is what a caller submits to create a post.
type PostInput struct {
	Body      string `json:"content" form:"content"`
	Community string `json:"community" form:"community"`
}

// CreatePost prepends a new post by author and returns it.
func (s *FeedService) CreatePost(ctx context.Context, author models.User, in PostInput) (*models.Post, error) {
	body := utils.SanitizePostHTML(in.Body)
	if !utils.HasVisibleContent(body) {
		return nil, &ValidationError{Field: "content", Message: "post content is empty"}
	}
	community := strings.TrimSpace(in.Community)
	if community == "" {
		community = DefaultCommunity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := doc.Community(community); !ok {
		return nil, &ValidationError{Field: "community", Message: fmt.Sprintf("unknown community %q", community)}
	}

	post := models.Post{
		ID:        s.ids.NewID(),
		Author:    author.Snapshot(),
		Content:   body,
		Community: community,
		Timestamp: s.timestamp(),
		Reactions: 0,
		Comments:  []models.Comment{},
	}
	doc.Posts = append([]models.Post{post}, doc.Posts...)

	if err := s.store.Save(ctx, doc); err != nil {
		return nil, err
	}
	s.logger.Info("Post created",
		zap.String("post_id", post.ID),
		zap.String("author", post.Author.Name),
		zap.String("community", post.Community))

	out := post.Clone()
	return &out, nil
}

// AddReaction increments the reaction counter of the post by one.
func (s *FeedService) AddReaction(ctx context.Context, postID string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	i := doc.PostIndex(postID)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrPostNotFound, postID)
	}
	doc.Posts[i].Reactions++

	if err := s.store.Save(ctx, doc); err != nil {
		return nil, err
	}
	s.logger.Debug("Reaction added", zap.String("post_id", postID), zap.Int("reactions", doc.Posts[i].Reactions))

	out := doc.Posts[i].Clone()
	return &out, nil
}

// AddComment appends a comment by author to the post and returns the post with all its comments.
func (s *FeedService) AddComment(ctx context.Context, postID string, author models.User, text string) (*models.Post, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &ValidationError{Field: "content", Message: "comment is empty"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	i := doc.PostIndex(postID)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrPostNotFound, postID)
	}

	comment := models.Comment{
		ID:        s.ids.NewID(),
		Author:    author.Snapshot(),
		Content:   text,
		Timestamp: s.timestamp(),
	}
	doc.Posts[i].Comments = append(doc.Posts[i].Comments, comment)

	if err := s.store.Save(ctx, doc); err != nil {
		return nil, err
	}
	s.logger.Info("Comment added", zap.String("post_id", postID), zap.String("comment_id", comment.ID))

	out := doc.Posts[i].Clone()
	return &out, nil
}

type Order string

const (
	OrderNew Order = "new"
	OrderTop Order = "top"
)

type ListOptions struct {
	Order     Order
	Community string // empty means every community
}

// ListPosts returns posts newest first, or by engagement score for OrderTop.
func (s *FeedService) ListPosts(ctx context.Context, opts ListOptions) ([]models.Post, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	posts := make([]models.Post, 0, len(doc.Posts))
	for _, p := range doc.Posts {
		if opts.Community != "" && p.Community != opts.Community {
			continue
		}
		posts = append(posts, p.Clone())
	}

	if opts.Order == OrderTop {
		now := s.now()
		scores := make(map[string]float64, len(posts))
		for _, p := range posts {
			scores[p.ID] = utils.CalculateScore(now.Sub(p.Timestamp), p.Reactions, len(p.Comments))
		}
		sort.SliceStable(posts, func(i, j int) bool {
			return scores[posts[i].ID] > scores[posts[j].ID]
		})
	}
	return posts, nil
}

func (s *FeedService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	post, _, err := s.GetPostRevision(ctx, postID)
	return post, err
}

// GetPostRevision returns the post together with the revision of the document it was read from.
func (s *FeedService) GetPostRevision(ctx context.Context, postID string) (*models.Post, int64, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, 0, err
	}
	i := doc.PostIndex(postID)
	if i < 0 {
		return nil, 0, fmt.Errorf("%w: %s", ErrPostNotFound, postID)
	}
	out := doc.Posts[i].Clone()
	return &out, doc.Revision, nil
}

// SharePost builds the share link for an existing post.
func (s *FeedService) SharePost(ctx context.Context, baseURL, postID string) (ShareLink, error) {
	if _, err := s.GetPost(ctx, postID); err != nil {
		return ShareLink{}, err
	}
	return BuildShareLink(baseURL, postID)
}

func (s *FeedService) ListCommunities(ctx context.Context) ([]models.Community, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Communities, nil
}

func (s *FeedService) ListUsers(ctx context.Context) ([]models.User, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Users, nil
}

func (s *FeedService) FindUser(ctx context.Context, userID string) (*models.User, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	u, ok := doc.User(userID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}
	return &u, nil
}

func (s *FeedService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}
