package feed

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/smartshoplabs/smartshop-backend/pkg/errors"
)

// Post is a feed entry with its like state and comment thread.
type Post struct {
	ID       string    `json:"id"`
	Author   string    `json:"author"`
	Body     string    `json:"body"`
	Likes    int       `json:"likes"`
	Liked    bool      `json:"liked"`
	Comments []Comment `json:"comments"`
}

// Comment is one reply on a post.
type Comment struct {
	ID       string    `json:"id"`
	Body     string    `json:"body"`
	PostedAt time.Time `json:"posted_at"`
}

// Service holds the session's feed state. Likes toggle per session and
// never push the count below zero.
type Service struct {
	mu    sync.Mutex
	posts map[string]*Post
	order []string
	now   func() time.Time
}

// NewService seeds the demo feed.
func NewService() *Service {
	s := &Service{posts: map[string]*Post{}, now: time.Now}
	s.seed(Post{
		ID:     "post-1",
		Author: "Ethereal",
		Body:   "Just picked up the new canvas tote, quality is great for the price.",
		Likes:  12,
	})
	return s
}

func (s *Service) seed(p Post) {
	post := p
	if post.Comments == nil {
		post.Comments = []Comment{}
	}
	s.posts[post.ID] = &post
	s.order = append(s.order, post.ID)
}

// Posts returns the feed in seed order.
func (s *Service) Posts() []Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Post, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.copyLocked(id))
	}
	return out
}

// Post returns one post by id.
func (s *Service) Post(id string) (Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return Post{}, pkgerrors.New(pkgerrors.CodeNotFound, "post not found")
	}
	return s.copyLocked(id), nil
}

// ToggleLike flips the session's like on the post and adjusts the count.
func (s *Service) ToggleLike(id string) (Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[id]
	if !ok {
		return Post{}, pkgerrors.New(pkgerrors.CodeNotFound, "post not found")
	}
	if post.Liked {
		post.Liked = false
		if post.Likes > 0 {
			post.Likes--
		}
	} else {
		post.Liked = true
		post.Likes++
	}
	return s.copyLocked(id), nil
}

// AddComment appends a trimmed, non-blank comment to the post's thread.
func (s *Service) AddComment(id, body string) (Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return Comment{}, pkgerrors.New(pkgerrors.CodeValidation, "comment body is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[id]
	if !ok {
		return Comment{}, pkgerrors.New(pkgerrors.CodeNotFound, "post not found")
	}
	comment := Comment{ID: uuid.NewString(), Body: body, PostedAt: s.now().UTC()}
	post.Comments = append(post.Comments, comment)
	return comment, nil
}

// ListComments returns the post's comment thread in post order.
func (s *Service) ListComments(id string) ([]Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "post not found")
	}
	out := make([]Comment, len(post.Comments))
	copy(out, post.Comments)
	return out, nil
}

func (s *Service) copyLocked(id string) Post {
	post := *s.posts[id]
	comments := make([]Comment, len(post.Comments))
	copy(comments, post.Comments)
	post.Comments = comments
	return post
}
