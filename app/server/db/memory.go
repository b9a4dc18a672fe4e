package db

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	shared "socialmedia/app/shared"
)

// MemoryStore is an in-process Store used for tests and local development.
type MemoryStore struct {
	mu sync.RWMutex

	users    map[int64]*User
	posts    map[int64]*Post
	comments []*Comment
	likes    []*Like

	nextUserId    int64
	nextPostId    int64
	nextCommentId int64
	nextLikeId    int64
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: map[int64]*User{},
		posts: map[int64]*Post{},
	}
}

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) CreateUser(ctx context.Context, email, passwordHash string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return nil, fmt.Errorf("user already exists for email %s: %w", email, ErrDuplicate)
		}
	}

	s.nextUserId++
	now := time.Now().UTC()
	user := &User{
		Id:           s.nextUserId,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.users[user.Id] = user

	cp := *user
	return &cp, nil
}

func (s *MemoryStore) GetUser(ctx context.Context, id int64) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) ConfirmUser(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			u.Confirmed = true
			u.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return fmt.Errorf("user %s: %w", email, ErrNotFound)
}

func (s *MemoryStore) DeleteUser(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	delete(s.users, id)
	return nil
}

func (s *MemoryStore) CreatePost(ctx context.Context, post *Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[post.UserId]; !ok {
		return fmt.Errorf("user %d: %w", post.UserId, ErrNotFound)
	}

	s.nextPostId++
	post.Id = s.nextPostId
	post.CreatedAt = time.Now().UTC()

	cp := *post
	s.posts[post.Id] = &cp
	return nil
}

func (s *MemoryStore) GetPost(ctx context.Context, id int64) (*Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (s *MemoryStore) likesFor(postId int64) int {
	n := 0
	for _, l := range s.likes {
		if l.PostId == postId {
			n++
		}
	}
	return n
}

func (s *MemoryStore) GetPostWithLikes(ctx context.Context, id int64) (*PostWithLikes, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, nil
	}
	return &PostWithLikes{Post: *p, Likes: s.likesFor(id)}, nil
}

func (s *MemoryStore) ListPostsWithLikes(ctx context.Context, sorting shared.PostSorting) ([]*PostWithLikes, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]*PostWithLikes, 0, len(s.posts))
	for _, p := range s.posts {
		res = append(res, &PostWithLikes{Post: *p, Likes: s.likesFor(p.Id)})
	}

	switch sorting {
	case shared.PostSortingNew, "":
		sort.Slice(res, func(i, j int) bool { return res[i].Id > res[j].Id })
	case shared.PostSortingOld:
		sort.Slice(res, func(i, j int) bool { return res[i].Id < res[j].Id })
	case shared.PostSortingMostLikes:
		sort.Slice(res, func(i, j int) bool {
			if res[i].Likes != res[j].Likes {
				return res[i].Likes > res[j].Likes
			}
			return res[i].Id > res[j].Id
		})
	default:
		return nil, fmt.Errorf("unknown sorting: %s", sorting)
	}

	return res, nil
}

func (s *MemoryStore) SetPostImageUrl(ctx context.Context, postId int64, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[postId]
	if !ok {
		return fmt.Errorf("post %d: %w", postId, ErrNotFound)
	}
	p.ImageUrl = &url
	return nil
}

func (s *MemoryStore) CreateComment(ctx context.Context, comment *Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[comment.PostId]; !ok {
		return fmt.Errorf("post %d: %w", comment.PostId, ErrNotFound)
	}

	s.nextCommentId++
	comment.Id = s.nextCommentId
	comment.CreatedAt = time.Now().UTC()

	cp := *comment
	s.comments = append(s.comments, &cp)
	return nil
}

func (s *MemoryStore) ListComments(ctx context.Context, postId int64) ([]*Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := []*Comment{}
	for _, c := range s.comments {
		if c.PostId == postId {
			cp := *c
			res = append(res, &cp)
		}
	}
	return res, nil
}

func (s *MemoryStore) CreateLike(ctx context.Context, like *Like) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[like.PostId]; !ok {
		return fmt.Errorf("post %d: %w", like.PostId, ErrNotFound)
	}
	for _, l := range s.likes {
		if l.PostId == like.PostId && l.UserId == like.UserId {
			return fmt.Errorf("like for post %d: %w", like.PostId, ErrDuplicate)
		}
	}

	s.nextLikeId++
	like.Id = s.nextLikeId
	like.CreatedAt = time.Now().UTC()

	cp := *like
	s.likes = append(s.likes, &cp)
	return nil
}
