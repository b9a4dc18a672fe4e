package db

import (
	"context"
	"errors"

	shared "socialmedia/app/shared"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

// Store is the persistence boundary for handlers and background tasks.
// Lookups return (nil, nil) when the row doesn't exist.
type Store interface {
	CreateUser(ctx context.Context, email, passwordHash string) (*User, error)
	GetUser(ctx context.Context, id int64) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	ConfirmUser(ctx context.Context, email string) error
	DeleteUser(ctx context.Context, id int64) error

	CreatePost(ctx context.Context, post *Post) error
	GetPost(ctx context.Context, id int64) (*Post, error)
	GetPostWithLikes(ctx context.Context, id int64) (*PostWithLikes, error)
	ListPostsWithLikes(ctx context.Context, sorting shared.PostSorting) ([]*PostWithLikes, error)
	SetPostImageUrl(ctx context.Context, postId int64, url string) error

	CreateComment(ctx context.Context, comment *Comment) error
	ListComments(ctx context.Context, postId int64) ([]*Comment, error)

	CreateLike(ctx context.Context, like *Like) error

	Close() error
}
