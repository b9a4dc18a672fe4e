package db

import (
	"time"

	shared "socialmedia/app/shared"
)

// The models below are server-side. Each has a ToApi() method that converts it
// to the wire model in app/shared so server-only fields (password hashes)
// never leak to clients.

type User struct {
	Id           int64     `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Confirmed    bool      `db:"confirmed"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (user *User) ToApi() *shared.User {
	return &shared.User{
		Id:        user.Id,
		Email:     user.Email,
		Confirmed: user.Confirmed,
		CreatedAt: user.CreatedAt,
	}
}

type Post struct {
	Id        int64     `db:"id"`
	Body      string    `db:"body"`
	UserId    int64     `db:"user_id"`
	ImageUrl  *string   `db:"image_url"`
	CreatedAt time.Time `db:"created_at"`
}

func (post *Post) ToApi() *shared.Post {
	return &shared.Post{
		Id:        post.Id,
		Body:      post.Body,
		UserId:    post.UserId,
		ImageUrl:  post.ImageUrl,
		CreatedAt: post.CreatedAt,
	}
}

type PostWithLikes struct {
	Post
	Likes int `db:"likes"`
}

func (p *PostWithLikes) ToApi() *shared.PostWithLikes {
	return &shared.PostWithLikes{
		Post:  *p.Post.ToApi(),
		Likes: p.Likes,
	}
}

type Comment struct {
	Id        int64     `db:"id"`
	Body      string    `db:"body"`
	PostId    int64     `db:"post_id"`
	UserId    int64     `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
}

func (comment *Comment) ToApi() *shared.Comment {
	return &shared.Comment{
		Id:        comment.Id,
		Body:      comment.Body,
		PostId:    comment.PostId,
		UserId:    comment.UserId,
		CreatedAt: comment.CreatedAt,
	}
}

type Like struct {
	Id        int64     `db:"id"`
	PostId    int64     `db:"post_id"`
	UserId    int64     `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
}

func (like *Like) ToApi() *shared.Like {
	return &shared.Like{
		Id:        like.Id,
		PostId:    like.PostId,
		UserId:    like.UserId,
		CreatedAt: like.CreatedAt,
	}
}
