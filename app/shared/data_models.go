package shared

import "time"

type User struct {
	Id        int64     `json:"id"`
	Email     string    `json:"email"`
	Confirmed bool      `json:"confirmed"`
	CreatedAt time.Time `json:"created_at"`
}

type Post struct {
	Id        int64     `json:"id"`
	Body      string    `json:"body"`
	UserId    int64     `json:"user_id"`
	ImageUrl  *string   `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

type PostWithLikes struct {
	Post
	Likes int `json:"likes"`
}

type Comment struct {
	Id        int64     `json:"id"`
	Body      string    `json:"body"`
	PostId    int64     `json:"post_id"`
	UserId    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Like struct {
	Id        int64     `json:"id"`
	PostId    int64     `json:"post_id"`
	UserId    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type PostSorting string

const (
	PostSortingNew       PostSorting = "new"
	PostSortingOld       PostSorting = "old"
	PostSortingMostLikes PostSorting = "most_likes"
)

var PostSortings = []PostSorting{PostSortingNew, PostSortingOld, PostSortingMostLikes}

func ParsePostSorting(s string) (PostSorting, bool) {
	if s == "" {
		return PostSortingNew, true
	}
	for _, sorting := range PostSortings {
		if string(sorting) == s {
			return sorting, true
		}
	}
	return "", false
}
