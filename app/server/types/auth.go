package types

import "socialmedia/app/server/db"

type ServerAuth struct {
	User  *db.User
	Token string
}
