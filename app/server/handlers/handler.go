package handlers

import (
	"socialmedia/app/server/auth"
	"socialmedia/app/server/cache"
	"socialmedia/app/server/db"
	"socialmedia/app/server/storage"
	"socialmedia/app/server/tasks"
)

const uploadChunkSize = 1024 * 1024

// Handler carries everything the HTTP handlers depend on.
type Handler struct {
	Store  db.Store
	Issuer *auth.Issuer
	Queue  *tasks.Queue
	Runner *tasks.Runner
	Bucket storage.Bucket
	Cache  cache.FeedCache

	PublicUrl        string
	DefaultPrompt    string
	MaxUploadBytes   int64
	UploadImagesOnly bool
}
