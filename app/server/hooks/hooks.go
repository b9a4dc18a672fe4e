package hooks

import (
	"sync"

	"socialmedia/app/server/db"
	shared "socialmedia/app/shared"
)

const (
	HealthCheck    = "health_check"
	CreateAccount  = "create_account"
	WillCreatePost = "will_create_post"
)

type HookParams struct {
	User *db.User
	Post *db.Post
}

type Hook func(params HookParams) *shared.ApiError

var (
	mu    sync.RWMutex
	hooks = make(map[string]Hook)
)

func RegisterHook(name string, hook Hook) {
	mu.Lock()
	defer mu.Unlock()
	hooks[name] = hook
}

func UnregisterHook(name string) {
	mu.Lock()
	defer mu.Unlock()
	delete(hooks, name)
}

func ExecHook(name string, params HookParams) *shared.ApiError {
	mu.RLock()
	hook, ok := hooks[name]
	mu.RUnlock()

	if !ok {
		return nil
	}
	return hook(params)
}
