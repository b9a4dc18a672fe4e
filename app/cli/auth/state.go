package auth

import (
	"encoding/json"
	"net/http"
	"os"

	"socialmedia/app/cli/fs"
	shared "socialmedia/app/shared"

	"github.com/pkg/errors"
)

var Current *shared.ClientAuth

// LoadCurrent reads the stored session. A missing file leaves Current nil.
func LoadCurrent() error {
	bytes, err := os.ReadFile(fs.HomeAuthPath)
	if err != nil {
		if os.IsNotExist(err) {
			Current = nil
			return nil
		}
		return errors.Wrap(err, "error reading auth.json")
	}

	var auth shared.ClientAuth
	err = json.Unmarshal(bytes, &auth)
	if err != nil {
		return errors.Wrap(err, "error unmarshalling auth.json")
	}

	Current = &auth
	return nil
}

func SetAuth(auth *shared.ClientAuth) error {
	bytes, err := json.Marshal(auth)
	if err != nil {
		return errors.Wrap(err, "error marshalling auth")
	}

	err = os.WriteFile(fs.HomeAuthPath, bytes, 0600)
	if err != nil {
		return errors.Wrap(err, "error writing auth.json")
	}

	Current = auth
	return nil
}

func ClearAuth() error {
	err := os.Remove(fs.HomeAuthPath)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "error removing auth.json")
	}

	Current = nil
	return nil
}

func SetAuthHeader(req *http.Request) {
	if Current == nil || Current.Token == "" {
		return
	}
	req.Header.Set("Authorization", "Bearer "+Current.Token)
}
