package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var ErrMissingCredentials = errors.New("missing terminal credentials")

// Credentials identify the trading account the bridge logs in with.
type Credentials struct {
	Login    int64
	Password string
	Server   string
}

// LoadCredentials reads MT5_LOGIN, MT5_PASSWORD and MT5_SERVER from the
// environment after loading any .env files. Existing variables win over
// .env entries.
func LoadCredentials(envFiles ...string) (Credentials, error) {
	_ = godotenv.Load(envFiles...)

	var missing []string
	get := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	loginRaw := get("MT5_LOGIN")
	password := get("MT5_PASSWORD")
	server := get("MT5_SERVER")
	if len(missing) > 0 {
		return Credentials{}, fmt.Errorf("%w: %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}

	login, err := strconv.ParseInt(loginRaw, 10, 64)
	if err != nil || login <= 0 {
		return Credentials{}, fmt.Errorf("MT5_LOGIN must be a positive account number, got %q", loginRaw)
	}

	return Credentials{Login: login, Password: password, Server: server}, nil
}
