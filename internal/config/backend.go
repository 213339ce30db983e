package config

// ConfigBackend is where non-secret settings persist between runs.
// On macOS that is UserDefaults under com.celest.app; elsewhere a JSON
// file in $XDG_CONFIG_HOME/celest. Secrets never pass through here.
type ConfigBackend interface {
	GetString(key string) (val string, ok bool, err error)
	GetInt(key string) (val int, ok bool, err error)
	SetString(key, val string) error
	SetInt(key string, val int) error
	Delete(key string) error
}
