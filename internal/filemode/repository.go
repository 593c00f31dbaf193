package filemode

import (
	"errors"
	"time"
)

var (
	// ErrFileModeNotFound is returned when no mode was stored for a path.
	ErrFileModeNotFound = errors.New("file mode not found")
	// ErrSettingNotFound is returned when a setting key is unset.
	ErrSettingNotFound = errors.New("setting not found")
)

// SettingPlatform stores the last platform chosen with `mode platform`.
const SettingPlatform = "platform"

// Choice is a mode remembered for one file.
type Choice struct {
	Path      string    `json:"path" yaml:"path"`
	Mode      string    `json:"mode" yaml:"mode"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// Repository persists per-file mode choices. Paths are absolute.
type Repository interface {
	Save(c Choice) error
	Find(path string) (Choice, error)
	Delete(path string) error
	List() ([]Choice, error)
}

// SettingsRepository persists small key/value settings.
type SettingsRepository interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}
