package localize

import (
	"fmt"
	"os"
	"time"

	"github.com/go-git/go-billy/v5/osfs"

	"github.com/dmitrymomot/localize/pkg/provider"
)

// Content backends.
const (
	BackendDir   = "dir"
	BackendBilly = "billy"
	BackendS3    = "s3"
	BackendMinio = "minio"
)

// Cache backends.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config holds the localizer settings.
type Config struct {
	DefaultCulture    string   `env:"LOCALIZE_DEFAULT_CULTURE" envDefault:"en"`
	SupportedCultures []string `env:"LOCALIZE_SUPPORTED_CULTURES" envSeparator:","`

	// ContentRoot is the local content directory for the dir and billy backends.
	ContentRoot    string `env:"LOCALIZE_CONTENT_ROOT" envDefault:"./content"`
	ContentBackend string `env:"LOCALIZE_CONTENT_BACKEND" envDefault:"dir"`

	// ResourceDir holds the string tables used by DisplayName.
	ResourceDir        string   `env:"LOCALIZE_RESOURCE_DIR" envDefault:"Strings"`
	ResourceExtensions []string `env:"LOCALIZE_RESOURCE_EXT" envDefault:"json" envSeparator:","`
	CaseSensitive      bool     `env:"LOCALIZE_CASE_SENSITIVE" envDefault:"true"`

	CultureCacheSize    int `env:"LOCALIZE_CULTURE_CACHE_SIZE" envDefault:"20"`
	PageCacheSize       int `env:"LOCALIZE_PAGE_CACHE_SIZE" envDefault:"100"`
	CollectionCacheSize int `env:"LOCALIZE_COLLECTION_CACHE_SIZE" envDefault:"100"`

	// CacheBackend selects where resolution results live: memory or redis.
	// The string table pages always stay in memory.
	CacheBackend string        `env:"LOCALIZE_CACHE_BACKEND" envDefault:"memory"`
	CacheTTL     time.Duration `env:"LOCALIZE_CACHE_TTL" envDefault:"0s"`

	S3    provider.S3Config
	Minio provider.MinioConfig
}

// newProvider opens the content root selected by cfg.ContentBackend.
func newProvider(cfg Config) (provider.Provider, error) {
	switch cfg.ContentBackend {
	case "", BackendDir:
		return provider.NewFS(os.DirFS(cfg.ContentRoot)), nil
	case BackendBilly:
		return provider.NewBilly(osfs.New(cfg.ContentRoot)), nil
	case BackendS3:
		p, err := provider.NewS3(cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		return p, nil
	case BackendMinio:
		p, err := provider.NewMinio(cfg.Minio)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("%w: content %q", ErrUnknownBackend, cfg.ContentBackend)
	}
}
