package identity

import (
	"context"

	"github.com/dmitrijs2005/staffkeeper/internal/client/models"
	"github.com/dmitrijs2005/staffkeeper/internal/logging"
	"github.com/google/uuid"
)

const placeholderPrefix = "local."

// CachedDecoder is the degraded, non-token strategy.
type CachedDecoder struct {
	cache  UserCache
	logger logging.Logger
}

func NewCachedDecoder(cache UserCache, logger logging.Logger) *CachedDecoder {
	return &CachedDecoder{cache: cache, logger: logger.With("module", "cached_decoder")}
}

func (d *CachedDecoder) Strategy() Strategy { return StrategyCached }

// Decode never fails.
func (d *CachedDecoder) Decode(ctx context.Context, _ string, issued *models.Identity) (models.Identity, error) {
	if issued != nil {
		return *issued, nil
	}
	if d.cache != nil {
		cached, err := d.cache.GetUser(ctx)
		if err != nil {
			d.logger.Warn(ctx, "cached user record unreadable, using default identity", "error", err)
		} else if cached != nil {
			return *cached, nil
		}
	}
	return models.Identity{Role: models.RoleUser}, nil
}

// PlaceholderToken fabricates a local credential for backends that
// authenticate without issuing one.
func PlaceholderToken() string {
	return placeholderPrefix + uuid.NewString()
}
