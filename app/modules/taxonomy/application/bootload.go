package taxonomyservice

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/TanzimK12/pvm-kingdom/internal/attr"
)

const (
	bootRetryBase     = 2 * time.Second
	bootRetryCap      = 30 * time.Second
	bootRetryAttempts = 5
)

// BootLoad performs the initial taxonomy load, retrying with exponential
// backoff. Giving up is not fatal to the process: the service stays
// not-ready and interaction handlers refuse work until a later refresh
// succeeds.
func (s *TaxonomyService) BootLoad(ctx context.Context) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = s.bootBase
	bo.MaxInterval = s.bootCap
	bo.MaxElapsedTime = 0

	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		if err := s.Load(ctx); err != nil {
			s.logger.WarnContext(ctx, "Boot taxonomy load failed, will retry",
				attr.Int("attempt", attempt),
				attr.Error(err),
			)
			return err
		}
		return nil
	}, backoff.WithMaxRetries(backoff.WithContext(bo, ctx), bootRetryAttempts-1))
	if err != nil {
		return fmt.Errorf("taxonomy boot load gave up after %d attempts: %w", attempt, err)
	}
	return nil
}
