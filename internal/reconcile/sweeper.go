// Package reconcile repairs accounts left half-created by the
// non-transactional dual write: a provider identity whose profile document
// never made it into the store gets a default profile on the next sweep.
package reconcile

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/deck-app/deck-account-backend/internal/accounts/domain"
)

// IdentityLister pages through provider accounts.
type IdentityLister interface {
	List(ctx context.Context, pageToken string, pageSize int) ([]domain.Identity, string, error)
}

// ProfileStore is the slice of the profile gateway the sweeper uses.
type ProfileStore interface {
	GetByUserID(ctx context.Context, uid string) (*domain.Profile, error)
	Create(ctx context.Context, profile *domain.Profile) error
}

type Sweeper struct {
	identities IdentityLister
	profiles   ProfileStore
	pageSize   int
}

func NewSweeper(identities IdentityLister, profiles ProfileStore, pageSize int) *Sweeper {
	if pageSize <= 0 {
		pageSize = 100
	}
	return &Sweeper{
		identities: identities,
		profiles:   profiles,
		pageSize:   pageSize,
	}
}

// Sweep walks every provider identity and creates a default student profile
// for any identity that has none. Creation is idempotent: a concurrent
// create of the same subject is not an error. Returns the number of
// profiles created.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	created := 0
	pageToken := ""

	for {
		identities, nextToken, err := s.identities.List(ctx, pageToken, s.pageSize)
		if err != nil {
			return created, err
		}

		for _, identity := range identities {
			_, err := s.profiles.GetByUserID(ctx, identity.UID)
			if err == nil {
				continue
			}
			if !errors.Is(err, domain.ErrProfileNotFound) {
				log.Printf("reconcile: read profile %s: %v", identity.UID, err)
				continue
			}

			profile := domain.NewProfile(identity.UID, identity.Email, identity.DisplayName)
			if err := s.profiles.Create(ctx, profile); err != nil {
				if errors.Is(err, domain.ErrProfileExists) {
					continue
				}
				log.Printf("reconcile: create profile %s: %v", identity.UID, err)
				continue
			}
			created++
		}

		if nextToken == "" {
			return created, nil
		}
		pageToken = nextToken
	}
}

// Start schedules the sweep with the given cron expression (with seconds)
// and returns the running scheduler. An empty schedule disables the sweep.
func (s *Sweeper) Start(schedule string) (*cron.Cron, error) {
	if schedule == "" {
		return nil, nil
	}

	c := cron.New(cron.WithSeconds())
	_, err := c.AddFunc(schedule, func() {
		start := time.Now()
		created, err := s.Sweep(context.Background())
		if err != nil {
			log.Printf("reconcile: sweep failed after %s: %v", time.Since(start), err)
			return
		}
		log.Printf("reconcile: sweep done in %s, %d profiles created", time.Since(start), created)
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	return c, nil
}
