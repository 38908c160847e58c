package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"fixly/internal/domain"
	"fixly/internal/models"
	"fixly/pkg/geo"
)

// CandidateDirectory lists proximity-search candidates: professionals with
// tracking enabled, optionally filtered by availability status.
type CandidateDirectory interface {
	ListProfessionals(ctx context.Context, status string) ([]models.User, error)
}

// CurrentReader is the read side of the current-position store.
type CurrentReader interface {
	GetCurrent(ctx context.Context, professionalID uint) (*models.CurrentLocation, error)
}

// ProfessionalInfo is the directory slice of a match payload.
type ProfessionalInfo struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Status   string `json:"status"`
}

// Match is one nearby professional with their live position and distance from
// the query point.
type Match struct {
	Professional ProfessionalInfo       `json:"professional"`
	Location     models.CurrentLocation `json:"location"`
	DistanceKm   float64                `json:"distance_km"`
}

// ProximityService answers "which professionals are near this point". It is
// read-only: no state is mutated on any path.
type ProximityService struct {
	directory   CandidateDirectory
	current     CurrentReader
	concurrency int
	// strictFetch fails the whole query on a store error instead of dropping
	// the affected candidate.
	strictFetch bool
}

func NewProximityService(directory CandidateDirectory, current CurrentReader, concurrency int, strictFetch bool) *ProximityService {
	if concurrency <= 0 {
		concurrency = 8
	}
	return &ProximityService{directory: directory, current: current, concurrency: concurrency, strictFetch: strictFetch}
}

type candidateFetch struct {
	user models.User
	loc  *models.CurrentLocation
	err  error
}

// FindNearby returns professionals within radiusKm of the query point, sorted
// ascending by distance with professional ID as the tiebreak. Candidate
// positions are fetched concurrently under a bounded semaphore; a single
// candidate's failure or missing position drops that candidate only, unless
// strict mode is on.
func (s *ProximityService) FindNearby(ctx context.Context, lat, lng, radiusKm float64, statusFilter string) ([]Match, error) {
	if !geo.ValidCoordinates(lat, lng) {
		return nil, fmt.Errorf("%w: latitude must be in [-90,90] and longitude in [-180,180]", domain.ErrInvalidInput)
	}
	if radiusKm <= 0 {
		return nil, fmt.Errorf("%w: radius must be positive", domain.ErrInvalidInput)
	}
	if statusFilter != "" && !domain.ValidStatus(statusFilter) {
		return nil, fmt.Errorf("%w: status must be available, busy or offline", domain.ErrInvalidInput)
	}

	candidates, err := s.directory.ListProfessionals(ctx, statusFilter)
	if err != nil {
		return nil, fmt.Errorf("%w: directory: %v", domain.ErrUpstream, err)
	}

	// Bounded fan-out: each candidate gets its own fetch slot so one slow or
	// failing read never stalls the rest. Results land in a fixed slice slot,
	// so no mutex and no dependence on completion order.
	fetches := make([]candidateFetch, len(candidates))
	sem := make(chan struct{}, s.concurrency)
	var wg sync.WaitGroup
launch:
	for i, cand := range candidates {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			// Already-launched fetches may still resolve; unstarted candidates
			// are abandoned and the partial result stands.
			break launch
		}
		wg.Add(1)
		go func(i int, user models.User) {
			defer wg.Done()
			defer func() { <-sem }()
			loc, err := s.current.GetCurrent(ctx, user.ID)
			fetches[i] = candidateFetch{user: user, loc: loc, err: err}
		}(i, cand)
	}
	wg.Wait()

	matches := make([]Match, 0, len(candidates))
	for _, f := range fetches {
		if f.err != nil {
			if errors.Is(f.err, domain.ErrNotFound) {
				continue
			}
			if s.strictFetch {
				return nil, fmt.Errorf("%w: location fetch for professional %d: %v", domain.ErrUpstream, f.user.ID, f.err)
			}
			continue
		}
		if f.loc == nil {
			continue
		}
		// The stored status is fresher than the directory row; re-check the
		// filter against it.
		if statusFilter != "" && f.loc.Status != statusFilter {
			continue
		}
		dist := geo.HaversineKm(lat, lng, f.loc.Latitude, f.loc.Longitude)
		if dist > radiusKm {
			continue
		}
		matches = append(matches, Match{
			Professional: ProfessionalInfo{ID: f.user.ID, Username: f.user.Username, Status: f.loc.Status},
			Location:     *f.loc,
			DistanceKm:   dist,
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].DistanceKm != matches[j].DistanceKm {
			return matches[i].DistanceKm < matches[j].DistanceKm
		}
		return matches[i].Professional.ID < matches[j].Professional.ID
	})
	return matches, nil
}
