package usecase

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/closetcompare/backend/internal/domain"
)

// Similarity weights. The maximum score is 5.
const (
	brandMatchWeight  = 2
	classMatchWeight  = 1
	genderMatchWeight = 1
	priceMatchWeight  = 1
)

const (
	defaultPriceBand           = 20.0
	defaultRecommendationLimit = 10
	maxRecommendationLimit     = 50
	defaultRecommendationTTL   = 15 * time.Minute

	// maxRankCandidates bounds caller-supplied pools
	maxRankCandidates = 1000

	// recommendationKeyPrefix namespaces cached rankings; a catalog sync evicts it
	recommendationKeyPrefix = "recommendations:"
)

// Score is the naive similarity of candidate to reference.
// Strings compare exactly; two absent gender tags count as equal.
// The price term applies when the prices differ by at most priceBand.
func Score(candidate, reference domain.CandidateItem, priceBand float64) int {
	score := 0
	if candidate.Brand == reference.Brand {
		score += brandMatchWeight
	}
	if candidate.GarmentClass == reference.GarmentClass {
		score += classMatchWeight
	}
	if candidate.GenderTag == reference.GenderTag {
		score += genderMatchWeight
	}
	if math.Abs(candidate.Price-reference.Price) <= priceBand {
		score += priceMatchWeight
	}
	return score
}

// RecommendationConfig holds configuration for the recommendation service
type RecommendationConfig struct {
	PriceBand          float64
	DefaultLimit       int
	MaxLimit           int
	CacheTTL           time.Duration
	EnableDebugLogging bool
}

// RecommendationService ranks products by similarity to a reference product
type RecommendationService struct {
	products           domain.ProductRepository
	cache              domain.CacheRepository
	priceBand          float64
	defaultLimit       int
	maxLimit           int
	cacheTTL           time.Duration
	enableDebugLogging bool
	logger             zerolog.Logger
}

// NewRecommendationService creates a new recommendation service with the given configuration
func NewRecommendationService(
	products domain.ProductRepository,
	cache domain.CacheRepository,
	config RecommendationConfig,
	logger zerolog.Logger,
) *RecommendationService {
	priceBand := config.PriceBand
	if priceBand <= 0 {
		priceBand = defaultPriceBand
	}

	maxLimit := config.MaxLimit
	if maxLimit <= 0 {
		maxLimit = maxRecommendationLimit
	}

	defaultLimit := config.DefaultLimit
	if defaultLimit <= 0 || defaultLimit > maxLimit {
		defaultLimit = min(defaultRecommendationLimit, maxLimit)
	}

	cacheTTL := config.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = defaultRecommendationTTL
	}

	return &RecommendationService{
		products:           products,
		cache:              cache,
		priceBand:          priceBand,
		defaultLimit:       defaultLimit,
		maxLimit:           maxLimit,
		cacheTTL:           cacheTTL,
		enableDebugLogging: config.EnableDebugLogging,
		logger:             logger.With().Str("component", "recommendations").Logger(),
	}
}

// Rank scores every candidate against reference and sorts by descending score.
// Equal scores keep their input order. limit <= 0 returns every candidate.
func (s *RecommendationService) Rank(
	ctx context.Context,
	reference domain.CandidateItem,
	candidates []domain.CandidateItem,
	limit int,
) ([]domain.ScoredItem, error) {
	scored := make([]domain.ScoredItem, 0, len(candidates))

	for _, candidate := range candidates {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		score := Score(candidate, reference, s.priceBand)
		if s.enableDebugLogging {
			s.logger.Debug().
				Str("candidate", candidate.ID).
				Str("brand", candidate.Brand).
				Str("class", candidate.GarmentClass).
				Float64("price", candidate.Price).
				Int("score", score).
				Msg("scored candidate")
		}
		scored = append(scored, domain.ScoredItem{Item: candidate, Score: score})
	}

	slices.SortStableFunc(scored, func(a, b domain.ScoredItem) int {
		return cmp.Compare(b.Score, a.Score)
	})

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}

	return scored, nil
}

// RankRequest ranks caller-supplied candidates. A zero limit returns the whole pool.
func (s *RecommendationService) RankRequest(ctx context.Context, request *domain.RankRequest) ([]domain.ScoredItem, error) {
	if request == nil {
		return nil, domain.ErrInvalidRequest
	}
	if request.Limit < 0 {
		return nil, fmt.Errorf("%w: negative limit", domain.ErrInvalidRequest)
	}
	if len(request.Candidates) > maxRankCandidates {
		return nil, fmt.Errorf("%w: too many candidates", domain.ErrInvalidRequest)
	}

	return s.Rank(ctx, request.Reference, request.Candidates, request.Limit)
}

// RecommendForProduct ranks every other stored product against productID.
// Results are cached per product and limit until the TTL expires or a catalog sync runs.
func (s *RecommendationService) RecommendForProduct(ctx context.Context, productID string, limit int) ([]domain.ScoredItem, error) {
	if productID == "" {
		return nil, domain.ErrInvalidRequest
	}
	limit = s.clampLimit(limit)

	cacheKey := fmt.Sprintf("%s%s:%d", recommendationKeyPrefix, productID, limit)
	var cached []domain.ScoredItem
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, domain.ErrCacheMiss) {
		s.logger.Warn().Err(err).Str("key", cacheKey).Msg("cache read failed")
	}

	reference, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	pool, err := s.products.ListCandidates(ctx, productID)
	if err != nil {
		return nil, err
	}

	candidates := make([]domain.CandidateItem, len(pool))
	for i, p := range pool {
		candidates[i] = p.Candidate()
	}

	ranked, err := s.Rank(ctx, reference.Candidate(), candidates, limit)
	if err != nil {
		return nil, err
	}

	// A cache write failure only costs a recomputation
	if err := s.cache.Set(ctx, cacheKey, ranked, s.cacheTTL); err != nil {
		s.logger.Warn().Err(err).Str("key", cacheKey).Msg("cache write failed")
	}

	s.logger.Debug().
		Str("product", productID).
		Int("pool", len(candidates)).
		Int("returned", len(ranked)).
		Msg("recommendations computed")

	return ranked, nil
}

func (s *RecommendationService) clampLimit(limit int) int {
	if limit <= 0 {
		return s.defaultLimit
	}
	return min(limit, s.maxLimit)
}
