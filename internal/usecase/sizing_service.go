package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/closetcompare/backend/internal/domain"
	"github.com/closetcompare/backend/internal/sizing"
)

// SizingServiceConfig holds configuration for the sizing service
type SizingServiceConfig struct {
	EnableDebugLogging bool
}

// SizingService validates user input and runs it through the size charts.
// An uncharted size is a normal result with Matched set to false.
type SizingService struct {
	enableDebugLogging bool
	logger             zerolog.Logger
}

// NewSizingService creates a new sizing service
func NewSizingService(config SizingServiceConfig, logger zerolog.Logger) *SizingService {
	return &SizingService{
		enableDebugLogging: config.EnableDebugLogging,
		logger:             logger.With().Str("component", "sizing").Logger(),
	}
}

// Charts lists every chart key
func (s *SizingService) Charts(ctx context.Context) []domain.ChartKey {
	return sizing.Charts()
}

// Chart returns the chart for gender and garment class. The men's dresses chart is empty.
func (s *SizingService) Chart(ctx context.Context, gender, garmentClass string) (*domain.SizeChart, error) {
	g, err := domain.ParseGender(gender)
	if err != nil {
		return nil, err
	}
	c, err := domain.ParseGarmentClass(garmentClass)
	if err != nil {
		return nil, err
	}

	rows := sizing.Chart(g, c)
	if rows == nil {
		rows = []domain.SizeRow{}
	}

	return &domain.SizeChart{
		ChartKey: domain.ChartKey{Gender: g, GarmentClass: c},
		Systems:  domain.SizeSystems,
		Rows:     rows,
	}, nil
}

// Convert finds the equivalent sizes of request.Size. When To is empty only the row is returned.
func (s *SizingService) Convert(ctx context.Context, request *domain.ConvertRequest) (*domain.ConvertResult, error) {
	if request == nil || request.Size == "" {
		return nil, domain.ErrInvalidRequest
	}

	from, err := domain.ParseSizeSystem(request.From)
	if err != nil {
		return nil, err
	}
	var to domain.SizeSystem
	if request.To != "" {
		if to, err = domain.ParseSizeSystem(request.To); err != nil {
			return nil, err
		}
	}
	g, err := domain.ParseGender(request.Gender)
	if err != nil {
		return nil, err
	}
	c, err := domain.ParseGarmentClass(request.GarmentClass)
	if err != nil {
		return nil, err
	}

	result := &domain.ConvertResult{
		Size:         request.Size,
		From:         from,
		To:           to,
		Gender:       g,
		GarmentClass: c,
	}

	row, ok := sizing.FindMatchingSizes(request.Size, from, g, c)
	if ok {
		result.Matched = true
		result.Row = &row
		if to != "" {
			result.Converted = row.Value(to)
		}
	}

	if s.enableDebugLogging {
		s.logger.Debug().
			Str("size", request.Size).
			Str("from", string(from)).
			Str("to", string(to)).
			Str("chart", fmt.Sprintf("%s/%s", g, c)).
			Bool("matched", ok).
			Msg("size lookup")
	}

	return result, nil
}

// Letter maps a numeric women's tops size to its letter
func (s *SizingService) Letter(ctx context.Context, numeric string) (*domain.LetterResult, error) {
	if numeric == "" {
		return nil, domain.ErrInvalidRequest
	}

	letter, ok := sizing.LetterSize(numeric)
	if s.enableDebugLogging {
		s.logger.Debug().Str("numeric", numeric).Bool("matched", ok).Msg("letter lookup")
	}

	return &domain.LetterResult{Numeric: numeric, Matched: ok, Letter: letter}, nil
}
