package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/safeeat/backend/internal/domain"
)

// Lookup outcome labels reported to the ScanRecorder
const (
	LookupFound    = "found"
	LookupNotFound = "not_found"
	LookupError    = "error"
)

// ScanService ties together the avoid-list, the product database and the matcher.
// Flow: read avoid-list -> fetch product -> match -> return outcome
type ScanService struct {
	preferences domain.PreferenceStore
	products    domain.ProductClient
	matcher     *IngredientMatcher
	recorder    domain.ScanRecorder
	log         *logrus.Entry
}

// NewScanService creates a scan service with dependencies. recorder may be nil.
func NewScanService(
	preferences domain.PreferenceStore,
	products domain.ProductClient,
	matcher *IngredientMatcher,
	recorder domain.ScanRecorder,
) *ScanService {
	if matcher == nil {
		matcher = NewIngredientMatcher(false)
	}
	return &ScanService{
		preferences: preferences,
		products:    products,
		matcher:     matcher,
		recorder:    recorder,
		log:         logrus.WithField("component", "scan"),
	}
}

// Scan looks up barcode and checks it against the stored avoid-list
func (s *ScanService) Scan(ctx context.Context, barcode string) (*domain.ScanOutcome, error) {
	if barcode == "" {
		return nil, fmt.Errorf("%w: enter a barcode", domain.ErrCapture)
	}

	avoid := s.preferences.GetAvoidList(ctx)
	log := s.log.WithField("barcode", barcode)

	product, err := s.products.FetchProduct(ctx, barcode)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			s.recordLookup(LookupNotFound)
		} else {
			s.recordLookup(LookupError)
		}
		log.WithError(err).Info("product lookup failed")
		return nil, err
	}
	s.recordLookup(LookupFound)

	result := s.matcher.Match(product, avoid)
	if s.recorder != nil {
		s.recorder.RecordVerdict(result.IsSafe)
	}

	log.WithFields(logrus.Fields{
		"product": product.DisplayName(),
		"safe":    result.IsSafe,
		"found":   result.FoundIngredients,
	}).Info("scan complete")

	return &domain.ScanOutcome{
		Barcode:          barcode,
		Product:          product,
		IsSafe:           result.IsSafe,
		FoundIngredients: result.FoundIngredients,
	}, nil
}

// ScanWith acquires a barcode from capturer and scans it
func (s *ScanService) ScanWith(ctx context.Context, capturer domain.BarcodeCapturer) (*domain.ScanOutcome, error) {
	barcode, err := capturer.Capture(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrCapture) {
			err = fmt.Errorf("%w: %v", domain.ErrCapture, err)
		}
		return nil, err
	}
	return s.Scan(ctx, barcode)
}

func (s *ScanService) recordLookup(outcome string) {
	if s.recorder != nil {
		s.recorder.RecordLookup(outcome)
	}
}
