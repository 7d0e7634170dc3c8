package usecases

import (
	"context"

	"iprights/internal/application/license/dto"
	apperrors "iprights/internal/shared/errors"
	"iprights/internal/shared/logger"
	"iprights/internal/shared/services/terms"
)

// PreviewTermsUseCase renders a markdown terms document to sanitized HTML and
// returns the digest that a grant over this exact document would store.
// Collaborators call it before createLicense to show the document and verify
// the binding.
type PreviewTermsUseCase struct {
	terms  terms.Service
	logger logger.Interface
}

// NewPreviewTermsUseCase creates a new preview terms use case
func NewPreviewTermsUseCase(termsService terms.Service, log logger.Interface) *PreviewTermsUseCase {
	return &PreviewTermsUseCase{
		terms:  termsService,
		logger: log,
	}
}

// Execute executes the preview terms use case
func (uc *PreviewTermsUseCase) Execute(ctx context.Context, request dto.PreviewTermsRequest) (*dto.PreviewTermsResponse, error) {
	if request.Terms == "" {
		return nil, apperrors.NewValidationError("terms document is required")
	}

	html, err := uc.terms.Render(request.Terms)
	if err != nil {
		uc.logger.Errorw("terms rendering failed", "error", err)
		return nil, apperrors.NewValidationError("terms document could not be rendered")
	}

	return &dto.PreviewTermsResponse{
		HTML:   html,
		Digest: uc.terms.Digest(request.Terms),
	}, nil
}
