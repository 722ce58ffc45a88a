package company

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/repository"
	"github.com/jwalitptl/clinic-admin/pkg/errors"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type Service struct {
	repo repository.CompanyRepository
}

func NewService(repo repository.CompanyRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context) (*model.CompanyConfig, error) {
	cfg, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get company config: %w", err)
	}
	return cfg, nil
}

// Save updates the branding. Without a new logo the stored one is kept;
// an uploaded logo is stored inline as a data URL.
func (s *Service) Save(ctx context.Context, req model.CompanyRequest) (*model.CompanyConfig, error) {
	if len(req.Logo) > model.MaxLogoBytes {
		return nil, errors.BadRequest(fmt.Sprintf("logo is too large (max %d bytes)", model.MaxLogoBytes), nil)
	}
	color := strings.TrimSpace(req.HeaderColor)
	if color == "" {
		color = model.DefaultHeaderColor
	}
	if !hexColor.MatchString(color) {
		return nil, errors.BadRequest("header color must look like #004c9e", nil)
	}

	cfg, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get company config: %w", err)
	}

	if len(req.Logo) > 0 {
		logo, err := dataURL(req.Logo)
		if err != nil {
			return nil, err
		}
		cfg.LogoBase64 = logo
	}
	cfg.Name = strings.TrimSpace(req.Name)
	cfg.TaxID = strings.TrimSpace(req.TaxID)
	cfg.HeaderColor = color

	if err := s.repo.Save(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to save company config: %w", err)
	}
	return cfg, nil
}

func dataURL(raw []byte) (string, error) {
	mime := http.DetectContentType(raw)
	if !strings.HasPrefix(mime, "image/") {
		return "", errors.BadRequest("logo must be an image", nil)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(raw), nil
}
