package service

import (
	"context"

	"github.com/spec-kit/gis-site-service/internal/domain"
	"github.com/spec-kit/gis-site-service/internal/repository"
	apperrors "github.com/spec-kit/gis-site-service/pkg/util/errorutil"
)

// ContactService manages the public contact content: company info, departments and social links.
type ContactService struct {
	info        repository.ContactInfoRepository
	departments repository.DepartmentalContactRepository
	social      repository.SocialLinkRepository
}

// ContactDependencies bundles repositories for the contact service.
type ContactDependencies struct {
	ContactInfoRepo repository.ContactInfoRepository
	DepartmentRepo  repository.DepartmentalContactRepository
	SocialLinkRepo  repository.SocialLinkRepository
}

// NewContactService constructs the service.
func NewContactService(deps ContactDependencies) *ContactService {
	return &ContactService{
		info:        deps.ContactInfoRepo,
		departments: deps.DepartmentRepo,
		social:      deps.SocialLinkRepo,
	}
}

// GetInfo returns the company contact block, seeding defaults on first read.
func (s *ContactService) GetInfo(ctx context.Context) (*domain.ContactInfo, error) {
	info, err := s.info.Get(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return info, nil
}

// SaveInfo replaces the company contact block.
func (s *ContactService) SaveInfo(ctx context.Context, info domain.ContactInfo) (*domain.ContactInfo, error) {
	info.Normalize()
	if err := invalid("invalid contact info", info.Validate()); err != nil {
		return nil, err
	}
	if err := s.info.Save(ctx, &info); err != nil {
		return nil, apperrors.MapError(err)
	}
	return &info, nil
}

// ListDepartments returns departments in display order.
func (s *ContactService) ListDepartments(ctx context.Context, activeOnly bool) ([]domain.DepartmentalContact, error) {
	items, err := s.departments.List(ctx, activeOnly)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if items == nil {
		items = []domain.DepartmentalContact{}
	}
	return items, nil
}

func (s *ContactService) GetDepartment(ctx context.Context, id string) (*domain.DepartmentalContact, error) {
	if err := checkID("department", id); err != nil {
		return nil, err
	}
	dept, err := s.departments.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr("department", id, err)
	}
	return dept, nil
}

func (s *ContactService) CreateDepartment(ctx context.Context, dept domain.DepartmentalContact) (*domain.DepartmentalContact, error) {
	dept.ID = ""
	dept.Normalize()
	if err := invalid("invalid department", dept.Validate()); err != nil {
		return nil, err
	}
	if err := s.departments.Create(ctx, &dept); err != nil {
		return nil, apperrors.MapError(err)
	}
	return &dept, nil
}

// UpdateDepartment replaces every editable field of the department.
func (s *ContactService) UpdateDepartment(ctx context.Context, id string, dept domain.DepartmentalContact) (*domain.DepartmentalContact, error) {
	if err := checkID("department", id); err != nil {
		return nil, err
	}
	dept.ID = id
	dept.Normalize()
	if err := invalid("invalid department", dept.Validate()); err != nil {
		return nil, err
	}
	if err := s.departments.Update(ctx, &dept); err != nil {
		return nil, notFoundOr("department", id, err)
	}
	return &dept, nil
}

func (s *ContactService) DeleteDepartment(ctx context.Context, id string) error {
	if err := checkID("department", id); err != nil {
		return err
	}
	if err := s.departments.Delete(ctx, id); err != nil {
		return notFoundOr("department", id, err)
	}
	return nil
}

// ListSocialLinks returns links in display order.
func (s *ContactService) ListSocialLinks(ctx context.Context, activeOnly bool) ([]domain.SocialLink, error) {
	items, err := s.social.List(ctx, activeOnly)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if items == nil {
		items = []domain.SocialLink{}
	}
	return items, nil
}

func (s *ContactService) GetSocialLink(ctx context.Context, id string) (*domain.SocialLink, error) {
	if err := checkID("social link", id); err != nil {
		return nil, err
	}
	link, err := s.social.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr("social link", id, err)
	}
	return link, nil
}

func (s *ContactService) CreateSocialLink(ctx context.Context, link domain.SocialLink) (*domain.SocialLink, error) {
	link.ID = ""
	link.Normalize()
	if err := invalid("invalid social link", link.Validate()); err != nil {
		return nil, err
	}
	if err := s.social.Create(ctx, &link); err != nil {
		return nil, apperrors.MapError(err)
	}
	return &link, nil
}

func (s *ContactService) UpdateSocialLink(ctx context.Context, id string, link domain.SocialLink) (*domain.SocialLink, error) {
	if err := checkID("social link", id); err != nil {
		return nil, err
	}
	link.ID = id
	link.Normalize()
	if err := invalid("invalid social link", link.Validate()); err != nil {
		return nil, err
	}
	if err := s.social.Update(ctx, &link); err != nil {
		return nil, notFoundOr("social link", id, err)
	}
	return &link, nil
}

func (s *ContactService) DeleteSocialLink(ctx context.Context, id string) error {
	if err := checkID("social link", id); err != nil {
		return err
	}
	if err := s.social.Delete(ctx, id); err != nil {
		return notFoundOr("social link", id, err)
	}
	return nil
}
