package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/house-hunt/rental-api/internal/core/domain"
	"github.com/house-hunt/rental-api/internal/core/ports"
)

// StatsCache abstracts the short-lived dashboard cache (Redis).
type StatsCache interface {
	Get(ctx context.Context) (*ports.DashboardStats, error)
	Set(ctx context.Context, stats *ports.DashboardStats) error
}

// AdminService implements moderation and the admin dashboard.
type AdminService struct {
	users  ports.UserRepository
	props  ports.PropertyRepository
	cache  StatsCache
	logger zerolog.Logger
}

func NewAdminService(users ports.UserRepository, props ports.PropertyRepository, cache StatsCache, logger zerolog.Logger) *AdminService {
	return &AdminService{users: users, props: props, cache: cache, logger: logger}
}

// ListUsers returns a page of non-deleted accounts, optionally narrowed by
// role or a name/email search.
func (s *AdminService) ListUsers(ctx context.Context, role, search, page, limit string) (*ports.UserPage, error) {
	if role != domain.RoleTenant && role != domain.RoleOwner {
		role = ""
	}

	filter := ports.ListUsersFilter{
		Role:   role,
		Search: strings.TrimSpace(search),
		Page:   parsePage(page),
		Limit:  parseLimit(limit),
	}
	items, total, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ports.UserPage{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

// GetUser returns one account; for owners the owned-listings count rides
// along.
func (s *AdminService) GetUser(ctx context.Context, id string) (*ports.UserDetail, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &ports.UserDetail{User: user}
	if user.Role == domain.RoleOwner {
		count, err := s.props.CountByOwner(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		detail.PropertiesCount = count
	}
	return detail, nil
}

// ToggleBlock flips the target's block flag. Blocking unpublishes every
// listing the target owns inside the same store transaction, so no reader
// ever sees a blocked owner with published listings. Unblocking republishes
// nothing.
func (s *AdminService) ToggleBlock(ctx context.Context, actor domain.Actor, id string) (*domain.User, error) {
	if actor.ID == id {
		return nil, domain.ErrSelfModeration
	}

	target, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.users.SetBlocked(ctx, id, !target.IsBlocked)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", id).Msg("block toggle failed")
		return nil, err
	}

	s.logger.Info().
		Str("user_id", id).
		Bool("blocked", updated.IsBlocked).
		Str("admin_id", actor.ID).
		Msg("user block toggled")
	return updated, nil
}

// DeleteUser soft-deletes the target and, transactionally, soft-deletes and
// unpublishes all their listings.
func (s *AdminService) DeleteUser(ctx context.Context, actor domain.Actor, id string) error {
	if actor.ID == id {
		return domain.ErrSelfModeration
	}

	if _, err := s.users.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.users.SoftDelete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("user_id", id).Msg("user delete failed")
		return err
	}

	s.logger.Info().Str("user_id", id).Str("admin_id", actor.ID).Msg("user soft-deleted")
	return nil
}

// ListProperties is the moderation view: all non-deleted listings, including
// unpublished ones and those of blocked owners.
func (s *AdminService) ListProperties(ctx context.Context, input ports.ListPropertiesAdminInput) (*ports.PropertyPage, error) {
	filter := ports.SearchFilter{
		TitleOrCity: strings.TrimSpace(input.Search),
		Sort:        ports.SortNewest,
		Page:        parsePage(input.Page),
		Limit:       parseLimit(input.Limit),
	}

	switch input.Status {
	case "published":
		v := true
		filter.Published = &v
	case "unpublished":
		v := false
		filter.Published = &v
	}
	if occ := domain.OccupancyStatus(input.Occupancy); domain.ValidOccupancy(occ) {
		filter.Occupancy = occ
	}

	items, total, err := s.props.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	return newPage(items, total, filter.Page, filter.Limit), nil
}

// DeleteProperty soft-deletes any listing, regardless of owner standing.
func (s *AdminService) DeleteProperty(ctx context.Context, actor domain.Actor, id string) error {
	if _, err := s.props.FindByID(ctx, id, false); err != nil {
		return err
	}
	if err := s.props.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("property_id", id).Str("admin_id", actor.ID).Msg("property removed by admin")
	return nil
}

// Stats aggregates the dashboard counts, serving from the cache when warm.
func (s *AdminService) Stats(ctx context.Context) (*ports.DashboardStats, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	userStats, err := s.users.Stats(ctx)
	if err != nil {
		return nil, err
	}
	propStats, err := s.props.Stats(ctx)
	if err != nil {
		return nil, err
	}

	stats := &ports.DashboardStats{Users: *userStats, Properties: *propStats}
	if s.cache != nil {
		if err := s.cache.Set(ctx, stats); err != nil {
			s.logger.Warn().Err(err).Msg("stats cache write failed")
		}
	}
	return stats, nil
}
