package service

import (
	"context"
	"errors"
	"testing"

	"github.com/house-hunt/rental-api/internal/core/domain"
	"github.com/house-hunt/rental-api/internal/core/ports"
)

type stubStatsCache struct {
	stored *ports.DashboardStats
	getErr error
	sets   int
}

func (c *stubStatsCache) Get(_ context.Context) (*ports.DashboardStats, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.stored, nil
}

func (c *stubStatsCache) Set(_ context.Context, stats *ports.DashboardStats) error {
	c.stored = stats
	c.sets++
	return nil
}

func newAdminFixture() (*stubPropertyRepo, *stubUserRepo, *stubStatsCache, *AdminService) {
	props := newStubPropertyRepo()
	users := newStubUserRepo()
	users.props = props
	cache := &stubStatsCache{}
	return props, users, cache, NewAdminService(users, props, cache, discardLogger)
}

var adminActor = domain.Actor{ID: "admin_1", Role: domain.RoleAdmin}

// ---------------------------------------------------------------------------
// ToggleBlock tests
// ---------------------------------------------------------------------------

func TestAdminToggleBlock_UnpublishesOwnedListings(t *testing.T) {
	props, users, _, svc := newAdminFixture()
	seedUser(users, "admin_1", domain.RoleAdmin, false)
	seedUser(users, "owner_1", domain.RoleOwner, false)
	seedProperty(props, "p_1", "owner_1")
	seedProperty(props, "p_2", "owner_1")

	updated, err := svc.ToggleBlock(context.Background(), adminActor, "owner_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.IsBlocked {
		t.Fatal("expected user blocked")
	}
	for _, id := range []string{"p_1", "p_2"} {
		if props.byID[id].IsPublished {
			t.Errorf("%s must be unpublished by the block cascade", id)
		}
	}
}

func TestAdminToggleBlock_SecondToggleUnblocksWithoutRepublish(t *testing.T) {
	props, users, _, svc := newAdminFixture()
	seedUser(users, "admin_1", domain.RoleAdmin, false)
	seedUser(users, "owner_1", domain.RoleOwner, false)
	seedProperty(props, "p_1", "owner_1")

	if _, err := svc.ToggleBlock(context.Background(), adminActor, "owner_1"); err != nil {
		t.Fatalf("block: %v", err)
	}
	updated, err := svc.ToggleBlock(context.Background(), adminActor, "owner_1")
	if err != nil {
		t.Fatalf("unblock: %v", err)
	}
	if updated.IsBlocked {
		t.Fatal("second toggle must unblock")
	}
	if props.byID["p_1"].IsPublished {
		t.Error("unblocking must not republish listings")
	}
}

func TestAdminToggleBlock_SelfDenied(t *testing.T) {
	_, users, _, svc := newAdminFixture()
	seedUser(users, "admin_1", domain.RoleAdmin, false)

	if _, err := svc.ToggleBlock(context.Background(), adminActor, "admin_1"); !errors.Is(err, domain.ErrSelfModeration) {
		t.Errorf("expected ErrSelfModeration, got %v", err)
	}
}

func TestAdminToggleBlock_UnknownUser(t *testing.T) {
	_, _, _, svc := newAdminFixture()

	if _, err := svc.ToggleBlock(context.Background(), adminActor, "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// DeleteUser tests
// ---------------------------------------------------------------------------

func TestAdminDeleteUser_CascadesToListings(t *testing.T) {
	props, users, _, svc := newAdminFixture()
	seedUser(users, "admin_1", domain.RoleAdmin, false)
	seedUser(users, "owner_1", domain.RoleOwner, false)
	seedProperty(props, "p_1", "owner_1")

	if err := svc.DeleteUser(context.Background(), adminActor, "owner_1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !users.byID["owner_1"].IsDeleted {
		t.Error("user must be soft-deleted")
	}
	p := props.byID["p_1"]
	if !p.IsDeleted || p.IsPublished {
		t.Errorf("listing must be soft-deleted and unpublished, got deleted=%v published=%v", p.IsDeleted, p.IsPublished)
	}
}

func TestAdminDeleteUser_SelfDenied(t *testing.T) {
	_, users, _, svc := newAdminFixture()
	seedUser(users, "admin_1", domain.RoleAdmin, false)

	if err := svc.DeleteUser(context.Background(), adminActor, "admin_1"); !errors.Is(err, domain.ErrSelfModeration) {
		t.Errorf("expected ErrSelfModeration, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// ListUsers tests
// ---------------------------------------------------------------------------

func TestAdminListUsers_RoleFilter(t *testing.T) {
	_, users, _, svc := newAdminFixture()
	seedUser(users, "owner_1", domain.RoleOwner, false)
	seedUser(users, "tenant_1", domain.RoleTenant, false)
	seedUser(users, "tenant_2", domain.RoleTenant, false)

	page, err := svc.ListUsers(context.Background(), "tenant", "", "1", "10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Total != 2 {
		t.Errorf("expected 2 tenants, got %d", page.Total)
	}
}

func TestAdminListUsers_UnknownRoleIgnored(t *testing.T) {
	_, users, _, svc := newAdminFixture()
	seedUser(users, "owner_1", domain.RoleOwner, false)
	seedUser(users, "tenant_1", domain.RoleTenant, false)

	page, err := svc.ListUsers(context.Background(), "superuser", "", "1", "10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Total != 2 {
		t.Errorf("unknown role must be dropped, got %d", page.Total)
	}
}

func TestAdminListUsers_SearchByNameOrEmail(t *testing.T) {
	_, users, _, svc := newAdminFixture()
	seedUser(users, "owner_1", domain.RoleOwner, false)
	seedUser(users, "tenant_1", domain.RoleTenant, false)

	page, err := svc.ListUsers(context.Background(), "", "owner_1@example", "1", "10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Total != 1 {
		t.Errorf("expected 1 match by email, got %d", page.Total)
	}
}

// ---------------------------------------------------------------------------
// GetUser tests
// ---------------------------------------------------------------------------

func TestAdminGetUser_OwnerCarriesListingCount(t *testing.T) {
	props, users, _, svc := newAdminFixture()
	seedUser(users, "owner_1", domain.RoleOwner, false)
	seedProperty(props, "p_1", "owner_1")
	seedProperty(props, "p_2", "owner_1")

	detail, err := svc.GetUser(context.Background(), "owner_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.PropertiesCount != 2 {
		t.Errorf("expected 2 owned listings, got %d", detail.PropertiesCount)
	}
}

func TestAdminGetUser_TenantHasNoCount(t *testing.T) {
	_, users, _, svc := newAdminFixture()
	seedUser(users, "tenant_1", domain.RoleTenant, false)

	detail, err := svc.GetUser(context.Background(), "tenant_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.PropertiesCount != 0 {
		t.Errorf("tenants own nothing, got %d", detail.PropertiesCount)
	}
}

// ---------------------------------------------------------------------------
// ListProperties tests
// ---------------------------------------------------------------------------

func TestAdminListProperties_ShowsWhatPublicSearchHides(t *testing.T) {
	props, users, _, svc := newAdminFixture()
	seedUser(users, "admin_1", domain.RoleAdmin, false)
	seedUser(users, "owner_1", domain.RoleOwner, false)
	seedProperty(props, "p_1", "owner_1")

	if _, err := svc.ToggleBlock(context.Background(), adminActor, "owner_1"); err != nil {
		t.Fatalf("block: %v", err)
	}

	// The public catalogue no longer shows the listing.
	pubSvc := NewPropertyService(props, users, discardLogger)
	public, err := pubSvc.Search(context.Background(), ports.SearchPropertiesInput{})
	if err != nil {
		t.Fatalf("public search: %v", err)
	}
	if public.Total != 0 {
		t.Fatalf("public search must hide the blocked owner's listing, got %d", public.Total)
	}

	// The moderation view still does, now unpublished.
	adminView, err := svc.ListProperties(context.Background(), ports.ListPropertiesAdminInput{})
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if adminView.Total != 1 {
		t.Fatalf("admin view must keep the listing, got %d", adminView.Total)
	}
	if adminView.Items[0].IsPublished {
		t.Error("listing must read as unpublished after the block cascade")
	}
}

func TestAdminListProperties_StatusFilter(t *testing.T) {
	props, users, _, svc := newAdminFixture()
	seedUser(users, "owner_1", domain.RoleOwner, false)
	seedProperty(props, "p_pub", "owner_1")
	seedProperty(props, "p_draft", "owner_1", func(p *domain.Property) { p.IsPublished = false })

	page, err := svc.ListProperties(context.Background(), ports.ListPropertiesAdminInput{Status: "unpublished"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Total != 1 {
		t.Fatalf("expected 1 unpublished listing, got %d", page.Total)
	}
	if page.Items[0].ID != "p_draft" {
		t.Errorf("expected p_draft, got %s", page.Items[0].ID)
	}
}

func TestAdminListProperties_SearchTitleOrCity(t *testing.T) {
	props, users, _, svc := newAdminFixture()
	seedUser(users, "owner_1", domain.RoleOwner, false)
	seedProperty(props, "p_berlin", "owner_1")
	seedProperty(props, "p_munich", "owner_1", func(p *domain.Property) { p.Location.City = "Munich" })

	page, err := svc.ListProperties(context.Background(), ports.ListPropertiesAdminInput{Search: "munich"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Total != 1 {
		t.Errorf("expected 1 match on city, got %d", page.Total)
	}
}

// ---------------------------------------------------------------------------
// DeleteProperty / Stats tests
// ---------------------------------------------------------------------------

func TestAdminDeleteProperty(t *testing.T) {
	props, users, _, svc := newAdminFixture()
	seedUser(users, "owner_1", domain.RoleOwner, false)
	seedProperty(props, "p_1", "owner_1")

	if err := svc.DeleteProperty(context.Background(), adminActor, "p_1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !props.byID["p_1"].IsDeleted {
		t.Error("listing must be soft-deleted")
	}
	if err := svc.DeleteProperty(context.Background(), adminActor, "p_1"); !errors.Is(err, domain.ErrPropertyNotFound) {
		t.Errorf("deleting twice must read as not found, got %v", err)
	}
}

func TestAdminStats_ComputesAndCaches(t *testing.T) {
	props, users, cache, svc := newAdminFixture()
	seedUser(users, "owner_1", domain.RoleOwner, false)
	seedUser(users, "tenant_1", domain.RoleTenant, false)
	seedUser(users, "tenant_blocked", domain.RoleTenant, true)
	seedProperty(props, "p_pub", "owner_1")
	seedProperty(props, "p_occ", "owner_1", func(p *domain.Property) {
		p.OccupancyStatus = domain.OccupancyOccupied
	})

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Users.Total != 3 || stats.Users.Owners != 1 || stats.Users.Tenants != 2 || stats.Users.Blocked != 1 {
		t.Errorf("user stats wrong: %+v", stats.Users)
	}
	if stats.Properties.Total != 2 || stats.Properties.Published != 2 || stats.Properties.Occupied != 1 {
		t.Errorf("property stats wrong: %+v", stats.Properties)
	}
	if cache.sets != 1 {
		t.Errorf("expected one cache write, got %d", cache.sets)
	}
}

func TestAdminStats_ServedFromCache(t *testing.T) {
	_, _, cache, svc := newAdminFixture()
	cache.stored = &ports.DashboardStats{Users: ports.UserStats{Total: 42}}

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Users.Total != 42 {
		t.Errorf("expected cached value 42, got %d", stats.Users.Total)
	}
	if cache.sets != 0 {
		t.Errorf("cache hit must not rewrite, got %d writes", cache.sets)
	}
}

func TestAdminStats_CacheErrorFallsBack(t *testing.T) {
	_, users, cache, svc := newAdminFixture()
	cache.getErr = errors.New("redis down")
	seedUser(users, "tenant_1", domain.RoleTenant, false)

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("cache failure must not break stats: %v", err)
	}
	if stats.Users.Total != 1 {
		t.Errorf("expected computed stats, got %+v", stats.Users)
	}
}
