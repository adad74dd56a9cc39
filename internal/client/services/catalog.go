package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/locator/internal/client/api"
	"github.com/dmitrijs2005/locator/internal/client/cache"
	"github.com/dmitrijs2005/locator/internal/client/forms"
	"github.com/dmitrijs2005/locator/internal/client/models"
	"github.com/dmitrijs2005/locator/internal/client/selection"
	"github.com/dmitrijs2005/locator/internal/common"
	"github.com/dmitrijs2005/locator/internal/logging"
)

// CatalogAPI is the part of the remote client the catalog service needs.
type CatalogAPI interface {
	Homes(ctx context.Context, p models.Page, opts api.QueryOptions) ([]models.Home, error)
	Home(ctx context.Context, id int64, opts api.QueryOptions) (models.Home, error)
	CreateHome(ctx context.Context, in models.HomeCreate) (models.Home, error)
	UpdateHome(ctx context.Context, id int64, in models.HomeCreate) (models.Home, error)
	DeleteHome(ctx context.Context, id int64) error

	Locations(ctx context.Context, p models.Page, opts api.QueryOptions) ([]models.Location, error)
	Location(ctx context.Context, id int64, opts api.QueryOptions) (models.Location, error)
	CreateLocation(ctx context.Context, in models.LocationCreate) (models.Location, error)
	UpdateLocation(ctx context.Context, id int64, in models.LocationCreate) (models.Location, error)
	DeleteLocation(ctx context.Context, id int64) error

	Distances(ctx context.Context, homeID int64, opts api.QueryOptions) ([]models.Distance, error)
	SearchGeocode(ctx context.Context, q models.GeocodeQuery) (models.GeocodeResult, error)

	Watch(key cache.Key, l cache.Listener) func()
}

// Focus is the point the home view is centred on.
type Focus struct {
	Latitude  float64
	Longitude float64
	// Default is set when no selected home with coordinates was available.
	Default bool
}

// DefaultFocus is central London.
var DefaultFocus = Focus{Latitude: 51.5074, Longitude: -0.1278, Default: true}

// Dashboard is everything the home view shows.
type Dashboard struct {
	Homes []models.Home
	// SelectedID is the selection as stored; it may name a home that is no
	// longer listed.
	SelectedID *int64
	// Selected is the selected home when it is in Homes.
	Selected  *models.Home
	Focus     Focus
	Markers   []models.Location
	Locations []RankedLocation
	// DistancesErr is set when distances could not be loaded; Locations are
	// then listed without walking times.
	DistancesErr error
}

// CatalogService defines the homes and locations operations of the console.
//
// Contract:
//   - Dashboard: load homes, default the selection to the first one, load
//     locations and rank them by distance from the selected home.
//   - Mount: keep the dashboard queries refetched after invalidations.
//   - Create/Update: validate the form first; a rejected form issues no request.
//   - DeleteSelectedHome: the selection is left as is afterwards.
//   - Geocode: fill the form's coordinates from the address typed so far.
type CatalogService interface {
	Dashboard(ctx context.Context, opts api.QueryOptions) (Dashboard, error)
	Mount(onChange func(err error)) func()
	Select(id int64)

	Home(ctx context.Context, id int64) (models.Home, error)
	CreateHome(ctx context.Context, form forms.Home) (models.Home, error)
	UpdateHome(ctx context.Context, id int64, form forms.Home) (models.Home, error)
	DeleteSelectedHome(ctx context.Context) (int64, error)

	Location(ctx context.Context, id int64) (models.Location, error)
	CreateLocation(ctx context.Context, form forms.Location) (models.Location, error)
	UpdateLocation(ctx context.Context, id int64, form forms.Location) (models.Location, error)
	DeleteLocation(ctx context.Context, id int64) error

	Geocode(ctx context.Context, form *forms.Address) error
}

type catalogService struct {
	api       CatalogAPI
	selection *selection.Store
	page      models.Page
	log       logging.Logger
}

// NewCatalogService constructs a CatalogService. limit is the page size of
// list queries; non-positive means models.DefaultPage.
func NewCatalogService(api CatalogAPI, sel *selection.Store, limit int, log logging.Logger) CatalogService {
	page := models.DefaultPage
	if limit > 0 {
		page.Limit = limit
	}
	if log == nil {
		log = logging.Nop{}
	}
	return &catalogService{api: api, selection: sel, page: page, log: log}
}

func (c *catalogService) Dashboard(ctx context.Context, opts api.QueryOptions) (Dashboard, error) {
	homes, err := c.api.Homes(ctx, c.page, opts)
	if err != nil {
		return Dashboard{}, fmt.Errorf("load homes error: %w", err)
	}

	d := Dashboard{Homes: homes, Focus: DefaultFocus}
	if id, ok := c.selection.DefaultTo(homes); ok {
		d.SelectedID = &id
	}
	if h, ok := c.selection.Find(homes); ok {
		d.Selected = &h
		if h.Address.HasCoordinates() {
			d.Focus = Focus{Latitude: *h.Address.Latitude, Longitude: *h.Address.Longitude}
		}
	}

	locations, err := c.api.Locations(ctx, c.page, opts)
	if err != nil {
		return Dashboard{}, fmt.Errorf("load locations error: %w", err)
	}
	for _, l := range locations {
		if l.Address.HasCoordinates() {
			d.Markers = append(d.Markers, l)
		}
	}

	var distances []models.Distance
	if d.Selected != nil {
		distances, err = c.api.Distances(ctx, d.Selected.ID, opts)
		if err != nil {
			c.log.Warn(ctx, "distances unavailable", "home_id", d.Selected.ID, "error", err)
			d.DistancesErr = err
			distances = nil
		}
	}
	d.Locations = RankByDistance(locations, distances)
	return d, nil
}

func (c *catalogService) Mount(onChange func(err error)) func() {
	listener := func(_ any, err error) {
		if onChange != nil {
			onChange(err)
		}
	}

	stops := []func(){
		c.api.Watch(api.HomesKey(c.page), listener),
		c.api.Watch(api.LocationsKey(c.page), listener),
	}
	if id, ok := c.selection.HomeID(); ok {
		stops = append(stops, c.api.Watch(api.DistancesKey(id), listener))
	}

	return func() {
		for _, stop := range stops {
			stop()
		}
	}
}

func (c *catalogService) Select(id int64) {
	c.selection.SetHomeID(&id)
}

func (c *catalogService) Home(ctx context.Context, id int64) (models.Home, error) {
	h, err := c.api.Home(ctx, id, api.QueryOptions{})
	if err != nil {
		return models.Home{}, fmt.Errorf("load home error: %w", err)
	}
	return h, nil
}

func (c *catalogService) CreateHome(ctx context.Context, form forms.Home) (models.Home, error) {
	in, err := form.Validate()
	if err != nil {
		return models.Home{}, err
	}
	h, err := c.api.CreateHome(ctx, in)
	if err != nil {
		return models.Home{}, fmt.Errorf("create home error: %w", err)
	}
	return h, nil
}

func (c *catalogService) UpdateHome(ctx context.Context, id int64, form forms.Home) (models.Home, error) {
	in, err := form.Validate()
	if err != nil {
		return models.Home{}, err
	}
	h, err := c.api.UpdateHome(ctx, id, in)
	if err != nil {
		return models.Home{}, fmt.Errorf("update home error: %w", err)
	}
	return h, nil
}

func (c *catalogService) DeleteSelectedHome(ctx context.Context) (int64, error) {
	id, ok := c.selection.HomeID()
	if !ok {
		return 0, common.ErrNoHomeSelected
	}
	if err := c.api.DeleteHome(ctx, id); err != nil {
		return id, fmt.Errorf("delete home error: %w", err)
	}
	return id, nil
}

func (c *catalogService) Location(ctx context.Context, id int64) (models.Location, error) {
	l, err := c.api.Location(ctx, id, api.QueryOptions{})
	if err != nil {
		return models.Location{}, fmt.Errorf("load location error: %w", err)
	}
	return l, nil
}

func (c *catalogService) CreateLocation(ctx context.Context, form forms.Location) (models.Location, error) {
	in, err := form.Validate()
	if err != nil {
		return models.Location{}, err
	}
	l, err := c.api.CreateLocation(ctx, in)
	if err != nil {
		return models.Location{}, fmt.Errorf("create location error: %w", err)
	}
	return l, nil
}

func (c *catalogService) UpdateLocation(ctx context.Context, id int64, form forms.Location) (models.Location, error) {
	in, err := form.Validate()
	if err != nil {
		return models.Location{}, err
	}
	l, err := c.api.UpdateLocation(ctx, id, in)
	if err != nil {
		return models.Location{}, fmt.Errorf("update location error: %w", err)
	}
	return l, nil
}

func (c *catalogService) DeleteLocation(ctx context.Context, id int64) error {
	if err := c.api.DeleteLocation(ctx, id); err != nil {
		return fmt.Errorf("delete location error: %w", err)
	}
	return nil
}

// ErrNoGeocodeMatch is returned by Geocode when the search found nothing.
var ErrNoGeocodeMatch = errors.New("address not found")

func (c *catalogService) Geocode(ctx context.Context, form *forms.Address) error {
	r, err := c.api.SearchGeocode(ctx, form.GeocodeQuery())
	if err != nil {
		return fmt.Errorf("geocode error: %w", err)
	}
	form.ApplyGeocode(r)
	if r.Latitude == nil && r.Longitude == nil {
		return ErrNoGeocodeMatch
	}
	return nil
}
