package api

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/locator/internal/client/cache"
	"github.com/dmitrijs2005/locator/internal/client/client"
	"github.com/dmitrijs2005/locator/internal/client/models"
)

func usersRequest() client.Request                 { return client.Request{} }
func locationsRequest(p models.Page) client.Request { return client.Request{Query: pageQuery(p)} }
func homesRequest(p models.Page) client.Request     { return client.Request{Query: pageQuery(p)} }
func byID(id int64) client.Request                  { return client.Request{ID: id} }

// Cache keys of the queries, for Watch.
func UsersKey() cache.Key                  { return cache.NewKey(client.OpGetUsers, usersRequest()) }
func LocationsKey(p models.Page) cache.Key { return cache.NewKey(client.OpGetLocations, locationsRequest(p)) }
func LocationKey(id int64) cache.Key       { return cache.NewKey(client.OpGetLocationByID, byID(id)) }
func HomesKey(p models.Page) cache.Key     { return cache.NewKey(client.OpGetHomes, homesRequest(p)) }
func HomeKey(id int64) cache.Key           { return cache.NewKey(client.OpGetHomeByID, byID(id)) }
func DistancesKey(homeID int64) cache.Key  { return cache.NewKey(client.OpGetDistances, byID(homeID)) }

// Root probes the API root.
func (c *Client) Root(ctx context.Context) (json.RawMessage, error) {
	return query[json.RawMessage](ctx, c, client.OpRoot, client.Request{}, QueryOptions{})
}

// SignUp registers an account. The response carries the profile only.
func (c *Client) SignUp(ctx context.Context, in models.UserCreate) (models.User, error) {
	return mutate[models.User](ctx, c, client.OpSignUp, client.Request{Body: in})
}

// SignIn exchanges credentials for a bearer token.
func (c *Client) SignIn(ctx context.Context, in models.UserSignIn) (models.SignInResponse, error) {
	return mutate[models.SignInResponse](ctx, c, client.OpSignIn, client.Request{Body: in})
}

func (c *Client) Users(ctx context.Context, opts QueryOptions) ([]models.User, error) {
	return query[[]models.User](ctx, c, client.OpGetUsers, usersRequest(), opts)
}

func (c *Client) UpdateUser(ctx context.Context, id int64, in models.UserUpdate) (models.User, error) {
	req := byID(id)
	req.Body = in
	return mutate[models.User](ctx, c, client.OpUpdateUser, req)
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	_, err := mutate[json.RawMessage](ctx, c, client.OpDeleteUser, byID(id))
	return err
}

func (c *Client) Locations(ctx context.Context, p models.Page, opts QueryOptions) ([]models.Location, error) {
	return query[[]models.Location](ctx, c, client.OpGetLocations, locationsRequest(p), opts)
}

func (c *Client) CreateLocation(ctx context.Context, in models.LocationCreate) (models.Location, error) {
	return mutate[models.Location](ctx, c, client.OpCreateLocation, client.Request{Body: in})
}

func (c *Client) Location(ctx context.Context, id int64, opts QueryOptions) (models.Location, error) {
	return query[models.Location](ctx, c, client.OpGetLocationByID, byID(id), opts)
}

func (c *Client) UpdateLocation(ctx context.Context, id int64, in models.LocationCreate) (models.Location, error) {
	req := byID(id)
	req.Body = in
	return mutate[models.Location](ctx, c, client.OpUpdateLocation, req)
}

func (c *Client) DeleteLocation(ctx context.Context, id int64) error {
	_, err := mutate[json.RawMessage](ctx, c, client.OpDeleteLocation, byID(id))
	return err
}

func (c *Client) Homes(ctx context.Context, p models.Page, opts QueryOptions) ([]models.Home, error) {
	return query[[]models.Home](ctx, c, client.OpGetHomes, homesRequest(p), opts)
}

func (c *Client) CreateHome(ctx context.Context, in models.HomeCreate) (models.Home, error) {
	return mutate[models.Home](ctx, c, client.OpCreateHome, client.Request{Body: in})
}

func (c *Client) Home(ctx context.Context, id int64, opts QueryOptions) (models.Home, error) {
	return query[models.Home](ctx, c, client.OpGetHomeByID, byID(id), opts)
}

func (c *Client) UpdateHome(ctx context.Context, id int64, in models.HomeCreate) (models.Home, error) {
	req := byID(id)
	req.Body = in
	return mutate[models.Home](ctx, c, client.OpUpdateHome, req)
}

func (c *Client) DeleteHome(ctx context.Context, id int64) error {
	_, err := mutate[json.RawMessage](ctx, c, client.OpDeleteHome, byID(id))
	return err
}

// Distances returns the walking distances from a home to the locations the
// server could measure.
func (c *Client) Distances(ctx context.Context, homeID int64, opts QueryOptions) ([]models.Distance, error) {
	return query[[]models.Distance](ctx, c, client.OpGetDistances, byID(homeID), opts)
}

// SearchGeocode looks an address up. Results are never cached.
func (c *Client) SearchGeocode(ctx context.Context, q models.GeocodeQuery) (models.GeocodeResult, error) {
	return query[models.GeocodeResult](ctx, c, client.OpSearchGeocode, client.Request{Body: q}, QueryOptions{})
}
