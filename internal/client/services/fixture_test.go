package services

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/locator/internal/client/api"
	"github.com/dmitrijs2005/locator/internal/client/cache"
	"github.com/dmitrijs2005/locator/internal/client/client"
	"github.com/dmitrijs2005/locator/internal/client/forms"
	"github.com/dmitrijs2005/locator/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/locator/internal/client/selection"
	"github.com/dmitrijs2005/locator/internal/client/session"
	"github.com/dmitrijs2005/locator/internal/devserver"
	"github.com/stretchr/testify/require"
)

// fixture is a console wired against an in-process dev server.
type fixture struct {
	server    *devserver.Server
	api       *api.Client
	session   *session.Store
	selection *selection.Store
	auth      AuthService
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	srv, err := devserver.New(devserver.TestConfig(), nil)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	sess := session.NewStore(metadata.NewMemoryRepository(), nil)
	transport, err := client.NewHTTPClient(ts.URL+"/", sess)
	require.NoError(t, err)

	c := cache.New()
	a := api.New(transport, c, nil)
	t.Cleanup(ResetOnLogout(sess, c))
	return fixture{
		server:    srv,
		api:       a,
		session:   sess,
		selection: selection.NewStore(),
		auth:      NewAuthService(a, sess, c),
	}
}

func (f fixture) signInRoot(t *testing.T) {
	t.Helper()
	_, err := f.auth.SignIn(context.Background(), forms.SignIn{Email: "root@locator.local", Password: "root"})
	require.NoError(t, err)
}

func coords(lat, lon float64) (*float64, *float64) {
	return &lat, &lon
}

func homeForm(name string, mapped bool) forms.Home {
	f := forms.Home{
		Name:    name,
		Address: forms.Address{Street: name + " Street", City: "London", PostalCode: "N1", Country: "UK"},
	}
	if mapped {
		f.Address.Latitude, f.Address.Longitude = coords(51.5074, -0.1278)
	}
	return f
}

func locationForm(name string, lat, lon *float64) forms.Location {
	return forms.Location{
		Name:             name,
		Summary:          "summary of " + name,
		PriceEstimateMin: 10,
		PriceEstimateMax: 20,
		Address: forms.Address{
			Street: name + " Road", City: "London", PostalCode: "E1", Country: "UK",
			Latitude: lat, Longitude: lon,
		},
	}
}
