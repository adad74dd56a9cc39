package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dmitrijs2005/locator/internal/client/api"
	"github.com/dmitrijs2005/locator/internal/client/cache"
	"github.com/dmitrijs2005/locator/internal/client/client"
	"github.com/dmitrijs2005/locator/internal/client/config"
	"github.com/dmitrijs2005/locator/internal/client/models"
	"github.com/dmitrijs2005/locator/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/locator/internal/client/session"
	"github.com/dmitrijs2005/locator/internal/devserver"
	"github.com/stretchr/testify/require"
)

// fixture is an App talking to an in-process dev server, writing to out.
type fixture struct {
	app     *App
	out     *bytes.Buffer
	server  *devserver.Server
	session *session.Store
}

func newFixture(t *testing.T, input string) fixture {
	t.Helper()
	srv, err := devserver.New(devserver.TestConfig(), nil)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.APIBaseURL = ts.URL + "/"

	sess := session.NewStore(metadata.NewMemoryRepository(), nil)
	transport, err := client.NewHTTPClient(cfg.APIBaseURL, sess)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	app := newApp(cfg, nil, sess, api.New(transport, cache.New(), nil), bufio.NewReader(strings.NewReader(input)), out)
	t.Cleanup(func() { _ = app.Close() })

	return fixture{app: app, out: out, server: srv, session: sess}
}

// stubAnswers feeds answers to the text prompts in order and password to
// every password prompt. Running out of answers reads as EOF.
func stubAnswers(t *testing.T, password string, answers ...string) {
	t.Helper()
	origST, origGP, origML := getSimpleText, getPassword, getMultiline

	next := func() (string, error) {
		if len(answers) == 0 {
			return "", io.EOF
		}
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next() }
	getMultiline = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next() }
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(password), nil }

	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
		getMultiline = origML
	})
}

func (f fixture) signInRoot(t *testing.T) {
	t.Helper()
	stubAnswers(t, "root", "root@locator.local")
	require.NoError(t, f.app.SignIn(context.Background()))
	f.out.Reset()
}

func mapped(lat, lon float64) models.Address {
	return models.Address{Street: "1 High St", City: "London", PostalCode: "N1", Country: "UK", Latitude: &lat, Longitude: &lon}
}

func unmapped() models.Address {
	return models.Address{Street: "2 Low St", City: "London", PostalCode: "E1", Country: "UK"}
}

func (f fixture) seedLocation(name string, addr models.Address) models.Location {
	return f.server.Store().CreateLocation(models.LocationCreate{
		Name: name, Summary: name + " summary", PriceEstimateMin: 10, PriceEstimateMax: 20, Address: addr,
	})
}
