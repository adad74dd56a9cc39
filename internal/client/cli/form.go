package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/locator/internal/client/forms"
	"github.com/dmitrijs2005/locator/internal/client/services"
)

// ask prompts for a field. An empty answer keeps current.
func (a *App) ask(label, current string) (string, error) {
	prompt := label
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]", label, current)
	}
	v, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	if v == "" {
		return current, nil
	}
	return v, nil
}

func (a *App) askFloat(label string, current float64) (float64, error) {
	v, err := getSimpleText(a.reader, fmt.Sprintf("%s [%s]", label, formatNumber(current)), a.out)
	if err != nil {
		return 0, err
	}
	f, err := forms.ParseFloat(v, current)
	if err != nil {
		a.alert(label + " must be a number")
		return 0, err
	}
	return f, nil
}

func (a *App) askCoordinate(label string, current *float64) (*float64, error) {
	prompt := label + " (- to clear)"
	if current != nil {
		prompt = fmt.Sprintf("%s [%s]", prompt, formatCoordinate(current))
	}
	v, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return nil, err
	}
	c, err := forms.ParseCoordinate(v, current)
	if err != nil {
		a.alert(label + " must be a number")
		return nil, err
	}
	return c, nil
}

// addressForm fills the address block, offering to look the coordinates up
// from what was typed.
func (a *App) addressForm(ctx context.Context, f *forms.Address) error {
	var err error
	if f.Street, err = a.ask("Street", f.Street); err != nil {
		return err
	}
	if f.City, err = a.ask("City", f.City); err != nil {
		return err
	}
	if f.PostalCode, err = a.ask("Postal code", f.PostalCode); err != nil {
		return err
	}
	if f.Country, err = a.ask("Country", f.Country); err != nil {
		return err
	}

	answer, err := getSimpleText(a.reader, "Look up coordinates from the address? [y/N]", a.out)
	if err != nil {
		return err
	}
	if IsYes(answer) {
		switch err := a.catalogService.Geocode(ctx, f); {
		case errors.Is(err, services.ErrNoGeocodeMatch):
			a.warn("Address not found, coordinates left unchanged")
		case err != nil:
			a.fail(ctx, err, "Address lookup failed")
		default:
			a.success("Found %s, %s", formatCoordinate(f.Latitude), formatCoordinate(f.Longitude))
		}
	}

	if f.Latitude, err = a.askCoordinate("Latitude", f.Latitude); err != nil {
		return err
	}
	if f.Longitude, err = a.askCoordinate("Longitude", f.Longitude); err != nil {
		return err
	}
	return nil
}

func (a *App) homeForm(ctx context.Context, f *forms.Home) error {
	var err error
	if f.Name, err = a.ask("Name", f.Name); err != nil {
		return err
	}
	return a.addressForm(ctx, &f.Address)
}

func (a *App) locationForm(ctx context.Context, f *forms.Location) error {
	if err := a.addressForm(ctx, &f.Address); err != nil {
		return err
	}

	var err error
	if f.Name, err = a.ask("Name", f.Name); err != nil {
		return err
	}
	if f.Summary, err = a.ask("Summary", f.Summary); err != nil {
		return err
	}

	prompt := "Description"
	if f.Description != "" {
		prompt += " (empty keeps the current one)"
	}
	desc, err := getMultiline(a.reader, prompt, a.out)
	if err != nil {
		return err
	}
	if desc != "" {
		f.Description = desc
	}

	if f.PriceEstimateMin, err = a.askFloat("Price estimate min", f.PriceEstimateMin); err != nil {
		return err
	}
	if f.PriceEstimateMax, err = a.askFloat("Price estimate max", f.PriceEstimateMax); err != nil {
		return err
	}
	return nil
}
