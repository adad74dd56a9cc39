package cli

import (
	"context"

	"github.com/dmitrijs2005/locator/internal/client/forms"
)

// ShowLocation renders the details of location id.
func (a *App) ShowLocation(ctx context.Context, id int64) error {
	a.navigate(routeLocation)

	l, err := a.catalogService.Location(ctx, id)
	if err != nil {
		a.fail(ctx, err, "Error loading location")
		return err
	}

	a.title(l.Name)
	a.println(renderTable([]string{"Field", "Value"}, [][]string{
		{"Street", l.Address.Street},
		{"City", l.Address.City},
		{"Postal Code", l.Address.PostalCode},
		{"Country", l.Address.Country},
		{"Coordinates", l.Address.Coordinates()},
		{"Summary", l.Summary},
		{"Description", l.Description},
		{"Price Range", formatPrice(l.PriceEstimateMin, l.PriceEstimateMax)},
	}))

	acc := a.access()
	if acc.Authenticated {
		a.hint("location edit %d", l.ID)
	}
	if acc.Admin {
		a.hint("location delete %d", l.ID)
	}
	return nil
}

// CreateLocation asks for a new location.
func (a *App) CreateLocation(ctx context.Context) error {
	a.navigate(routeForm)
	a.title("Create Location")

	var form forms.Location
	if err := a.locationForm(ctx, &form); err != nil {
		return err
	}
	l, err := a.catalogService.CreateLocation(ctx, form)
	if err != nil {
		a.fail(ctx, err, "Failed to create location")
		return err
	}
	a.success("Location %q created", l.Name)
	return a.ShowHome(ctx)
}

// EditLocation edits location id.
func (a *App) EditLocation(ctx context.Context, id int64) error {
	a.navigate(routeForm)

	l, err := a.catalogService.Location(ctx, id)
	if err != nil {
		a.fail(ctx, err, "Error loading location")
		return err
	}
	a.title("Edit Location")

	form := forms.LocationFrom(l)
	if err := a.locationForm(ctx, &form); err != nil {
		return err
	}
	if _, err := a.catalogService.UpdateLocation(ctx, id, form); err != nil {
		a.fail(ctx, err, "Failed to update location")
		return err
	}
	a.success("Location updated")
	return a.ShowHome(ctx)
}

// DeleteLocation deletes location id after confirmation and returns to the
// home view.
func (a *App) DeleteLocation(ctx context.Context, id int64) error {
	if err := a.confirm(deleteItemPrompt); err != nil {
		return err
	}
	if err := a.catalogService.DeleteLocation(ctx, id); err != nil {
		a.fail(ctx, err, "Failed to delete location")
		return err
	}
	a.success("Location deleted")
	return a.ShowHome(ctx)
}
