package cli

import (
	"context"
	"errors"
	"strconv"

	"github.com/dmitrijs2005/locator/internal/client/api"
	"github.com/dmitrijs2005/locator/internal/client/forms"
	"github.com/dmitrijs2005/locator/internal/client/services"
	"github.com/dmitrijs2005/locator/internal/common"
)

const deleteItemPrompt = "Are you sure you want to delete this item? This action cannot be undone."

// ShowHome renders the home selector and the ranked locations, and keeps the
// queries behind them watched until another view is opened.
func (a *App) ShowHome(ctx context.Context) error {
	a.navigate(routeHome)
	return a.renderHome(ctx, api.QueryOptions{Refetch: true})
}

func (a *App) renderHome(ctx context.Context, opts api.QueryOptions) error {
	d, err := a.catalogService.Dashboard(ctx, opts)
	if err != nil {
		a.fail(ctx, err, "Error loading homes and locations")
		return err
	}

	// Remount: the selection may have changed which distances are shown.
	a.leave()
	a.unmount = a.catalogService.Mount(func(error) { a.stale.Store(true) })

	a.renderDashboard(d)
	return nil
}

// afterCommand redraws the home view when one of its queries was refetched
// while the command ran.
func (a *App) afterCommand(ctx context.Context) {
	if a.route == routeHome && a.stale.Swap(false) {
		_ = a.renderHome(ctx, api.QueryOptions{})
	}
}

func (a *App) renderDashboard(d services.Dashboard) {
	acc := a.access()

	a.title("Homes")
	if len(d.Homes) == 0 {
		a.hint("No homes yet.")
	} else {
		rows := make([][]string, 0, len(d.Homes))
		for _, h := range d.Homes {
			mark := ""
			if d.Selected != nil && d.Selected.ID == h.ID {
				mark = "*"
			}
			rows = append(rows, []string{mark, strconv.FormatInt(h.ID, 10), h.Name, h.Address.String()})
		}
		a.println(renderTable([]string{"", "ID", "Name", "Address"}, rows))
	}

	switch {
	case d.Selected != nil:
		a.println("Selected home: " + d.Selected.Name + " (" + d.Selected.Address.String() + ")")
	case d.SelectedID != nil:
		a.warn("The selected home #%d no longer exists", *d.SelectedID)
	default:
		a.hint("No home selected")
	}

	focus := strconv.FormatFloat(d.Focus.Latitude, 'f', -1, 64) + ", " + strconv.FormatFloat(d.Focus.Longitude, 'f', -1, 64)
	if d.Focus.Default {
		focus += " (default)"
	}
	a.println("Map centre: " + focus)
	a.println("Markers: " + strconv.Itoa(len(d.Markers)) + " locations")

	a.title("Locations")
	if len(d.Locations) == 0 {
		a.hint("No locations yet.")
	} else {
		rows := make([][]string, 0, len(d.Locations))
		for _, l := range d.Locations {
			rows = append(rows, []string{
				strconv.FormatInt(l.ID, 10),
				l.Name,
				l.Summary,
				formatPrice(l.PriceEstimateMin, l.PriceEstimateMax),
				formatMinutes(l.Minutes),
			})
		}
		a.println(renderTable([]string{"ID", "Name", "Summary", "Price Range (GBP)", "Walking Distance (minutes)"}, rows))
	}
	if d.DistancesErr != nil {
		a.warn("Walking distances are unavailable right now")
	}

	if acc.Authenticated {
		a.hint("select <id> | home create | home edit <id> | location <id> | location create")
	}
	if acc.Admin {
		a.hint("home delete | location delete <id> | users")
	}
}

// Select makes id the selected home and shows it.
func (a *App) Select(ctx context.Context, id int64) error {
	a.catalogService.Select(id)
	a.navigate(routeHome)
	return a.renderHome(ctx, api.QueryOptions{})
}

// CreateHome asks for a new home.
func (a *App) CreateHome(ctx context.Context) error {
	a.navigate(routeForm)
	a.title("Create Home")

	var form forms.Home
	if err := a.homeForm(ctx, &form); err != nil {
		return err
	}
	h, err := a.catalogService.CreateHome(ctx, form)
	if err != nil {
		a.fail(ctx, err, "Failed to create home")
		return err
	}
	a.success("Home %q created", h.Name)
	return a.ShowHome(ctx)
}

// EditHome edits home id.
func (a *App) EditHome(ctx context.Context, id int64) error {
	a.navigate(routeForm)

	h, err := a.catalogService.Home(ctx, id)
	if err != nil {
		a.fail(ctx, err, "Failed to load home")
		return err
	}
	a.title("Edit Home")

	form := forms.HomeFrom(h)
	if err := a.homeForm(ctx, &form); err != nil {
		return err
	}
	if _, err := a.catalogService.UpdateHome(ctx, id, form); err != nil {
		a.fail(ctx, err, "Failed to update home")
		return err
	}
	a.success("Home updated")
	return a.ShowHome(ctx)
}

// DeleteHome deletes the selected home after confirmation.
func (a *App) DeleteHome(ctx context.Context) error {
	if err := a.confirm(deleteItemPrompt); err != nil {
		return err
	}
	id, err := a.catalogService.DeleteSelectedHome(ctx)
	if errors.Is(err, common.ErrNoHomeSelected) {
		a.alert("Select a home first")
		return err
	}
	if err != nil {
		a.fail(ctx, err, "Failed to delete home")
		return err
	}
	a.success("Home #%d deleted", id)
	if a.route != routeHome {
		return a.ShowHome(ctx)
	}
	return nil
}
