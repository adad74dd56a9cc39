package devserver

import (
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/locator/internal/client/models"
	"github.com/dmitrijs2005/locator/internal/logging"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

type handlers struct {
	store  *Store
	tokens *Tokens
	log    logging.Logger
	cost   int
}

func bindValid(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}
	return c.Validate(req)
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "Not found")
	}
	return id, nil
}

func page(c echo.Context) (pageParams, error) {
	p := pageParams{Skip: models.DefaultPage.Skip, Limit: models.DefaultPage.Limit}
	err := echo.QueryParamsBinder(c).
		Int("skip", &p.Skip).
		Int("limit", &p.Limit).
		BindError()
	if err != nil || p.Skip < 0 || p.Limit < 0 {
		return p, echo.NewHTTPError(http.StatusUnprocessableEntity, "skip and limit must be non-negative integers")
	}
	return p, nil
}

func (h *handlers) root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "locator dev server"})
}

func (h *handlers) signup(c echo.Context) error {
	var req signupRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.cost)
	if err != nil {
		return err
	}

	u, err := h.store.CreateUser(models.User{Name: req.Name, Email: req.Email, Role: models.RoleUser}, hash)
	if err != nil {
		return err
	}
	h.log.Info(c.Request().Context(), "user signed up", "user_id", u.ID)
	return c.JSON(http.StatusCreated, u)
}

func (h *handlers) signin(c echo.Context) error {
	var req signinRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	u, hash, err := h.store.UserByEmail(req.Email)
	if err != nil || bcrypt.CompareHashAndPassword(hash, []byte(req.Password)) != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}

	token, err := h.tokens.Issue(u)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.SignInResponse{AccessToken: token, TokenType: "bearer", User: u})
}

func (h *handlers) listUsers(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Users())
}

func (h *handlers) updateUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req userUpdateRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	u, err := h.store.UpdateUser(id, models.UserUpdate{Name: req.Name, Email: req.Email, Role: models.Role(req.Role)})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

func (h *handlers) deleteUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.store.DeleteUser(id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *handlers) listLocations(c echo.Context) error {
	p, err := page(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.store.Locations(p.Skip, p.Limit))
}

func (h *handlers) getLocation(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	l, err := h.store.Location(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, l)
}

func (h *handlers) createLocation(c echo.Context) error {
	var req locationRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, h.store.CreateLocation(req.toModel()))
}

func (h *handlers) updateLocation(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req locationRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	l, err := h.store.UpdateLocation(id, req.toModel())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, l)
}

func (h *handlers) deleteLocation(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.store.DeleteLocation(id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *handlers) listHomes(c echo.Context) error {
	p, err := page(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.store.Homes(p.Skip, p.Limit))
}

func (h *handlers) getHome(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	home, err := h.store.Home(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, home)
}

func (h *handlers) createHome(c echo.Context) error {
	var req homeRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, h.store.CreateHome(req.toModel()))
}

func (h *handlers) updateHome(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req homeRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	home, err := h.store.UpdateHome(id, req.toModel())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, home)
}

func (h *handlers) deleteHome(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.store.DeleteHome(id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *handlers) distances(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	home, err := h.store.Home(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, Distances(home, h.store.Locations(0, -1)))
}

func (h *handlers) geocode(c echo.Context) error {
	var q models.GeocodeQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}
	return c.JSON(http.StatusOK, Geocode(q))
}
