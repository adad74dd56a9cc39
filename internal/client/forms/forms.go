// Package forms validates user input before anything is sent to the API.
// A form that fails validation never reaches the network.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/locator/internal/client/models"
	"github.com/go-playground/validator/v10"
)

// ErrValidation matches every ValidationErrors.
var ErrValidation = errors.New("validation failed")

// ValidationErrors maps a form field to its message.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, v[f])
	}
	return strings.Join(parts, "; ")
}

func (v ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// check runs the struct validator and converts its findings.
func check(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	out := make(ValidationErrors, len(ve))
	for _, fe := range ve {
		field := fieldPath(fe)
		out[field] = fieldError(field, fe)
	}
	return out
}

// fieldPath drops the form's own type name from the namespace, so a nested
// street is reported as "address.street".
func fieldPath(fe validator.FieldError) string {
	_, rest, found := strings.Cut(fe.Namespace(), ".")
	if !found {
		return fe.Field()
	}
	return rest
}

func fieldError(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "gtefield":
		return fmt.Sprintf("%s must not be less than the minimum", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "latitude", "longitude":
		return field + " is out of range"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

// Address is the address block shared by home and location forms.
type Address struct {
	Street     string   `form:"street" validate:"required"`
	City       string   `form:"city" validate:"required"`
	PostalCode string   `form:"postal_code" validate:"required"`
	Country    string   `form:"country" validate:"required"`
	Latitude   *float64 `form:"latitude" validate:"omitnil,latitude"`
	Longitude  *float64 `form:"longitude" validate:"omitnil,longitude"`
}

// AddressFrom prefills the form from a stored address.
func AddressFrom(a models.Address) Address {
	return Address{
		Street:     a.Street,
		City:       a.City,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		Latitude:   a.Latitude,
		Longitude:  a.Longitude,
	}
}

func (a Address) model() models.Address {
	return models.Address{
		Street:     strings.TrimSpace(a.Street),
		City:       strings.TrimSpace(a.City),
		PostalCode: strings.TrimSpace(a.PostalCode),
		Country:    strings.TrimSpace(a.Country),
		Latitude:   a.Latitude,
		Longitude:  a.Longitude,
	}
}

// ApplyGeocode fills the coordinates from a search result, keeping the
// current ones where the result has none.
func (a *Address) ApplyGeocode(r models.GeocodeResult) {
	if r.Latitude != nil {
		lat := *r.Latitude
		a.Latitude = &lat
	}
	if r.Longitude != nil {
		lon := *r.Longitude
		a.Longitude = &lon
	}
}

// GeocodeQuery is the search for the address as typed so far.
func (a Address) GeocodeQuery() models.GeocodeQuery {
	return models.GeocodeQueryFrom(a.model())
}

// Home is the create/edit home form.
type Home struct {
	Name    string  `form:"name" validate:"required"`
	Address Address `form:"address"`
}

// HomeFrom prefills the edit form.
func HomeFrom(h models.Home) Home {
	return Home{Name: h.Name, Address: AddressFrom(h.Address)}
}

// Validate returns the payload, or ValidationErrors.
func (h Home) Validate() (models.HomeCreate, error) {
	h.Name = strings.TrimSpace(h.Name)
	h.Address = trimAddress(h.Address)
	if err := check(h); err != nil {
		return models.HomeCreate{}, err
	}
	return models.HomeCreate{Name: h.Name, Address: h.Address.model()}, nil
}

// Location is the create/edit location form.
type Location struct {
	Name             string  `form:"name" validate:"required"`
	Summary          string  `form:"summary"`
	Description      string  `form:"description"`
	PriceEstimateMin float64 `form:"price_estimate_min" validate:"gte=0"`
	PriceEstimateMax float64 `form:"price_estimate_max" validate:"gtefield=PriceEstimateMin"`
	Address          Address `form:"address"`
}

// LocationFrom prefills the edit form.
func LocationFrom(l models.Location) Location {
	return Location{
		Name:             l.Name,
		Summary:          l.Summary,
		Description:      l.Description,
		PriceEstimateMin: l.PriceEstimateMin,
		PriceEstimateMax: l.PriceEstimateMax,
		Address:          AddressFrom(l.Address),
	}
}

func (l Location) Validate() (models.LocationCreate, error) {
	l.Name = strings.TrimSpace(l.Name)
	l.Address = trimAddress(l.Address)
	if err := check(l); err != nil {
		return models.LocationCreate{}, err
	}
	return models.LocationCreate{
		Name:             l.Name,
		Summary:          strings.TrimSpace(l.Summary),
		Description:      strings.TrimSpace(l.Description),
		PriceEstimateMin: l.PriceEstimateMin,
		PriceEstimateMax: l.PriceEstimateMax,
		Address:          l.Address.model(),
	}, nil
}

// SignIn is the sign-in form.
type SignIn struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

func (s SignIn) Validate() (models.UserSignIn, error) {
	s.Email = strings.TrimSpace(s.Email)
	if err := check(s); err != nil {
		return models.UserSignIn{}, err
	}
	return models.UserSignIn{Email: s.Email, Password: s.Password}, nil
}

// SignUp is the registration form.
type SignUp struct {
	Name     string `form:"name" validate:"required"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

func (s SignUp) Validate() (models.UserCreate, error) {
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.TrimSpace(s.Email)
	if err := check(s); err != nil {
		return models.UserCreate{}, err
	}
	return models.UserCreate{Name: s.Name, Email: s.Email, Password: s.Password}, nil
}

// User is the admin's edit-user form. Root cannot be granted from here.
type User struct {
	Name  string `form:"name" validate:"required"`
	Email string `form:"email" validate:"required,email"`
	Role  string `form:"role" validate:"required,oneof=user admin"`
}

// UserFrom prefills the edit form.
func UserFrom(u models.User) User {
	return User{Name: u.Name, Email: u.Email, Role: string(u.Role)}
}

func (u User) Validate() (models.UserUpdate, error) {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.TrimSpace(u.Email)
	u.Role = strings.ToLower(strings.TrimSpace(u.Role))
	if err := check(u); err != nil {
		return models.UserUpdate{}, err
	}
	return models.UserUpdate{Name: u.Name, Email: u.Email, Role: models.Role(u.Role)}, nil
}

func trimAddress(a Address) Address {
	a.Street = strings.TrimSpace(a.Street)
	a.City = strings.TrimSpace(a.City)
	a.PostalCode = strings.TrimSpace(a.PostalCode)
	a.Country = strings.TrimSpace(a.Country)
	return a
}

// ParseFloat reads an optional number field. Blank means "unchanged".
func ParseFloat(s string, current float64) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return current, nil
	}
	return strconv.ParseFloat(s, 64)
}

// ParseCoordinate reads an optional coordinate. Blank keeps current; "-"
// clears it.
func ParseCoordinate(s string, current *float64) (*float64, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return current, nil
	case "-":
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return current, err
	}
	return &v, nil
}
