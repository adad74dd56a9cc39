package client

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Operation names one entry of the endpoint registry.
type Operation string

const (
	OpRoot            Operation = "getRoot"
	OpSignUp          Operation = "signup"
	OpSignIn          Operation = "signin"
	OpGetUsers        Operation = "getUsers"
	OpUpdateUser      Operation = "updateUser"
	OpDeleteUser      Operation = "deleteUser"
	OpGetLocations    Operation = "getLocations"
	OpCreateLocation  Operation = "createLocation"
	OpGetLocationByID Operation = "getLocationById"
	OpUpdateLocation  Operation = "updateLocation"
	OpDeleteLocation  Operation = "deleteLocation"
	OpGetHomes        Operation = "getHomes"
	OpCreateHome      Operation = "createHome"
	OpGetHomeByID     Operation = "getHomeById"
	OpUpdateHome      Operation = "updateHome"
	OpDeleteHome      Operation = "deleteHome"
	OpGetDistances    Operation = "getDistances"
	OpSearchGeocode   Operation = "searchGeocode"
)

// TagType groups cached results for invalidation.
type TagType string

const (
	TagAuth     TagType = "Auth"
	TagUser     TagType = "User"
	TagLocation TagType = "Location"
	TagHome     TagType = "Home"
	TagDistance TagType = "Distance"
)

// Tag is a TagType optionally narrowed to one record. An empty ID covers
// the whole type.
type Tag struct {
	Type TagType
	ID   string
}

func (t Tag) String() string {
	if t.ID == "" {
		return string(t.Type)
	}
	return string(t.Type) + ":" + t.ID
}

// Kind tells queries from mutations.
type Kind int

const (
	Query Kind = iota
	Mutation
)

// Request carries the arguments of one call. ID fills the {id} placeholder
// of the path; Body is sent as JSON.
type Request struct {
	ID    int64      `json:"id,omitempty"`
	Query url.Values `json:"query,omitempty"`
	Body  any        `json:"-"`
}

// Endpoint describes one remote operation.
type Endpoint struct {
	Op     Operation
	Kind   Kind
	Method string
	Path   string
	// Cacheable is false for queries that must hit the server every time.
	Cacheable   bool
	Provides    []TagType
	Invalidates []TagType
	// PerID narrows Provides/Invalidates to Request.ID.
	PerID bool
}

// ProvidedTags returns the tags a cached result of req carries.
func (e Endpoint) ProvidedTags(req Request) []Tag {
	return e.tags(e.Provides, req)
}

// InvalidatedTags returns the tags a successful req invalidates.
func (e Endpoint) InvalidatedTags(req Request) []Tag {
	return e.tags(e.Invalidates, req)
}

func (e Endpoint) tags(types []TagType, req Request) []Tag {
	out := make([]Tag, 0, len(types))
	for _, t := range types {
		tag := Tag{Type: t}
		if e.PerID {
			tag.ID = strconv.FormatInt(req.ID, 10)
		}
		out = append(out, tag)
	}
	return out
}

// ResolvePath substitutes req.ID into the path template.
func (e Endpoint) ResolvePath(req Request) string {
	return strings.ReplaceAll(e.Path, "{id}", strconv.FormatInt(req.ID, 10))
}

var endpoints = map[Operation]Endpoint{
	OpRoot:   {Op: OpRoot, Kind: Query, Method: http.MethodGet, Path: ""},
	OpSignUp: {Op: OpSignUp, Kind: Mutation, Method: http.MethodPost, Path: "auth/signup", Invalidates: []TagType{TagAuth}},
	OpSignIn: {Op: OpSignIn, Kind: Mutation, Method: http.MethodPost, Path: "auth/signin", Invalidates: []TagType{TagAuth}},

	OpGetUsers:   {Op: OpGetUsers, Kind: Query, Method: http.MethodGet, Path: "users/", Cacheable: true, Provides: []TagType{TagUser}},
	OpUpdateUser: {Op: OpUpdateUser, Kind: Mutation, Method: http.MethodPut, Path: "users/{id}", Invalidates: []TagType{TagUser}},
	OpDeleteUser: {Op: OpDeleteUser, Kind: Mutation, Method: http.MethodDelete, Path: "users/{id}", Invalidates: []TagType{TagUser}},

	OpGetLocations:    {Op: OpGetLocations, Kind: Query, Method: http.MethodGet, Path: "locations/", Cacheable: true, Provides: []TagType{TagLocation}},
	OpCreateLocation:  {Op: OpCreateLocation, Kind: Mutation, Method: http.MethodPost, Path: "locations/", Invalidates: []TagType{TagLocation}},
	OpGetLocationByID: {Op: OpGetLocationByID, Kind: Query, Method: http.MethodGet, Path: "locations/{id}", Cacheable: true, Provides: []TagType{TagLocation}, PerID: true},
	OpUpdateLocation:  {Op: OpUpdateLocation, Kind: Mutation, Method: http.MethodPut, Path: "locations/{id}", Invalidates: []TagType{TagLocation}, PerID: true},
	OpDeleteLocation:  {Op: OpDeleteLocation, Kind: Mutation, Method: http.MethodDelete, Path: "locations/{id}", Invalidates: []TagType{TagLocation}},

	OpGetHomes:    {Op: OpGetHomes, Kind: Query, Method: http.MethodGet, Path: "homes/", Cacheable: true, Provides: []TagType{TagHome}},
	OpCreateHome:  {Op: OpCreateHome, Kind: Mutation, Method: http.MethodPost, Path: "homes/", Invalidates: []TagType{TagHome}},
	OpGetHomeByID: {Op: OpGetHomeByID, Kind: Query, Method: http.MethodGet, Path: "homes/{id}", Cacheable: true, Provides: []TagType{TagHome}, PerID: true},
	OpUpdateHome:  {Op: OpUpdateHome, Kind: Mutation, Method: http.MethodPut, Path: "homes/{id}", Invalidates: []TagType{TagHome}, PerID: true},
	OpDeleteHome:  {Op: OpDeleteHome, Kind: Mutation, Method: http.MethodDelete, Path: "homes/{id}", Invalidates: []TagType{TagHome}},

	OpGetDistances:  {Op: OpGetDistances, Kind: Query, Method: http.MethodGet, Path: "homes/{id}/distances", Cacheable: true, Provides: []TagType{TagDistance}},
	OpSearchGeocode: {Op: OpSearchGeocode, Kind: Query, Method: http.MethodPost, Path: "geocode/search"},
}

// Lookup returns the registry entry for op.
func Lookup(op Operation) (Endpoint, bool) {
	e, ok := endpoints[op]
	return e, ok
}

// Operations lists every registered operation.
func Operations() []Operation {
	out := make([]Operation, 0, len(endpoints))
	for op := range endpoints {
		out = append(out, op)
	}
	return out
}
