package models

// Home is a place the user lives in or considers; distances are measured from it.
type Home struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Address Address `json:"address"`
}

// HomeCreate is the payload of createHome and updateHome.
type HomeCreate struct {
	Name    string  `json:"name"`
	Address Address `json:"address"`
}
