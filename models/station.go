package models

// Station represents a named stop of the train network.
type Station struct {
	Name string `json:"name"`
}

func NewStation(name string) *Station {
	return &Station{Name: name}
}

func (s *Station) String() string {
	if s == nil {
		return "<nil>"
	}
	return s.Name
}
