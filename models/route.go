package models

// TripResult is the answer to a shortest trip query between two stations.
// Duration is +Inf when Reachable is false.
type TripResult struct {
	Origin      string   `json:"origin"`
	Destination string   `json:"destination"`
	Duration    float64  `json:"-"`
	Reachable   bool     `json:"reachable"`
	Path        []string `json:"path,omitempty"`
}

// DurationMinutes is the JSON friendly duration, nil when there is no route.
func (t TripResult) DurationMinutes() *float64 {
	if !t.Reachable {
		return nil
	}
	d := t.Duration
	return &d
}

// Clone returns a copy that shares no memory with t.
func (t TripResult) Clone() TripResult {
	if t.Path != nil {
		t.Path = append([]string(nil), t.Path...)
	}
	return t
}
