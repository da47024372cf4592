package models

type ApiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ApiError   `json:"error,omitempty"`
	Meta    *MetaData   `json:"meta,omitempty"`
}

type ApiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type MetaData struct {
	ProcessTime string `json:"process_time_ms"`
	ApiVersion  string `json:"api_version"`
	ResultCount *int   `json:"result_count,omitempty"`
}

type TripResponse struct {
	Origin          string   `json:"origin"`
	Destination     string   `json:"destination"`
	DurationMinutes *float64 `json:"duration"`
	Reachable       bool     `json:"reachable"`
	Path            []string `json:"path,omitempty"`
}

type StationsResponse struct {
	Stations []string `json:"stations"`
	Count    int      `json:"count"`
}

func NewTripResponse(t TripResult) TripResponse {
	return TripResponse{
		Origin:          t.Origin,
		Destination:     t.Destination,
		DurationMinutes: t.DurationMinutes(),
		Reachable:       t.Reachable,
		Path:            t.Path,
	}
}
