package models

type FlightSearchResponse struct {
	Flights  map[string]any `json:"flights"`
	Calendar map[string]any `json:"calendar,omitempty"`
	Metadata map[string]any `json:"metadata"`
}

type DestinationResponse struct {
	Cards               []DestinationCard `json:"cards"`
	RemainingCandidates int               `json:"remaining_candidates"`
	SearchMetadata      map[string]any    `json:"search_metadata"`
}

type ComposeResponse struct {
	Persona string `json:"persona"`
	Intent  string `json:"intent,omitempty"`
	Reply   string `json:"reply"`
}

type WeatherSnapshotResponse struct {
	Summary string         `json:"summary"`
	Payload map[string]any `json:"payload"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
