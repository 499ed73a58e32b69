package domain

// Turn is one message in a chat transcript. Transcripts live for a single
// request and are never persisted.
type Turn struct {
	Sender string `json:"sender"` // "customer" or "rep"
	Text   string `json:"text"`
	Time   string `json:"time,omitempty"`
}

// Lead carries what the chat platform knows about the customer
type Lead struct {
	Name         string `json:"name,omitempty"`
	VehicleYear  string `json:"vehicleYear,omitempty"`
	VehicleMake  string `json:"vehicleMake,omitempty"`
	VehicleModel string `json:"vehicleModel,omitempty"`
	Status       string `json:"status,omitempty"`
	Source       string `json:"source,omitempty"`
}

// Page describes where the conversation is happening
type Page struct {
	Channel string `json:"channel,omitempty"`
	URL     string `json:"url,omitempty"`
	Title   string `json:"title,omitempty"`
}
