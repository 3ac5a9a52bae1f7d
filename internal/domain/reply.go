package domain

// AssistantReply es la respuesta clasificada del asistente: PlainReply o VenueReply.
type AssistantReply interface {
	Text() string
	Kind() ReplyKind
	isAssistantReply()
}

type ReplyKind string

const (
	ReplyPlain  ReplyKind = "plain"
	ReplyVenues ReplyKind = "venues"
)

type PlainReply struct {
	Message string
}

func (r PlainReply) Text() string    { return r.Message }
func (r PlainReply) Kind() ReplyKind { return ReplyPlain }
func (PlainReply) isAssistantReply() {}

// VenueReply trae resultados estructurados; los campos opcionales nil significan "no provisto".
type VenueReply struct {
	Message       string
	Venues        []Venue
	Weather       *WeatherObservation
	Safety        *SafetyAssessment
	Accessibility *float64
	Traffic       *TrafficSummary
}

func (r VenueReply) Text() string    { return r.Message }
func (r VenueReply) Kind() ReplyKind { return ReplyVenues }
func (VenueReply) isAssistantReply() {}

type TravelTime struct {
	Text    string `json:"travel_time_text"`
	Seconds *int   `json:"travel_time_seconds"`
}

type OriginTimes struct {
	Times map[string]TravelTime `json:"times"`
}

type AverageCommute struct {
	AverageCommuteTime float64 `json:"average_commute_time"`
}

// TrafficSummary son los datos de trayectos por origen que puede adjuntar el asistente.
type TrafficSummary struct {
	Data         map[string]OriginTimes    `json:"traffic_data,omitempty"`
	AverageTimes map[string]AverageCommute `json:"average_times,omitempty"`
}
