package torn

import "encoding/json"

// --------------------------------------------------------------------------
// Typed snapshot — all defaulting rules for the raw document live here
// --------------------------------------------------------------------------

// Bar is one resource bar (energy, nerve, happy, life).
type Bar struct {
	Current  int `json:"current"`
	Maximum  int `json:"maximum"`
	FullTime int `json:"fulltime"`
}

// Full reports whether the bar is at capacity. A zero-maximum bar (missing
// field, permission downgrade) is never full.
func (b Bar) Full() bool {
	return b.Maximum > 0 && b.Current >= b.Maximum
}

// Status is the player's current state.
type Status struct {
	State       string `json:"state"`
	Description string `json:"description"`
	Until       int64  `json:"until"`
}

// Cooldowns are seconds remaining per cooldown type; 0 means ready.
type Cooldowns struct {
	Drug    int `json:"drug"`
	Booster int `json:"booster"`
	Medical int `json:"medical"`
}

// Travel describes an in-flight trip; zero values mean not traveling.
type Travel struct {
	Destination string `json:"destination"`
	TimeLeft    int    `json:"time_left"`
}

// Education is the current course; TimeLeft 0 means not studying.
type Education struct {
	TimeLeft int `json:"timeleft"`
}

// Event is one timestamped free-text event record. IDs may be hashes and
// carry no ordering; callers must order and deduplicate by Timestamp.
type Event struct {
	ID        string
	Text      string
	Timestamp int64
}

// Message is one inbox message record.
type Message struct {
	ID        string
	Name      string
	Title     string
	Text      string
	Timestamp int64
}

// Snapshot is the typed view of one batched /user fetch. Missing fields
// decode to zero values and empty slices; business logic never needs to
// defend against absent data again.
type Snapshot struct {
	Name      string
	Level     int
	Energy    Bar
	Nerve     Bar
	Happy     Bar
	Life      Bar
	Status    Status
	Cooldowns Cooldowns
	Travel    Travel
	Education Education
	Events    []Event
	Messages  []Message
}

// ParseSnapshot converts a raw fetched document into a typed Snapshot, with
// every absent or malformed field defaulting to its zero value.
func ParseSnapshot(doc RawDocument) Snapshot {
	var s Snapshot

	decodeField(doc, "name", &s.Name)
	decodeField(doc, "level", &s.Level)
	decodeField(doc, "energy", &s.Energy)
	decodeField(doc, "nerve", &s.Nerve)
	decodeField(doc, "happy", &s.Happy)
	decodeField(doc, "life", &s.Life)
	decodeField(doc, "status", &s.Status)
	decodeField(doc, "cooldowns", &s.Cooldowns)
	decodeField(doc, "travel", &s.Travel)

	// Education has shipped as both a nested object and flat fields across
	// API revisions; accept either.
	if !decodeField(doc, "education", &s.Education) {
		decodeField(doc, "education_timeleft", &s.Education.TimeLeft)
	}

	s.Events = parseEvents(doc["events"])
	s.Messages = parseMessages(doc["messages"])
	return s
}

func parseEvents(raw json.RawMessage) []Event {
	if len(raw) == 0 {
		return nil
	}
	var entries map[string]struct {
		Event     string `json:"event"`
		Timestamp int64  `json:"timestamp"`
	}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}
	events := make([]Event, 0, len(entries))
	for id, e := range entries {
		events = append(events, Event{ID: id, Text: e.Event, Timestamp: e.Timestamp})
	}
	return events
}

func parseMessages(raw json.RawMessage) []Message {
	if len(raw) == 0 {
		return nil
	}
	var entries map[string]struct {
		Name      string `json:"name"`
		Title     string `json:"title"`
		Text      string `json:"text"`
		Timestamp int64  `json:"timestamp"`
	}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}
	messages := make([]Message, 0, len(entries))
	for id, m := range entries {
		messages = append(messages, Message{
			ID: id, Name: m.Name, Title: m.Title, Text: m.Text, Timestamp: m.Timestamp,
		})
	}
	return messages
}

// decodeField unmarshals one document field into dst, reporting whether the
// field was present and well-formed. On failure dst is left at its zero
// value — malformed data is treated the same as missing data.
func decodeField(doc RawDocument, key string, dst any) bool {
	raw, ok := doc[key]
	if !ok || len(raw) == 0 {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

// --------------------------------------------------------------------------
// Company snapshot
// --------------------------------------------------------------------------

// StockItem is one company inventory line.
type StockItem struct {
	Name       string `json:"name"`
	InStock    int    `json:"in_stock"`
	SoldAmount int    `json:"sold_amount"`
}

// Employee is one company employee with their last activity time.
type Employee struct {
	Name       string
	Position   string
	LastAction int64
}

// Company is the typed view of one /company fetch.
type Company struct {
	Name      string
	Stock     []StockItem
	Employees map[string]Employee
}

// ParseCompany converts a raw company document into a typed Company.
// The stock selection has shipped as both a name-keyed map and a flat list;
// accept either.
func ParseCompany(doc RawDocument) Company {
	var c Company

	var profile struct {
		Name string `json:"name"`
	}
	if decodeField(doc, "company", &profile) {
		c.Name = profile.Name
	}

	if raw, ok := doc["company_stock"]; ok && len(raw) > 0 {
		var byName map[string]StockItem
		if err := json.Unmarshal(raw, &byName); err == nil {
			c.Stock = make([]StockItem, 0, len(byName))
			for name, item := range byName {
				if item.Name == "" {
					item.Name = name
				}
				c.Stock = append(c.Stock, item)
			}
		} else {
			var asList []StockItem
			if err := json.Unmarshal(raw, &asList); err == nil {
				c.Stock = asList
			}
		}
	}

	var employees map[string]struct {
		Name       string `json:"name"`
		Position   string `json:"position"`
		LastAction struct {
			Timestamp int64 `json:"timestamp"`
		} `json:"last_action"`
	}
	if decodeField(doc, "company_employees", &employees) {
		c.Employees = make(map[string]Employee, len(employees))
		for id, e := range employees {
			c.Employees[id] = Employee{
				Name:       e.Name,
				Position:   e.Position,
				LastAction: e.LastAction.Timestamp,
			}
		}
	}

	return c
}
