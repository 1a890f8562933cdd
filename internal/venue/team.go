package venue

import "strings"

// Team is a side in a match. The roster only grows.
type Team struct {
	Name    string `json:"name"`
	City    string `json:"city"`
	Founded int    `json:"founded"`
	Coach   string `json:"coach"`
	roster  []string
}

func NewTeam(name, city string, founded int, coach string) (*Team, error) {
	name, city, coach = strings.TrimSpace(name), strings.TrimSpace(city), strings.TrimSpace(coach)
	if name == "" {
		return nil, validationError("team name must not be blank")
	}
	if city == "" {
		return nil, validationError("team %s city must not be blank", name)
	}
	if coach == "" {
		return nil, validationError("team %s coach must not be blank", name)
	}
	return &Team{Name: name, City: city, Founded: founded, Coach: coach}, nil
}

// AddPlayer appends a trimmed, non-blank player name to the roster.
func (t *Team) AddPlayer(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return validationError("player name must not be blank")
	}
	t.roster = append(t.roster, name)
	return nil
}

func (t *Team) Roster() []string {
	return append([]string(nil), t.roster...)
}
