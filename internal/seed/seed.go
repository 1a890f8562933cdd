// Package seed holds the reference fixture: the derby line-ups and a starter stand menu.
package seed

import (
	"fmt"

	"ms-venue/internal/venue"
)

var homeRoster = []string{
	"Franco Israel", "Ricardo Esgaio", "Jeremiah St. Juste", "Sebastián Coates",
	"Gonçalo Inácio", "Nuno Santos", "Morten Hjulmand", "Pedro Gonçalves",
	"Marcus Edwards", "Francisco Trincão", "Viktor Gyökeres",
}

var awayRoster = []string{
	"Anatoliy Trubin", "Alexander Bah", "António Silva", "Nicolás Otamendi",
	"Fredrik Aursnes", "João Neves", "Orkun Kökçü", "Ángel Di María",
	"Rafa Silva", "David Neres", "Arthur Cabral",
}

// Teams builds the home and away sides with their full eleven.
func Teams() (home, away *venue.Team, err error) {
	home, err = team("Sporting", "Lisboa", 1906, "Rúben Amorim", homeRoster)
	if err != nil {
		return nil, nil, err
	}
	away, err = team("Benfica", "Lisboa", 1904, "Roger Schmidt", awayRoster)
	if err != nil {
		return nil, nil, err
	}
	return home, away, nil
}

func team(name, city string, founded int, coach string, roster []string) (*venue.Team, error) {
	t, err := venue.NewTeam(name, city, founded, coach)
	if err != nil {
		return nil, fmt.Errorf("seed team %s: %w", name, err)
	}
	for _, p := range roster {
		if err := t.AddPlayer(p); err != nil {
			return nil, fmt.Errorf("seed team %s: %w", name, err)
		}
	}
	return t, nil
}

// StandMenu is the menu the demo opens its first stand with.
func StandMenu() []venue.ProductSpec {
	return []venue.ProductSpec{
		{Name: "Bifana", Price: 4.50, Stock: 40},
		{Name: "Cerveja", Price: 3.00, Stock: 100},
		{Name: "Água", Price: 1.50, Stock: 60},
		{Name: "Pipocas", Price: 2.50, Stock: 30},
	}
}
