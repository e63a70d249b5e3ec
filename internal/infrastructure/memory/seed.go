package memory

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Victor-armando18/service-bspaoh/internal/domain"
)

// Seed é o conteúdo de um ficheiro de arranque do diretório: empresas e, por utilizador, os SIRET/TVA a que pertence.
type Seed struct {
	Companies []domain.Company    `json:"companies"`
	Members   map[string][]string `json:"members"`
}

func ParseSeed(data []byte) (Seed, error) {
	var s Seed
	if err := json.Unmarshal(data, &s); err != nil {
		return Seed{}, fmt.Errorf("parse seed: %w", err)
	}
	for i, c := range s.Companies {
		if c.OrgID == "" && c.Siret == "" && c.VatNumber == "" {
			return Seed{}, fmt.Errorf("seed company %d: missing siret or vatNumber", i)
		}
	}
	return s, nil
}

// LoadSeed lê o ficheiro em path e devolve o diretório e os utilizadores correspondentes.
func LoadSeed(path string) (*Directory, *Users, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read seed %s: %w", path, err)
	}
	s, err := ParseSeed(data)
	if err != nil {
		return nil, nil, err
	}
	dir, users := s.Build()
	return dir, users, nil
}

func (s Seed) Build() (*Directory, *Users) {
	users := NewUsers()
	for id, orgs := range s.Members {
		users.Add(id, orgs...)
	}
	return NewDirectory(s.Companies...), users
}
