package neat

import (
	"encoding/json"
	"fmt"
	"os"
)

// SaveGenome writes a single genome to filePath as JSON, using the stable
// field names documented for interchange. Only the genome itself
// persists — population/species/generation state does not survive across
// process runs.
func SaveGenome(filePath string, g *Genome) error {
	data, err := g.ToJSON()
	if err != nil {
		return fmt.Errorf("neat: encode genome: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return fmt.Errorf("neat: write genome file %q: %w", filePath, err)
	}
	return nil
}

// LoadGenome reads a single genome previously written by SaveGenome.
func LoadGenome(filePath string) (*Genome, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("neat: read genome file %q: %w", filePath, err)
	}
	return GenomeFromJSON(data)
}

// SaveGenomes writes an entire population's genomes to filePath as a JSON
// array.
func SaveGenomes(filePath string, genomes []*Genome) error {
	data, err := json.Marshal(genomes)
	if err != nil {
		return fmt.Errorf("neat: encode genomes: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return fmt.Errorf("neat: write genomes file %q: %w", filePath, err)
	}
	return nil
}

// LoadGenomes reads a population's genomes previously written by
// SaveGenomes.
func LoadGenomes(filePath string) ([]*Genome, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("neat: read genomes file %q: %w", filePath, err)
	}
	var genomes []*Genome
	if err := json.Unmarshal(data, &genomes); err != nil {
		return nil, fmt.Errorf("neat: decode genomes file %q: %w", filePath, err)
	}
	return genomes, nil
}
