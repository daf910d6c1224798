package eq

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Band is one band of a preset.
type Band struct {
	// Frequency is the shelf corner or peak center in Hz.
	Frequency float64 `yaml:"frequency"`
	// Resonance defaults to 1/sqrt(2) when omitted or zero.
	Resonance float64 `yaml:"resonance"`
	// Gain is the band gain in dB.
	Gain float64 `yaml:"gain"`
}

// Preset is a named set of band settings for one equalizer.
type Preset struct {
	Name  string `yaml:"name"`
	Bands []Band `yaml:"bands"`
}

// ParsePreset reads one preset from YAML. Unknown fields are rejected.
func ParsePreset(data []byte) (*Preset, error) {
	var p Preset
	if err := yaml.UnmarshalStrict(data, &p); err != nil {
		return nil, fmt.Errorf("eq: invalid preset: %w", err)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}

	return &p, nil
}

// LoadPreset reads one preset from a YAML file.
func LoadPreset(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("eq: %w", err)
	}

	p, err := ParsePreset(data)
	if err != nil {
		return nil, fmt.Errorf("eq: %s: %w", path, err)
	}

	return p, nil
}

func (p *Preset) validate() error {
	if len(p.Bands) < MinBands {
		return fmt.Errorf("eq: preset %q needs at least %d bands, got %d", p.Name, MinBands, len(p.Bands))
	}
	for i, b := range p.Bands {
		if b.Frequency < 0 {
			return fmt.Errorf("eq: preset %q band %d: negative frequency %v", p.Name, i, b.Frequency)
		}
		if b.Resonance < 0 {
			return fmt.Errorf("eq: preset %q band %d: negative resonance %v", p.Name, i, b.Resonance)
		}
	}

	return nil
}

// NewFromPreset builds an equalizer with the preset's band count and
// settings applied.
func NewFromPreset(sampleRate float64, p *Preset) (*Equalizer, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	e, err := New(sampleRate, len(p.Bands))
	if err != nil {
		return nil, err
	}
	if err := p.Apply(e); err != nil {
		return nil, err
	}

	return e, nil
}

// Apply sets every band of e from the preset. The preset's band count
// must match the equalizer's.
func (p *Preset) Apply(e *Equalizer) error {
	if len(p.Bands) != e.NumBands() {
		return fmt.Errorf("eq: preset %q has %d bands, equalizer has %d", p.Name, len(p.Bands), e.NumBands())
	}

	for i, b := range p.Bands {
		if err := e.SetBand(i, b.Frequency, b.Resonance, b.Gain); err != nil {
			return err
		}
	}

	return nil
}
