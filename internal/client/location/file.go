package location

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/fieldshift/internal/common"
)

// FileProvider reads the latest fix written by an external GPS agent (for
// example a termux-location cron job) as a JSON file:
//
//	{"lat": -33.87, "lon": 151.21, "accuracy": 12.5}
//
// A missing or malformed file maps to common.ErrLocationUnavailable.
type FileProvider struct {
	Path string
}

func (p *FileProvider) Current(ctx context.Context) (*Position, error) {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrLocationUnavailable, err)
	}

	var fix struct {
		Lat      float64 `json:"lat"`
		Lon      float64 `json:"lon"`
		Accuracy float64 `json:"accuracy"`
	}
	if err := json.Unmarshal(data, &fix); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrLocationUnavailable, err)
	}

	return &Position{Lat: fix.Lat, Lon: fix.Lon, Accuracy: fix.Accuracy}, nil
}

// StaticProvider always returns the same fix. Useful for tests and desk
// setups with a fixed work location.
type StaticProvider struct {
	Position Position
}

func (p *StaticProvider) Current(ctx context.Context) (*Position, error) {
	pos := p.Position
	return &pos, nil
}
