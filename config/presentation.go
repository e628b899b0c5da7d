package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"rateCurves/internal/render"
)

// LoadPresentation reads chart presentation options from a YAML file. An
// empty path yields the default presentation.
func LoadPresentation(path string) (render.Presentation, error) {
	pres := render.DefaultPresentation()
	if path == "" {
		return pres, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return render.Presentation{}, fmt.Errorf("open presentation: %w", err)
	}
	defer file.Close()

	var loaded render.Presentation
	if err := yaml.NewDecoder(file).Decode(&loaded); err != nil && !errors.Is(err, io.EOF) {
		return render.Presentation{}, fmt.Errorf("decode presentation: %w", err)
	}
	loaded.Normalize()
	if err := loaded.Validate(); err != nil {
		return render.Presentation{}, fmt.Errorf("presentation: %w", err)
	}
	return loaded, nil
}
