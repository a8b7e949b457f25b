// Package seed holds the fixed sample records inserted into an empty store and
// shown by clients when the API cannot be reached.
package seed

import (
	"embed"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/dcode-github/luxury_realty/backend/models"
)

//go:embed data/*.yaml
var files embed.FS

// load decodes a YAML sample file through JSON so the models' json tags apply.
func load[T any](name string) ([]T, error) {
	raw, err := files.ReadFile("data/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("read seed %s: %w", name, err)
	}

	var docs []map[string]any
	if err := yaml.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("parse seed %s: %w", name, err)
	}

	b, err := json.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("convert seed %s: %w", name, err)
	}
	var out []T
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode seed %s: %w", name, err)
	}
	return out, nil
}

func Properties() ([]models.Property, error)     { return load[models.Property]("properties") }
func Testimonials() ([]models.Testimonial, error) { return load[models.Testimonial]("testimonials") }
func Recognitions() ([]models.Recognition, error) { return load[models.Recognition]("recognitions") }
func Partnerships() ([]models.Partnership, error) { return load[models.Partnership]("partnerships") }
func BlogPosts() ([]models.BlogPost, error)       { return load[models.BlogPost]("blog") }
