package config

import (
	"errors"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Validate checks field-level constraints.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Color,
			validation.When(c.Color != nil, validation.Length(3, 3).Error("must have exactly three components")),
			validation.Each(validation.Min(0), validation.Max(255)),
		),
		validation.Field(&c.Icon, validation.By(hasExtension)),
		validation.Field(&c.Index, validation.By(isRelative)),
		validation.Field(&c.Extension, validation.By(isBareExtension)),
		validation.Field(&c.Links),
	)
}

// Validate checks an external link entry.
func (l Link) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Name, validation.Required),
		validation.Field(&l.Link, validation.Required),
	)
}

func hasExtension(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if ext := filepath.Ext(s); ext == "" || ext == "." {
		return errors.New("icon must have an extension")
	}
	return nil
}

func isRelative(value any) error {
	s, _ := value.(string)
	if filepath.IsAbs(s) {
		return errors.New("must be relative to the pages directory")
	}
	return nil
}

func isBareExtension(value any) error {
	s, _ := value.(string)
	if strings.ContainsAny(s, `./\`) {
		return errors.New("must be an extension without a leading dot")
	}
	return nil
}
