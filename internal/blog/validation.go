package blog

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const (
	minReadTime = 1
	maxReadTime = 60
)

func (in PostInput) Validate() error {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.TitleZH, validation.Required, validation.Length(1, 500)),
		validation.Field(&in.TitleEN, validation.Required, validation.Length(1, 500)),
		validation.Field(&in.ExcerptZH, validation.Required),
		validation.Field(&in.ExcerptEN, validation.Required),
		validation.Field(&in.ContentZH, validation.Required),
		validation.Field(&in.ContentEN, validation.Required),
		validation.Field(&in.Category, validation.Required, validation.Length(1, 100)),
		validation.Field(&in.AuthorID, validation.Required),
		validation.Field(&in.ReadTime, validation.NilOrNotEmpty, validation.Min(minReadTime), validation.Max(maxReadTime)),
		validation.Field(&in.FeaturedImage, is.URL),
	)
	return wrapValidation(err)
}

func (p PostPatch) Validate() error {
	err := validation.ValidateStruct(&p,
		validation.Field(&p.TitleZH, validation.NilOrNotEmpty, validation.Length(1, 500)),
		validation.Field(&p.TitleEN, validation.NilOrNotEmpty, validation.Length(1, 500)),
		validation.Field(&p.ContentZH, validation.NilOrNotEmpty),
		validation.Field(&p.ContentEN, validation.NilOrNotEmpty),
		validation.Field(&p.Category, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&p.AuthorID, validation.NilOrNotEmpty),
		validation.Field(&p.ReadTime, validation.NilOrNotEmpty, validation.Min(minReadTime), validation.Max(maxReadTime)),
		validation.Field(&p.FeaturedImage, is.URL),
	)
	return wrapValidation(err)
}

func (in AuthorInput) Validate() error {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&in.AvatarURL, is.URL),
	)
	return wrapValidation(err)
}

func wrapValidation(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrValidation, err)
}
