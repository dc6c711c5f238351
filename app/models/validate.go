package models

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

var (
	// ErrEmptyComment is returned when a comment has no text after trimming.
	ErrEmptyComment = errors.New("comment is empty")
)
