package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

const (
	DEBUG_LEVEL = iota
	INFO_LEVEL
	WARN_LEVEL
	ERROR_LEVEL
)

type Configuration struct {
	Level      int    `validate:"min=0,max=3"`
	TimeFormat string `validate:"required"`
}

func (c Configuration) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid logger configuration: %w", err)
	}
	return nil
}
