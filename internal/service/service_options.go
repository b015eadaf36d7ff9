// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-note-keeper/internal/becca"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
)

type optionService struct {
	graph *becca.Becca

	logger *logger.Logger
}

func NewOptionService(graph *becca.Becca, logger *logger.Logger) OptionService {
	return &optionService{
		graph:  graph,
		logger: logger,
	}
}

// OptionValue returns a NotFoundError for unknown options.
func (o *optionService) OptionValue(ctx context.Context, name string) (string, error) {
	option, err := o.graph.GetOptionOrThrow(name)
	if err != nil {
		return "", err
	}
	return option.Value(), nil
}

// SetOption updates an existing option. Missing options are created not
// synced.
func (o *optionService) SetOption(ctx context.Context, name, value string) error {
	if name == "" {
		return ErrEmptyOptionName
	}

	option := o.graph.GetOption(name)
	if option == nil {
		option = o.graph.NewOption(models.Option{Name: name, Value: value})
	} else {
		option.SetValue(value)
	}

	if err := inTransaction(ctx, o.graph, option.Save); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "optionService.SetOption").Str("name", name).Msg("option save failed")
		return err
	}
	return nil
}
