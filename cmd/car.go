package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/shelf/internal/models"
)

// Car prints the car info line, starting from the default car.
func (r *Runner) Car(ctx context.Context, cmd *cli.Command) error {
	car := models.DefaultCar()
	if color := cmd.String("color"); color != "" {
		car.Color = color
	}
	if speed := int(cmd.Int("speed")); speed != 0 {
		car.Speed = speed
	}
	if name := cmd.String("name"); name != "" {
		car.Name = name
	}
	return r.writePlain("%s\n", car.Info())
}
