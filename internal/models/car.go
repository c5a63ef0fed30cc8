package models

import "fmt"

// Car is the standalone car info exercise.
type Car struct {
	Color string
	Speed int
	Name  string
}

// DefaultCar returns the car used when no attributes are given.
func DefaultCar() Car {
	return Car{Color: "White", Speed: 200, Name: "Mercedes"}
}

func (c Car) Info() string {
	return fmt.Sprintf("Color - %s, Speed - %d, Name - %s", c.Color, c.Speed, c.Name)
}
