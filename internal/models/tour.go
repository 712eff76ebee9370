package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tour difficulties.
const (
	DifficultyEasy      = "easy"
	DifficultyMedium    = "medium"
	DifficultyDifficult = "difficult"
)

// Location is a GeoJSON point with display metadata.
type Location struct {
	Type        string    `json:"type" bson:"type" example:"Point"`
	Coordinates []float64 `json:"coordinates" bson:"coordinates"`
	Address     string    `json:"address,omitempty" bson:"address,omitempty"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Day         int       `json:"day,omitempty" bson:"day,omitempty"`
}

// Tour represents a bookable tour.
// RatingsAverage and RatingsQuantity are derived values owned by the rating
// aggregator; no other code path writes them.
type Tour struct {
	ID              primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name            string               `json:"name" bson:"name"`
	Slug            string               `json:"slug" bson:"slug"`
	Duration        int                  `json:"duration" bson:"duration"`
	MaxGroupSize    int                  `json:"maxGroupSize" bson:"maxGroupSize"`
	Difficulty      string               `json:"difficulty" bson:"difficulty"`
	RatingsAverage  float64              `json:"ratingsAverage" bson:"ratingsAverage"`
	RatingsQuantity int                  `json:"ratingsQuantity" bson:"ratingsQuantity"`
	Price           float64              `json:"price" bson:"price"`
	PriceDiscount   float64              `json:"priceDiscount,omitempty" bson:"priceDiscount,omitempty"`
	Summary         string               `json:"summary" bson:"summary"`
	Description     string               `json:"description,omitempty" bson:"description,omitempty"`
	ImageCover      string               `json:"imageCover" bson:"imageCover"`
	Images          []string             `json:"images,omitempty" bson:"images,omitempty"`
	StartDates      []time.Time          `json:"startDates,omitempty" bson:"startDates,omitempty"`
	StartLocation   *Location            `json:"startLocation,omitempty" bson:"startLocation,omitempty"`
	Locations       []Location           `json:"locations,omitempty" bson:"locations,omitempty"`
	Guides          []primitive.ObjectID `json:"guides,omitempty" bson:"guides,omitempty"`
	CreatedAt       time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// TourDetail is a tour expanded with its reviews.
type TourDetail struct {
	Tour
	Reviews []Review `json:"reviews"`
}

// CreateTourRequest is the payload for creating a tour.
type CreateTourRequest struct {
	Name          string      `json:"name" binding:"required,min=10,max=40"`
	Duration      int         `json:"duration" binding:"required,min=1"`
	MaxGroupSize  int         `json:"maxGroupSize" binding:"required,min=1"`
	Difficulty    string      `json:"difficulty" binding:"required,oneof=easy medium difficult"`
	Price         float64     `json:"price" binding:"required,gt=0"`
	PriceDiscount float64     `json:"priceDiscount" binding:"omitempty,ltfield=Price"`
	Summary       string      `json:"summary" binding:"required"`
	Description   string      `json:"description"`
	ImageCover    string      `json:"imageCover" binding:"required"`
	Images        []string    `json:"images"`
	StartDates    []time.Time `json:"startDates"`
	StartLocation *Location   `json:"startLocation"`
	Locations     []Location  `json:"locations"`
	Guides        []string    `json:"guides"`
}

// UpdateTourRequest is the payload for a partial tour update.
type UpdateTourRequest struct {
	Name          *string      `json:"name" binding:"omitempty,min=10,max=40"`
	Duration      *int         `json:"duration" binding:"omitempty,min=1"`
	MaxGroupSize  *int         `json:"maxGroupSize" binding:"omitempty,min=1"`
	Difficulty    *string      `json:"difficulty" binding:"omitempty,oneof=easy medium difficult"`
	Price         *float64     `json:"price" binding:"omitempty,gt=0"`
	PriceDiscount *float64     `json:"priceDiscount"`
	Summary       *string      `json:"summary"`
	Description   *string      `json:"description"`
	ImageCover    *string      `json:"imageCover"`
	Images        *[]string    `json:"images"`
	StartDates    *[]time.Time `json:"startDates"`
	StartLocation *Location    `json:"startLocation"`
	Locations     *[]Location  `json:"locations"`
}

// TourStats is a per-difficulty aggregate over well rated tours.
type TourStats struct {
	Difficulty string  `json:"difficulty" bson:"_id"`
	NumTours   int     `json:"numTours" bson:"numTours"`
	NumRatings int     `json:"numRatings" bson:"numRatings"`
	AvgRating  float64 `json:"avgRating" bson:"avgRating"`
	AvgPrice   float64 `json:"avgPrice" bson:"avgPrice"`
	MinPrice   float64 `json:"minPrice" bson:"minPrice"`
	MaxPrice   float64 `json:"maxPrice" bson:"maxPrice"`
}

// TourDistance pairs a tour with its distance from a query point, in the
// unit the caller asked for.
type TourDistance struct {
	ID       primitive.ObjectID `json:"id" bson:"_id"`
	Name     string             `json:"name" bson:"name"`
	Distance float64            `json:"distance" bson:"distance"`
}

// MonthlyPlanEntry counts tour starts for one month of a year.
type MonthlyPlanEntry struct {
	Month         int      `json:"month" bson:"month"`
	NumTourStarts int      `json:"numTourStarts" bson:"numTourStarts"`
	Tours         []string `json:"tours" bson:"tours"`
}
